package ai

import (
	"log/slog"
	"sort"

	"github.com/keeprush/arena/internal/model"
)

// Manager owns one controller per live unit. It is driven entirely by the
// room's single goroutine: plain maps, no locking.
type Manager struct {
	controllers map[string]Controller
	params      *Params
}

// NewManager creates a controller manager around shared params. The
// manager wires itself in as the damage-interrupt sink.
func NewManager(params *Params) *Manager {
	m := &Manager{
		controllers: make(map[string]Controller),
		params:      params,
	}
	params.onDamaged = func(u *model.Unit, srcX, srcY float64, attackerID string) {
		m.NotifyDamage(u.ID, srcX, srcY, attackerID)
	}
	return m
}

// Attach creates and registers the archetype-appropriate controller for a
// unit. Re-attaching an id replaces the old controller.
func (m *Manager) Attach(u *model.Unit) {
	m.controllers[u.ID] = NewController(u, m.params)

	if IsDebugEnabled() {
		slog.Debug("AI controller attached",
			"unit", u.Name,
			"id", u.ID,
			"archetype", u.Archetype)
	}
}

// Detach removes a unit's controller. Must be called when the unit is
// removed so no controller outlives its unit.
func (m *Manager) Detach(unitID string) {
	delete(m.controllers, unitID)
}

// Count returns the number of registered controllers.
func (m *Manager) Count() int {
	return len(m.controllers)
}

// Reset drops every controller. Called when the match resets and all units
// are cleared at once.
func (m *Manager) Reset() {
	m.controllers = make(map[string]Controller)
}

// TickAll ticks every controller in deterministic (id) order. A controller
// whose unit vanished mid-tick is skipped and dropped; one broken unit must
// never stall the rest of the tick.
func (m *Manager) TickAll(st *model.MatchState) {
	ids := make([]string, 0, len(m.controllers))
	for id := range m.controllers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		c, ok := m.controllers[id]
		if !ok {
			continue
		}
		if _, ok := st.Unit(id); !ok {
			slog.Warn("controller for missing unit, detaching", "id", id)
			m.Detach(id)
			continue
		}
		c.Tick(st)
	}
}

// NotifyDamage routes a damage interrupt to the victim's controller.
// Unknown ids are ignored: the unit may have been removed this tick.
func (m *Manager) NotifyDamage(unitID string, srcX, srcY float64, attackerID string) {
	if c, ok := m.controllers[unitID]; ok {
		c.OnDamaged(srcX, srcY, attackerID)
	}
}

// DamagedFunc exposes the interrupt sink in the shape the combat package
// expects, for callers outside the manager (player actions).
func (m *Manager) DamagedFunc() func(u *model.Unit, srcX, srcY float64, attackerID string) {
	return m.params.onDamaged
}

package ai

import (
	"log/slog"

	"github.com/keeprush/arena/internal/combat"
	"github.com/keeprush/arena/internal/geo"
	"github.com/keeprush/arena/internal/model"
)

const (
	// idleScanInterval spaces out enemy scans while a unit has no target,
	// so idle units do not sweep the whole unit set every tick.
	idleScanInterval = 10

	// chaseRangeFactor is the hysteresis on losing a chased target: a
	// target acquired at detection range is dropped only beyond
	// detection × factor.
	chaseRangeFactor = 1.5
)

// AggressiveAI advances on the opposing castle, engages enemies inside its
// detection range and deals periodic damage when in reach.
// State machine: Moving → Attacking → Moving.
type AggressiveAI struct {
	unit   *model.Unit
	params *Params

	cooldownLeft   int
	ticksSinceScan int
	targetID       string

	// Hostility rules differ per archetype (owner-based for owned units,
	// kind-based for wild animals), so they are injected.
	hostileUnit     func(*model.Unit) bool
	hostileBuilding func(*model.Building) bool
}

func newAggressiveAI(u *model.Unit, p *Params) *AggressiveAI {
	u.State = model.StateMoving
	ai := &AggressiveAI{unit: u, params: p, ticksSinceScan: idleScanInterval}
	ai.hostileUnit = func(t *model.Unit) bool {
		return t.ID != u.ID && t.OwnerID != u.OwnerID
	}
	ai.hostileBuilding = func(b *model.Building) bool {
		return b.OwnerID != "" && b.OwnerID != u.OwnerID
	}
	return ai
}

// UnitID returns the controlled unit's id.
func (ai *AggressiveAI) UnitID() string {
	return ai.unit.ID
}

// Tick advances the fight state machine. At most one target re-evaluation
// happens per tick.
func (ai *AggressiveAI) Tick(st *model.MatchState) {
	ai.tick(st, ai.selectTarget)
}

// OnDamaged retaliates: the attacker becomes the target regardless of the
// unit's current plan.
func (ai *AggressiveAI) OnDamaged(srcX, srcY float64, attackerID string) {
	if !ai.unit.Alive() || attackerID == "" || attackerID == ai.unit.ID {
		return
	}
	ai.targetID = attackerID

	if IsDebugEnabled() {
		slog.Debug("aggressive unit retaliating",
			"unit", ai.unit.Name,
			"id", ai.unit.ID,
			"attacker", attackerID)
	}
}

// tick is shared with WildAnimalAI; selectTarget supplies the
// archetype-specific acquisition rule.
func (ai *AggressiveAI) tick(st *model.MatchState, selectTarget func(*model.MatchState) string) {
	u := ai.unit
	if !u.Alive() {
		return
	}

	if ai.cooldownLeft > 0 {
		ai.cooldownLeft--
	}

	// One re-evaluation per tick: validate the held target, or scan.
	obj := ai.validTarget(st)
	if obj == nil {
		ai.targetID = ""
		ai.ticksSinceScan++
		if ai.ticksSinceScan >= idleScanInterval {
			ai.ticksSinceScan = 0
			ai.targetID = selectTarget(st)
			obj = ai.validTarget(st)
		}
	}

	if obj == nil {
		u.State = model.StateIdle
		u.ClearTarget()
		return
	}

	if geo.DistanceToObject(u.X, u.Y, obj) <= u.AttackRange {
		ai.attack(st, obj)
		return
	}

	// Out of reach: press toward the target. Structures do not move, so a
	// blocked step keeps the stale target and retries (AdvanceOrHold).
	u.State = model.StateMoving
	tx, ty := int(obj.X), int(obj.Y)
	if ctx, cty := u.TargetTile(); !u.HasTarget || ctx != tx || cty != ty {
		u.SetTarget(obj.X, obj.Y)
		ai.params.Move.Evict(u.ID)
	}
	ai.params.Move.AdvanceOrHold(u, st, u.Speed)
}

// attack stands the unit still and lands a hit whenever the per-unit attack
// cooldown allows.
func (ai *AggressiveAI) attack(st *model.MatchState, obj *model.GameObject) {
	u := ai.unit
	u.State = model.StateAttacking
	u.ClearTarget()

	if ai.cooldownLeft > 0 {
		return
	}
	ai.cooldownLeft = u.AttackInterval

	if target, ok := st.Unit(obj.ID); ok {
		combat.DealDamageToUnit(target, u.Damage, u.Modifier,
			u.X, u.Y, u.ID, ai.params.CleanupDelay, ai.params.onDamaged)
		return
	}
	if target, ok := st.Building(obj.ID); ok {
		combat.DealDamageToBuilding(target, u.Damage, u.Modifier)
	}
}

// validTarget resolves the held target id, dropping targets that died,
// despawned, became friendly or escaped the chase range.
func (ai *AggressiveAI) validTarget(st *model.MatchState) *model.GameObject {
	if ai.targetID == "" {
		return nil
	}

	if t, ok := st.Unit(ai.targetID); ok {
		if !t.Alive() || !ai.hostileUnit(t) {
			return nil
		}
		if geo.Distance(ai.unit.X, ai.unit.Y, t.X, t.Y) > ai.unit.DetectionRange*chaseRangeFactor {
			return nil
		}
		return &t.GameObject
	}

	if b, ok := st.Building(ai.targetID); ok {
		if !b.Alive() || !ai.hostileBuilding(b) {
			return nil
		}
		// Standing orders on structures are never range-dropped.
		return &b.GameObject
	}

	return nil
}

// selectTarget acquires the nearest enemy unit or building within detection
// range, falling back to the opposing castle at any distance.
func (ai *AggressiveAI) selectTarget(st *model.MatchState) string {
	u := ai.unit

	bestID := ""
	bestDist := u.DetectionRange
	for _, t := range st.UnitsOrdered() {
		if !t.Alive() || !ai.hostileUnit(t) {
			continue
		}
		if d := geo.Distance(u.X, u.Y, t.X, t.Y); d <= bestDist {
			bestID, bestDist = t.ID, d
		}
	}
	for _, b := range st.BuildingsOrdered() {
		if !b.Alive() || !ai.hostileBuilding(b) {
			continue
		}
		if d := geo.DistanceToObject(u.X, u.Y, &b.GameObject); d <= bestDist {
			bestID, bestDist = b.ID, d
		}
	}
	if bestID != "" {
		return bestID
	}

	// Nothing in range: march on the enemy castle.
	for _, b := range st.BuildingsOrdered() {
		if b.Type == model.BuildingCastle && b.Alive() && ai.hostileBuilding(b) {
			return b.ID
		}
	}
	return ""
}

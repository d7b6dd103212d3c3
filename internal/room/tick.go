package room

import (
	"log/slog"

	"github.com/keeprush/arena/internal/action"
	"github.com/keeprush/arena/internal/bot"
	"github.com/keeprush/arena/internal/model"
)

// tick advances the whole simulation by dt seconds. The order inside the
// body is a correctness contract: stale movement caches are swept first,
// cooldown-derived display state refreshed, then phase logic, then AI,
// then bot decisions, then corpse cleanup, and the snapshot last so
// clients always see a fully settled tick.
func (r *Room) tick(dt float64) {
	r.move.Sweep(r.st)
	r.refreshCastles()

	prev := r.st.Phase
	r.phases.Update(r.st, dt)
	if r.st.Phase != prev {
		r.onPhaseChange(prev)
	}

	r.units.TickAll(r.st)
	r.tickBots(dt)
	r.cleanupDead(dt)

	r.tickCount++
	interval := uint64(r.cfg.Server.SnapshotInterval)
	if interval == 0 || r.tickCount%interval == 0 {
		r.broadcastSnapshot()
	}
}

// refreshCastles mirrors each owner's element onto their castle and
// recomputes the cooldown-progress display fraction. The player timestamp
// is the single cooldown authority; the castle field is derived.
func (r *Room) refreshCastles() {
	cooldown := r.cfg.Simulation.ModifierSwitchCooldown
	for _, p := range r.st.PlayersOrdered() {
		castle, ok := r.st.CastleOf(p.ID)
		if !ok {
			continue
		}
		castle.Modifier = p.Modifier
		if cooldown <= 0 {
			castle.CooldownProgress = 1
			continue
		}
		remaining := action.Remaining(p, model.ActionModifierSwitch, cooldown, r.st.PhaseElapsed)
		castle.CooldownProgress = 1 - remaining/cooldown
	}
}

// onPhaseChange reacts to a transition the phase manager performed this
// tick.
func (r *Room) onPhaseChange(prev model.Phase) {
	switch r.st.Phase {
	case model.PhaseInGame:
		r.spawnSeedUnits()
		// Fresh decision timers so bots do not carry lobby time into the
		// match.
		for id := range r.bots {
			r.bots[id] = r.newBot(id)
		}
	case model.PhaseLobby:
		if prev == model.PhaseGameOver {
			r.units.Reset()
			r.move.Sweep(r.st)
		}
	}
}

// spawnSeedUnits places the map's wild units at match start.
func (r *Room) spawnSeedUnits() {
	units, err := r.def.SpawnSeedUnits(r.st)
	if err != nil {
		slog.Error("seed unit spawn failed", "error", err)
		return
	}
	for _, u := range units {
		r.units.Attach(u)
	}
	slog.Info("wild units seeded", "count", len(units))
}

// tickBots runs every bot and executes its decisions through the same
// message path human clients use.
func (r *Room) tickBots(dt float64) {
	if r.st.Phase != model.PhaseInGame {
		return
	}
	for _, id := range r.sortedBotIDs() {
		b := r.bots[id]
		d := b.Update(dt, r.st)
		if d == nil {
			continue
		}
		if _, ok := r.st.Player(id); !ok {
			slog.Warn("decision from unseated bot", "player", id)
			continue
		}
		r.handleMessage(decisionMessage(id, d))
	}
}

func decisionMessage(playerID string, d *bot.Decision) Message {
	switch d.Type {
	case bot.DecisionSwitchModifier:
		return Message{Name: MsgSwitchModifier, PlayerID: playerID, Modifier: int(d.Modifier)}
	default:
		return Message{Name: MsgSpawnUnit, PlayerID: playerID, UnitType: int(d.UnitType)}
	}
}

// cleanupDead counts down corpse timers and removes expired units.
func (r *Room) cleanupDead(dt float64) {
	for _, u := range r.st.UnitsOrdered() {
		if u.Alive() {
			continue
		}
		u.CleanupIn -= dt
		if u.CleanupIn <= 0 {
			r.removeUnit(u.ID)
		}
	}
}

// removeUnit drops a unit from every subsystem that knows about it.
func (r *Room) removeUnit(id string) {
	r.st.RemoveUnit(id)
	r.units.Detach(id)
	r.move.Evict(id)
}

func (r *Room) broadcastSnapshot() {
	if r.sink != nil {
		r.sink.Broadcast(TypeSnapshot, r.st.BuildSnapshot())
	}
}

package room

import (
	"fmt"
	"log/slog"

	"github.com/keeprush/arena/internal/action"
	"github.com/keeprush/arena/internal/bot"
	"github.com/keeprush/arena/internal/model"
)

// handleJoin admits a player during Lobby, claims a castle for them and
// sends the one-time map payload. Full rooms and running matches reject
// the join.
func (r *Room) handleJoin(playerID, name string) {
	if r.st.Phase != model.PhaseLobby {
		r.reject(playerID, "match already running")
		return
	}
	if len(r.st.Players) >= r.cfg.Simulation.MaxPlayers {
		r.reject(playerID, "room is full")
		return
	}
	if _, exists := r.st.Player(playerID); exists {
		r.reject(playerID, "already joined")
		return
	}

	if err := r.admit(model.NewPlayer(playerID, name, false)); err != nil {
		r.reject(playerID, err.Error())
		return
	}
	slog.Info("player joined", "player", playerID, "name", name)

	if r.sink != nil {
		r.sink.Send(playerID, TypeMapInfo, r.st.BuildMapInfo(r.def.Name))
	}
	if r.cfg.Server.FillWithBots {
		r.fillWithBots()
	}
	r.broadcastSnapshot()
}

// admit registers a player and claims a neutral castle for them.
func (r *Room) admit(p *model.Player) error {
	castle, ok := r.st.UnclaimedCastle()
	if !ok {
		return fmt.Errorf("no castle left to claim")
	}
	if err := r.st.AddPlayer(p); err != nil {
		return err
	}
	castle.OwnerID = p.ID
	castle.Modifier = p.Modifier
	r.phases.OnPlayerJoin(r.st)
	return nil
}

func (r *Room) reject(playerID, reason string) {
	slog.Warn("join rejected", "player", playerID, "reason", reason)
	if r.sink != nil {
		r.sink.Send(playerID, TypeJoinRejected, map[string]string{"reason": reason})
	}
}

// fillWithBots tops the lobby up so a single human can play.
func (r *Room) fillWithBots() {
	sim := r.cfg.Simulation
	for i := 1; len(r.st.Players) < sim.MaxPlayers; i++ {
		id := "bot-" + model.NewID()[:8]
		p := model.NewPlayer(id, fmt.Sprintf("Bot %d", i), true)
		if err := r.admit(p); err != nil {
			slog.Warn("bot admission failed", "error", err)
			return
		}
		r.bots[id] = r.newBot(id)
		slog.Info("bot seated", "player", id)
	}
}

func (r *Room) newBot(playerID string) *bot.Bot {
	sim := r.cfg.Simulation
	return bot.New(playerID, bot.Config{
		MinSpawnDelay:  sim.BotMinSpawnDelay,
		MaxSpawnDelay:  sim.BotMaxSpawnDelay,
		SwitchChance:   sim.BotSwitchChance,
		SwitchCooldown: sim.ModifierSwitchCooldown,
	}, r.rng)
}

// handleLeave removes a player, their units and their castle claim, then
// lets the phase manager decide forfeit. When the last human leaves, the
// bots leave too.
func (r *Room) handleLeave(playerID string) {
	p, ok := r.st.Player(playerID)
	if !ok {
		return
	}
	r.evictPlayer(p)

	humans := 0
	for _, other := range r.st.Players {
		if !other.Bot {
			humans++
		}
	}
	if humans == 0 {
		for _, id := range r.sortedBotIDs() {
			if b, ok := r.st.Player(id); ok {
				r.evictPlayer(b)
			}
		}
	}

	r.phases.OnPlayerLeave(r.st)
	r.broadcastSnapshot()
}

func (r *Room) evictPlayer(p *model.Player) {
	for _, u := range r.st.UnitsOrdered() {
		if u.OwnerID == p.ID {
			r.removeUnit(u.ID)
		}
	}
	if castle, ok := r.st.CastleOf(p.ID); ok {
		castle.OwnerID = ""
		castle.Modifier = model.ModifierNone
	}
	r.st.RemovePlayer(p.ID)
	delete(r.bots, p.ID)
	slog.Info("player left", "player", p.ID)
}

// handleMessage validates and dispatches one client or bot request.
func (r *Room) handleMessage(m Message) {
	if !finite(m.X, m.Y) {
		slog.Warn("message with non-finite coordinates", "name", m.Name, "player", m.PlayerID)
		return
	}

	switch m.Name {
	case MsgSpawnUnit:
		if r.st.Phase != model.PhaseInGame {
			return
		}
		ut := model.UnitType(m.UnitType)
		if _, err := model.TemplateFor(ut); err != nil {
			slog.Warn("spawn with unknown unit type", "player", m.PlayerID, "type", m.UnitType)
			return
		}
		action.SpawnUnit(r.st, m.PlayerID, ut, action.SpawnConfig{
			Cooldown:       r.cfg.Simulation.SpawnCooldown,
			SearchDistance: r.cfg.Simulation.RaptorSearchDistance,
			Margin:         r.cfg.Simulation.SafetyMargin,
		}, r.onUnitSpawned)

	case MsgSwitchModifier:
		mod := model.Modifier(m.Modifier)
		if !mod.Valid() || mod == model.ModifierNone {
			slog.Warn("switch to invalid modifier", "player", m.PlayerID, "modifier", m.Modifier)
			return
		}
		r.applySwitch(m.PlayerID, mod)

	case MsgPlayerAction:
		if r.st.Phase != model.PhaseInGame {
			return
		}
		r.actions.Execute(m.Action, m.PlayerID, m.X, m.Y, r.st)

	case MsgCycleCastle:
		p, ok := r.st.Player(m.PlayerID)
		if !ok {
			return
		}
		r.applySwitch(m.PlayerID, nextModifier(p.Modifier))

	default:
		slog.Warn("unknown message", "name", m.Name, "player", m.PlayerID)
	}
}

// applySwitch changes a player's element, gated by the shared
// modifier-switch cooldown. Switching to the element already held is a
// no-op that burns no cooldown.
func (r *Room) applySwitch(playerID string, mod model.Modifier) {
	p, ok := r.st.Player(playerID)
	if !ok {
		slog.Warn("switch from unknown player", "player", playerID)
		return
	}
	if p.Modifier == mod {
		return
	}
	if !action.Ready(p, model.ActionModifierSwitch, r.cfg.Simulation.ModifierSwitchCooldown, r.st.PhaseElapsed) {
		return
	}

	p.Modifier = mod
	action.MarkUsed(p, model.ActionModifierSwitch, r.st.PhaseElapsed)
	slog.Debug("modifier switched", "player", playerID, "modifier", mod)
}

// nextModifier steps through the castle cycle Fire → Water → Earth → Fire.
func nextModifier(m model.Modifier) model.Modifier {
	switch m {
	case model.ModifierFire:
		return model.ModifierWater
	case model.ModifierWater:
		return model.ModifierEarth
	default:
		return model.ModifierFire
	}
}

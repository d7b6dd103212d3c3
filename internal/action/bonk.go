package action

import (
	"log/slog"
	"sort"

	"github.com/keeprush/arena/internal/combat"
	"github.com/keeprush/arena/internal/geo"
	"github.com/keeprush/arena/internal/model"
)

// BonkConfig tunes the area attack.
type BonkConfig struct {
	Cooldown      float64
	Radius        float64
	Damage        int
	MaxHits       int
	Knockback     float64
	KnockbackStep float64
	Margin        float64
	CleanupDelay  float64
}

// BonkAction is the player's area attack: modifier-scaled damage plus
// knockback to the closest enemy units around a target point, capped at
// MaxHits. Friendly units are never hit and never consume cap slots.
type BonkAction struct {
	cfg       BonkConfig
	onDamaged combat.DamagedFunc
	emit      EventFunc
}

// NewBonkAction creates the area attack. onDamaged feeds the AI interrupt
// path; emit receives the broadcastable impact event. Both may be nil.
func NewBonkAction(cfg BonkConfig, onDamaged combat.DamagedFunc, emit EventFunc) *BonkAction {
	return &BonkAction{cfg: cfg, onDamaged: onDamaged, emit: emit}
}

// Name returns the action id.
func (a *BonkAction) Name() string { return model.ActionBonk }

// Execute applies the area attack at the target point.
func (a *BonkAction) Execute(playerID string, targetX, targetY float64, st *model.MatchState) bool {
	p, ok := st.Player(playerID)
	if !ok {
		slog.Warn("action from unknown player", "action", a.Name(), "player", playerID)
		return false
	}
	if !Ready(p, model.ActionBonk, a.cfg.Cooldown, st.PhaseElapsed) {
		return false
	}

	hits := a.enemiesWithin(st, playerID, targetX, targetY)
	for _, u := range hits {
		combat.DealDamageToUnit(u, a.cfg.Damage, p.Modifier, targetX, targetY,
			playerID, a.cfg.CleanupDelay, a.onDamaged)
		if u.Alive() {
			combat.ApplyKnockback(st, u, targetX, targetY,
				a.cfg.Knockback, a.cfg.KnockbackStep, a.cfg.Margin)
		}
	}

	MarkUsed(p, model.ActionBonk, st.PhaseElapsed)
	if a.emit != nil {
		a.emit(Event{
			Name: model.ActionBonk, PlayerID: playerID,
			X: targetX, Y: targetY, Radius: a.cfg.Radius,
		})
	}
	slog.Debug("bonk landed", "player", playerID, "hits", len(hits))
	return true
}

// enemiesWithin resolves the capped hit list: live units within the radius
// not owned by the caster, closest first.
func (a *BonkAction) enemiesWithin(st *model.MatchState, playerID string, x, y float64) []*model.Unit {
	all := combat.UnitsWithinRadius(st, x, y, a.cfg.Radius, 0)

	enemies := all[:0]
	for _, u := range all {
		if u.OwnerID != playerID {
			enemies = append(enemies, u)
		}
	}
	sort.SliceStable(enemies, func(i, j int) bool {
		return geo.DistanceSq(enemies[i].X, enemies[i].Y, x, y) <
			geo.DistanceSq(enemies[j].X, enemies[j].Y, x, y)
	})
	if a.cfg.MaxHits > 0 && len(enemies) > a.cfg.MaxHits {
		enemies = enemies[:a.cfg.MaxHits]
	}
	return enemies
}

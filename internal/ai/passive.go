package ai

import (
	"log/slog"
	"math"

	"github.com/keeprush/arena/internal/model"
	"github.com/keeprush/arena/internal/movement"
)

// wanderAttempts bounds the random-tile search per wander decision.
const wanderAttempts = 8

// PassiveAI wanders within a bounded radius and flees when damaged.
// State machine: Wandering ⇄ Fleeing.
type PassiveAI struct {
	unit   *model.Unit
	params *Params

	ticksSinceWander int
	fleeTicksLeft    int
	fleeDirX         float64
	fleeDirY         float64
}

func newPassiveAI(u *model.Unit, p *Params) *PassiveAI {
	u.State = model.StateWandering
	return &PassiveAI{unit: u, params: p}
}

// UnitID returns the controlled unit's id.
func (ai *PassiveAI) UnitID() string {
	return ai.unit.ID
}

// Tick advances the wander/flee state machine.
func (ai *PassiveAI) Tick(st *model.MatchState) {
	u := ai.unit
	if !u.Alive() {
		return
	}

	if ai.fleeTicksLeft > 0 {
		ai.tickFlee(st)
		return
	}

	u.State = model.StateWandering
	ai.ticksSinceWander++

	if !u.HasTarget && ai.ticksSinceWander >= ai.params.WanderIntervalTicks {
		ai.ticksSinceWander = 0
		ai.pickWanderTarget(st)
	}

	if u.HasTarget {
		r := ai.params.Move.AdvanceOrClear(u, st, u.Speed)
		if r.ReachedTarget {
			u.ClearTarget()
		}
	}
}

// OnDamaged interrupts whatever the unit was doing and flees directly away
// from the damage source.
func (ai *PassiveAI) OnDamaged(srcX, srcY float64, attackerID string) {
	u := ai.unit
	if !u.Alive() {
		return
	}

	dx := u.X - srcX
	dy := u.Y - srcY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		// Source on top of the unit: pick an arbitrary direction.
		dx, dy, dist = 1, 0, 1
	}

	ai.fleeDirX = dx / dist
	ai.fleeDirY = dy / dist
	u.ClearTarget()
	ai.params.Move.Evict(u.ID)
	u.State = model.StateFleeing
	ai.fleeTicksLeft = ai.params.FleeDurationTicks

	if IsDebugEnabled() {
		slog.Debug("passive unit fleeing",
			"unit", u.Name,
			"id", u.ID,
			"from", attackerID)
	}
}

// tickFlee runs the flight leg; after the threat clears the unit resumes
// wandering. The flee target is laid out here, where the map bounds are
// known, rather than in the damage interrupt.
func (ai *PassiveAI) tickFlee(st *model.MatchState) {
	u := ai.unit
	ai.fleeTicksLeft--

	if !u.HasTarget {
		fx := clampToMap(u.X+ai.fleeDirX*ai.params.FleeDistance, st.Width)
		fy := clampToMap(u.Y+ai.fleeDirY*ai.params.FleeDistance, st.Height)
		u.SetTarget(fx, fy)
		ai.params.Move.Evict(u.ID)
	}

	r := ai.params.Move.AdvanceOrClear(u, st, u.Speed)
	if ai.fleeTicksLeft <= 0 || r.ReachedTarget || !u.HasTarget {
		ai.fleeTicksLeft = 0
		u.ClearTarget()
		u.State = model.StateWandering
	}
}

// clampToMap keeps a flee coordinate half a tile inside the map edge.
func clampToMap(v float64, size int) float64 {
	return math.Max(0.5, math.Min(v, float64(size)-0.5))
}

// pickWanderTarget tries a handful of random tiles within the wander radius
// and targets the first reachable one. Finding none just waits for the next
// interval.
func (ai *PassiveAI) pickWanderTarget(st *model.MatchState) {
	u := ai.unit
	for range wanderAttempts {
		dx := (ai.params.Rng.Float64()*2 - 1) * ai.params.WanderRadius
		dy := (ai.params.Rng.Float64()*2 - 1) * ai.params.WanderRadius
		tx, ty := int(u.X+dx), int(u.Y+dy)
		if tx == u.TileX() && ty == u.TileY() {
			continue
		}
		if !movement.TileWalkableFor(st, tx, ty, u.Collision.Radius, ai.params.Margin, u.ID) {
			continue
		}
		tile, _ := st.TileAt(tx, ty)
		u.SetTarget(tile.CenterX(), tile.CenterY())
		ai.params.Move.Evict(u.ID)
		return
	}
}

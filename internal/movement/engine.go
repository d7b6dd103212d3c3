// Package movement implements the per-tick movement and next-step selection
// for units: bounded displacement toward tile centers, a per-unit step cache,
// and the walkability tests shared with spawn placement and knockback.
package movement

import (
	"math"

	"github.com/keeprush/arena/internal/geo"
	"github.com/keeprush/arena/internal/model"
)

// snapEpsilon is the arrival tolerance around a tile center, in tiles.
// Within it a unit is snapped to the exact center so pathfinding and
// spawn-safety logic can assume resting units sit on centers.
const snapEpsilon = 0.001

// Result reports what one Advance call did to a unit.
type Result struct {
	Moved         bool
	ReachedTarget bool
	Blocked       bool
	DistanceMoved float64
}

// cachedStep remembers the adjacent step chosen for a unit. It stays valid
// while the overall target tile is unchanged and the unit has not yet
// reached the step's center.
type cachedStep struct {
	targetTileX, targetTileY int
	stepX, stepY             float64
}

// Engine advances units and owns the step cache. The cache is the only
// long-lived state outside the aggregate root; it is keyed by unit id and
// must be swept when units are removed.
type Engine struct {
	margin float64
	steps  map[string]cachedStep
}

// NewEngine creates a movement engine with the given safety margin.
func NewEngine(margin float64) *Engine {
	return &Engine{
		margin: margin,
		steps:  make(map[string]cachedStep),
	}
}

// Advance moves the unit toward its target by at most speed tiles.
// When the unit already occupies its target tile it heads straight for the
// exact center and snaps onto it; otherwise the engine picks (or reuses) a
// walkable adjacent step tile and moves toward that step's center.
// Blocked is reported when no adjacent walkable step exists; the caller
// decides whether to clear or hold the target (see AdvanceOrClear).
func (e *Engine) Advance(u *model.Unit, st *model.MatchState, speed float64) Result {
	if !u.HasTarget || speed <= 0 {
		return Result{}
	}

	ttx, tty := u.TargetTile()
	targetTile, ok := st.TileAt(ttx, tty)
	if !ok {
		// Target fell off the map: nothing sane to walk toward.
		e.Evict(u.ID)
		return Result{Blocked: true}
	}

	if u.TileX() == ttx && u.TileY() == tty {
		return e.advanceToCenter(u, targetTile.CenterX(), targetTile.CenterY(), speed)
	}

	step, ok := e.validStep(u, ttx, tty)
	if !ok {
		sx, sy, found := e.findStep(u, st, targetTile)
		if !found {
			e.Evict(u.ID)
			return Result{Blocked: true}
		}
		step = cachedStep{targetTileX: ttx, targetTileY: tty, stepX: sx, stepY: sy}
		e.steps[u.ID] = step
	}

	return e.moveToward(u, step.stepX, step.stepY, speed)
}

// AdvanceOrClear is the passive-wander policy: a blocked unit gives up and
// clears its target.
func (e *Engine) AdvanceOrClear(u *model.Unit, st *model.MatchState, speed float64) Result {
	r := e.Advance(u, st, speed)
	if r.Blocked {
		u.ClearTarget()
	}
	return r
}

// AdvanceOrHold is the press-the-attack policy: a blocked unit keeps its
// stale target and retries every subsequent tick.
func (e *Engine) AdvanceOrHold(u *model.Unit, st *model.MatchState, speed float64) Result {
	return e.Advance(u, st, speed)
}

// Evict drops the cached step for a unit. Called on target change, step
// arrival and unit removal.
func (e *Engine) Evict(unitID string) {
	delete(e.steps, unitID)
}

// Sweep drops cache entries for units that no longer exist. Runs once per
// tick so removal never leaks cache entries.
func (e *Engine) Sweep(st *model.MatchState) {
	for id := range e.steps {
		if _, ok := st.Units[id]; !ok {
			delete(e.steps, id)
		}
	}
}

// CacheSize returns the number of live cache entries.
func (e *Engine) CacheSize() int {
	return len(e.steps)
}

// validStep returns the cached step if it still applies.
func (e *Engine) validStep(u *model.Unit, ttx, tty int) (cachedStep, bool) {
	step, ok := e.steps[u.ID]
	if !ok {
		return cachedStep{}, false
	}
	if step.targetTileX != ttx || step.targetTileY != tty {
		return cachedStep{}, false
	}
	if geo.DistanceSq(u.X, u.Y, step.stepX, step.stepY) <= snapEpsilon*snapEpsilon {
		return cachedStep{}, false
	}
	return step, true
}

// cardinalOffsets is the 4-neighborhood used by both the step search and
// the directed-spawn BFS.
var cardinalOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// findStep searches the tiles adjacent to the unit's current tile for the
// walkable one whose center is closest to the target tile's center.
func (e *Engine) findStep(u *model.Unit, st *model.MatchState, target model.Tile) (float64, float64, bool) {
	cx, cy := u.TileX(), u.TileY()

	bestX, bestY := 0.0, 0.0
	bestDist := math.MaxFloat64
	found := false

	for _, off := range cardinalOffsets {
		nx, ny := cx+off[0], cy+off[1]
		if !TileWalkableFor(st, nx, ny, u.Collision.Radius, e.margin, u.ID) {
			continue
		}
		tile, _ := st.TileAt(nx, ny)
		d := geo.DistanceSq(tile.CenterX(), tile.CenterY(), target.CenterX(), target.CenterY())
		if d < bestDist {
			bestDist = d
			bestX, bestY = tile.CenterX(), tile.CenterY()
			found = true
		}
	}

	return bestX, bestY, found
}

// advanceToCenter handles the final tile: straight line to the exact
// center, snapping within the arrival tolerance.
func (e *Engine) advanceToCenter(u *model.Unit, cx, cy, speed float64) Result {
	dist := geo.Distance(u.X, u.Y, cx, cy)
	if dist <= snapEpsilon {
		u.X, u.Y = cx, cy
		e.Evict(u.ID)
		return Result{ReachedTarget: true}
	}

	r := e.moveToward(u, cx, cy, speed)
	if geo.Distance(u.X, u.Y, cx, cy) <= snapEpsilon {
		u.X, u.Y = cx, cy
		e.Evict(u.ID)
		r.ReachedTarget = true
	}
	return r
}

// moveToward displaces the unit toward (tx, ty), clamped to speed tiles.
func (e *Engine) moveToward(u *model.Unit, tx, ty, speed float64) Result {
	dist := geo.Distance(u.X, u.Y, tx, ty)
	if dist == 0 {
		e.Evict(u.ID)
		return Result{}
	}

	amount := math.Min(speed, dist)
	u.X += (tx - u.X) / dist * amount
	u.Y += (ty - u.Y) / dist * amount

	if geo.DistanceSq(u.X, u.Y, tx, ty) <= snapEpsilon*snapEpsilon {
		// Arrived at the step center: re-run the step search next tick.
		e.Evict(u.ID)
	}

	return Result{Moved: true, DistanceMoved: amount}
}

// TileWalkableFor reports whether a tile admits a unit of the given radius:
// the tile exists, its type is walkable, and a padded circle at its center
// clears all buildings and live units (except ignoreID).
func TileWalkableFor(st *model.MatchState, tileX, tileY int, radius, margin float64, ignoreID string) bool {
	tile, ok := st.TileAt(tileX, tileY)
	if !ok || !tile.Walkable() {
		return false
	}
	return geo.CanFitAt(tile.CenterX(), tile.CenterY(), radius, margin, st.Obstacles(ignoreID, true), ignoreID)
}

// PositionWalkable is the off-center variant used by knockback: the point
// must be on the map, on a walkable tile, and clear of obstacles.
func PositionWalkable(st *model.MatchState, x, y, radius, margin float64, ignoreID string) bool {
	if !st.InBounds(x, y) {
		return false
	}
	tile, ok := st.TileAtPoint(x, y)
	if !ok || !tile.Walkable() {
		return false
	}
	return geo.CanFitAt(x, y, radius, margin, st.Obstacles(ignoreID, true), ignoreID)
}

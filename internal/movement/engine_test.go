package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeprush/arena/internal/geo"
	"github.com/keeprush/arena/internal/model"
)

func newState(t *testing.T, w, h int, water map[[2]int]bool) *model.MatchState {
	t.Helper()
	tiles := make([]model.Tile, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tt := model.TileFloor
			if water[[2]int{x, y}] {
				tt = model.TileWater
			}
			tiles = append(tiles, model.Tile{X: x, Y: y, Type: tt})
		}
	}
	st, err := model.NewMatchState(w, h, tiles)
	require.NoError(t, err)
	return st
}

func newUnit(t *testing.T, st *model.MatchState, x, y float64) *model.Unit {
	t.Helper()
	u, err := model.NewUnit(model.UnitWarrior, "p1", x, y)
	require.NoError(t, err)
	require.NoError(t, st.AddUnit(u))
	return u
}

func TestAdvanceNoTarget(t *testing.T) {
	st := newState(t, 5, 5, nil)
	u := newUnit(t, st, 2.5, 2.5)
	e := NewEngine(geo.DefaultMargin)

	r := e.Advance(u, st, 0.1)
	assert.Equal(t, Result{}, r)
	assert.Equal(t, 2.5, u.X)
}

func TestAdvanceNeverExceedsSpeed(t *testing.T) {
	st := newState(t, 10, 10, nil)
	u := newUnit(t, st, 1.5, 1.5)
	u.SetTarget(8.5, 8.5)
	e := NewEngine(geo.DefaultMargin)

	const speed = 0.07
	for i := 0; i < 50; i++ {
		px, py := u.X, u.Y
		r := e.Advance(u, st, speed)
		moved := geo.Distance(px, py, u.X, u.Y)
		assert.LessOrEqual(t, moved, speed+1e-9)
		assert.LessOrEqual(t, r.DistanceMoved, speed+1e-9)
	}
}

func TestAdvanceSnapsToTargetTileCenter(t *testing.T) {
	st := newState(t, 5, 5, nil)
	u := newUnit(t, st, 2.4, 2.5)
	u.SetTarget(2.5, 2.5) // same tile, slightly off center
	e := NewEngine(geo.DefaultMargin)

	r := e.Advance(u, st, 0.2)
	assert.True(t, r.Moved)
	assert.True(t, r.ReachedTarget)
	assert.Equal(t, 2.5, u.X, "snapped to exact center")
	assert.Equal(t, 2.5, u.Y)

	// Already within tolerance: reported reached without movement.
	u2 := newUnit(t, st, 3.5004, 3.5)
	u2.SetTarget(3.5, 3.5)
	r = e.Advance(u2, st, 0.2)
	assert.True(t, r.ReachedTarget)
	assert.False(t, r.Moved)
	assert.Equal(t, 3.5, u2.X)
}

func TestAdvanceWalksAcrossTiles(t *testing.T) {
	st := newState(t, 8, 3, nil)
	u := newUnit(t, st, 1.5, 1.5)
	u.SetTarget(6.5, 1.5)
	e := NewEngine(geo.DefaultMargin)

	reached := false
	for i := 0; i < 400; i++ {
		r := e.Advance(u, st, 0.05)
		require.False(t, r.Blocked, "open corridor must not block")
		if r.ReachedTarget {
			reached = true
			break
		}
	}
	require.True(t, reached)
	assert.Equal(t, 6.5, u.X)
	assert.Equal(t, 1.5, u.Y)
}

func TestAdvanceBlockedWhenSurrounded(t *testing.T) {
	water := map[[2]int]bool{
		{2, 1}: true, {2, 3}: true, {1, 2}: true, {3, 2}: true,
	}
	st := newState(t, 5, 5, water)
	u := newUnit(t, st, 2.5, 2.5)
	u.SetTarget(4.5, 4.5)
	e := NewEngine(geo.DefaultMargin)

	r := e.Advance(u, st, 0.05)
	assert.True(t, r.Blocked)
	assert.False(t, r.Moved)
	assert.True(t, u.HasTarget, "Advance itself never clears the target")
}

func TestAdvanceOrClearDropsTargetWhenBlocked(t *testing.T) {
	water := map[[2]int]bool{
		{2, 1}: true, {2, 3}: true, {1, 2}: true, {3, 2}: true,
	}
	st := newState(t, 5, 5, water)
	u := newUnit(t, st, 2.5, 2.5)
	u.SetTarget(4.5, 4.5)
	e := NewEngine(geo.DefaultMargin)

	r := e.AdvanceOrClear(u, st, 0.05)
	assert.True(t, r.Blocked)
	assert.False(t, u.HasTarget)
}

func TestAdvanceOrHoldKeepsTargetWhenBlocked(t *testing.T) {
	water := map[[2]int]bool{
		{2, 1}: true, {2, 3}: true, {1, 2}: true, {3, 2}: true,
	}
	st := newState(t, 5, 5, water)
	u := newUnit(t, st, 2.5, 2.5)
	u.SetTarget(4.5, 4.5)
	e := NewEngine(geo.DefaultMargin)

	r := e.AdvanceOrHold(u, st, 0.05)
	assert.True(t, r.Blocked)
	assert.True(t, u.HasTarget)

	// Water "drains": the retried advance succeeds.
	st.Tiles[2*5+3] = model.Tile{X: 3, Y: 2, Type: model.TileFloor}
	r = e.AdvanceOrHold(u, st, 0.05)
	assert.True(t, r.Moved)
}

func TestStepCacheLifecycle(t *testing.T) {
	st := newState(t, 8, 3, nil)
	u := newUnit(t, st, 1.5, 1.5)
	u.SetTarget(6.5, 1.5)
	e := NewEngine(geo.DefaultMargin)

	e.Advance(u, st, 0.02)
	assert.Equal(t, 1, e.CacheSize(), "step cached after first advance")

	// Same target: cache persists across ticks.
	e.Advance(u, st, 0.02)
	assert.Equal(t, 1, e.CacheSize())

	// Removing the unit and sweeping drops the entry.
	st.RemoveUnit(u.ID)
	e.Sweep(st)
	assert.Equal(t, 0, e.CacheSize())
}

func TestStepCacheInvalidatedByNewTarget(t *testing.T) {
	st := newState(t, 9, 9, nil)
	u := newUnit(t, st, 4.5, 4.5)
	u.SetTarget(8.5, 4.5)
	e := NewEngine(geo.DefaultMargin)

	e.Advance(u, st, 0.01)
	require.Greater(t, u.X, 4.5, "moving right")

	// Retarget left: the very next advance must react.
	u.SetTarget(0.5, 4.5)
	px := u.X
	e.Advance(u, st, 0.01)
	assert.Less(t, u.X, px, "moving left immediately after retarget")
}

func TestAdvanceRoutesAroundBuildings(t *testing.T) {
	st := newState(t, 9, 3, nil)
	rock := model.NewBuilding(model.BuildingRock, 4.5, 1.5)
	require.NoError(t, st.AddBuilding(rock))

	u := newUnit(t, st, 1.5, 1.5)
	u.SetTarget(7.5, 1.5)
	e := NewEngine(geo.DefaultMargin)

	reached := false
	for i := 0; i < 2000; i++ {
		r := e.Advance(u, st, 0.05)
		require.False(t, geo.CirclesOverlap(u.X, u.Y, u.Collision.Radius, rock.X, rock.Y, rock.Collision.Radius),
			"unit must never overlap the rock")
		if r.ReachedTarget {
			reached = true
			break
		}
	}
	assert.True(t, reached, "unit should route around the rock")
}

func TestTileWalkableFor(t *testing.T) {
	st := newState(t, 5, 5, map[[2]int]bool{{1, 1}: true})

	assert.False(t, TileWalkableFor(st, 1, 1, 0.3, 0.05, ""), "water")
	assert.False(t, TileWalkableFor(st, -1, 0, 0.3, 0.05, ""), "off map")
	assert.True(t, TileWalkableFor(st, 2, 2, 0.3, 0.05, ""))

	rock := model.NewBuilding(model.BuildingRock, 2.5, 2.5)
	require.NoError(t, st.AddBuilding(rock))
	assert.False(t, TileWalkableFor(st, 2, 2, 0.3, 0.05, ""), "rock occupies center")
}

func TestPositionWalkable(t *testing.T) {
	st := newState(t, 5, 5, map[[2]int]bool{{0, 0}: true})

	assert.False(t, PositionWalkable(st, -0.5, 2, 0.3, 0.05, ""))
	assert.False(t, PositionWalkable(st, 0.5, 0.5, 0.3, 0.05, ""), "water tile")
	assert.True(t, PositionWalkable(st, 3.2, 3.8, 0.3, 0.05, ""))
}

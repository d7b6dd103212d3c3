package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeprush/arena/internal/geo"
	"github.com/keeprush/arena/internal/model"
)

// floorState builds an all-floor arena with one joined player.
func floorState(t *testing.T, size int) *model.MatchState {
	t.Helper()
	tiles := make([]model.Tile, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			tiles = append(tiles, model.Tile{X: x, Y: y, Type: model.TileFloor})
		}
	}
	st, err := model.NewMatchState(size, size, tiles)
	require.NoError(t, err)
	require.NoError(t, st.AddPlayer(model.NewPlayer("p1", "Alice", false)))
	return st
}

func flood(st *model.MatchState, x, y int) {
	st.Tiles[y*st.Width+x] = model.Tile{X: x, Y: y, Type: model.TileWater}
}

func addUnit(t *testing.T, st *model.MatchState, ut model.UnitType, owner string, x, y float64) *model.Unit {
	t.Helper()
	u, err := model.NewUnit(ut, owner, x, y)
	require.NoError(t, err)
	require.NoError(t, st.AddUnit(u))
	return u
}

func testBonk(emit EventFunc) *BonkAction {
	return NewBonkAction(BonkConfig{
		Cooldown: 5, Radius: 2.5, Damage: 6, MaxHits: 2,
		Knockback: 4, KnockbackStep: 0.25, Margin: 0.05, CleanupDelay: 1.5,
	}, nil, emit)
}

func TestBonkDamagesEnemiesInRadius(t *testing.T) {
	st := floorState(t, 12)
	near := addUnit(t, st, model.UnitWarrior, "p2", 6.5, 6.0)
	far := addUnit(t, st, model.UnitWarrior, "p2", 1.5, 1.5)

	require.True(t, testBonk(nil).Execute("p1", 6.5, 6.5, st))

	assert.Less(t, near.Health, near.MaxHealth)
	assert.Equal(t, far.MaxHealth, far.Health, "outside the radius")
}

func TestBonkScalesDamageByModifier(t *testing.T) {
	st := floorState(t, 12)
	p, _ := st.Player("p1")
	p.Modifier = model.ModifierFire
	u := addUnit(t, st, model.UnitGolem, "p2", 6.5, 6.5)
	u.Modifier = model.ModifierEarth

	require.True(t, testBonk(nil).Execute("p1", 6.5, 6.5, st))

	// Fire is strong against Earth: 6 base becomes 9.
	assert.Equal(t, u.MaxHealth-9, u.Health)
}

func TestBonkCapSkipsOwnUnits(t *testing.T) {
	st := floorState(t, 12)
	mine := addUnit(t, st, model.UnitWarrior, "p1", 6.5, 6.3)
	e1 := addUnit(t, st, model.UnitGolem, "p2", 6.5, 7.0)
	e2 := addUnit(t, st, model.UnitGolem, "p2", 6.5, 7.5)
	e3 := addUnit(t, st, model.UnitGolem, "p2", 6.5, 8.0)

	require.True(t, testBonk(nil).Execute("p1", 6.5, 6.5, st))

	assert.Equal(t, mine.MaxHealth, mine.Health, "own units are never hit")
	assert.Less(t, e1.Health, e1.MaxHealth)
	assert.Less(t, e2.Health, e2.MaxHealth)
	assert.Equal(t, e3.MaxHealth, e3.Health, "beyond the two-hit cap")
}

func TestBonkKnocksSurvivorsAway(t *testing.T) {
	st := floorState(t, 12)
	u := addUnit(t, st, model.UnitGolem, "p2", 5.5, 5.5)

	srcX, srcY := 5.5, 4.5
	before := geo.Distance(u.X, u.Y, srcX, srcY)
	require.True(t, testBonk(nil).Execute("p1", srcX, srcY, st))

	assert.Greater(t, geo.Distance(u.X, u.Y, srcX, srcY), before)
}

func TestBonkGatedByCooldown(t *testing.T) {
	st := floorState(t, 12)
	u := addUnit(t, st, model.UnitGolem, "p2", 6.5, 6.5)

	b := testBonk(nil)
	require.True(t, b.Execute("p1", 6.5, 6.5, st))
	healthAfterFirst := u.Health

	assert.False(t, b.Execute("p1", 6.5, 6.5, st), "cooldown still running")
	assert.Equal(t, healthAfterFirst, u.Health, "rejected action mutates nothing")

	st.PhaseElapsed = 5
	assert.True(t, b.Execute("p1", 6.5, 6.5, st))
}

func TestBonkEmitsEvent(t *testing.T) {
	st := floorState(t, 12)
	var got *Event
	b := testBonk(func(e Event) { got = &e })

	require.True(t, b.Execute("p1", 3.5, 4.5, st))

	require.NotNil(t, got)
	assert.Equal(t, model.ActionBonk, got.Name)
	assert.Equal(t, "p1", got.PlayerID)
	assert.Equal(t, 3.5, got.X)
	assert.Equal(t, 4.5, got.Y)
}

func testRaptor(onSpawned func(*model.Unit)) *SpawnRaptorAction {
	return NewSpawnRaptorAction(RaptorConfig{
		Cooldown: 30, SearchDistance: 6, Margin: 0.05,
	}, onSpawned)
}

func TestRaptorSpawnsOnRequestedTile(t *testing.T) {
	st := floorState(t, 12)
	var spawned *model.Unit
	a := testRaptor(func(u *model.Unit) { spawned = u })

	require.True(t, a.Execute("p1", 6.2, 6.8, st))

	require.NotNil(t, spawned)
	assert.Equal(t, model.UnitRaptor, spawned.Type)
	assert.Empty(t, spawned.OwnerID, "raptors are wild")
	assert.Equal(t, 6.5, spawned.X)
	assert.Equal(t, 6.5, spawned.Y)
}

func TestRaptorSpawnWalksOffWater(t *testing.T) {
	st := floorState(t, 12)
	flood(st, 6, 6)

	a := testRaptor(nil)
	require.True(t, a.Execute("p1", 6.5, 6.5, st))

	require.Len(t, st.Units, 1)
	for _, u := range st.Units {
		assert.NotEqual(t, [2]int{6, 6}, [2]int{u.TileX(), u.TileY()})
	}
}

func TestRaptorSpawnRejectsDeadEnds(t *testing.T) {
	st := floorState(t, 12)
	// Island at (6,6): walkable itself but every neighbor is water, and so
	// is everything else within the search bound.
	for y := 3; y <= 9; y++ {
		for x := 3; x <= 9; x++ {
			if x != 6 || y != 6 {
				flood(st, x, y)
			}
		}
	}

	a := NewSpawnRaptorAction(RaptorConfig{Cooldown: 30, SearchDistance: 2, Margin: 0.05}, nil)
	assert.False(t, a.Execute("p1", 6.5, 6.5, st))
	assert.Empty(t, st.Units, "failed spawn mutates nothing")

	p, _ := st.Player("p1")
	assert.NotContains(t, p.LastUsed, model.ActionSpawnRaptor, "failed spawn burns no cooldown")
}

func TestRaptorSpawnFailsWhenSearchExhausted(t *testing.T) {
	st := floorState(t, 12)
	for y := 2; y <= 10; y++ {
		for x := 2; x <= 10; x++ {
			flood(st, x, y)
		}
	}

	a := NewSpawnRaptorAction(RaptorConfig{Cooldown: 30, SearchDistance: 3, Margin: 0.05}, nil)
	assert.False(t, a.Execute("p1", 6.5, 6.5, st))
	assert.Empty(t, st.Units)
}

func castleState(t *testing.T) *model.MatchState {
	t.Helper()
	st := floorState(t, 12)
	c := model.NewBuilding(model.BuildingCastle, 2, 2)
	c.OwnerID = "p1"
	require.NoError(t, st.AddBuilding(c))
	return st
}

func testSpawnCfg() SpawnConfig {
	return SpawnConfig{Cooldown: 1.5, SearchDistance: 6, Margin: 0.05}
}

func TestSpawnUnitPlacesNearCastle(t *testing.T) {
	st := castleState(t)
	p, _ := st.Player("p1")
	p.Resources = 50
	p.Modifier = model.ModifierWater

	var spawned *model.Unit
	ok := SpawnUnit(st, "p1", model.UnitWarrior, testSpawnCfg(), func(u *model.Unit) { spawned = u })
	require.True(t, ok)

	require.NotNil(t, spawned)
	assert.Equal(t, "p1", spawned.OwnerID)
	assert.Equal(t, model.ModifierWater, spawned.Modifier, "inherits the player's element")
	assert.Equal(t, 40, p.Resources)

	castle, _ := st.CastleOf("p1")
	assert.False(t, geo.CircleOverlapsObject(spawned.X, spawned.Y,
		spawned.Collision.Radius, &castle.GameObject), "never inside the castle")
	assert.LessOrEqual(t, geo.Distance(spawned.X, spawned.Y, castle.X, castle.Y), 7.0)
}

func TestSpawnUnitRequiresResources(t *testing.T) {
	st := castleState(t)
	p, _ := st.Player("p1")
	p.Resources = 5 // warrior costs 10

	assert.False(t, SpawnUnit(st, "p1", model.UnitWarrior, testSpawnCfg(), nil))
	assert.Empty(t, st.Units)
	assert.Equal(t, 5, p.Resources)
}

func TestSpawnUnitGatedByCooldown(t *testing.T) {
	st := castleState(t)
	p, _ := st.Player("p1")
	p.Resources = 100

	require.True(t, SpawnUnit(st, "p1", model.UnitWarrior, testSpawnCfg(), nil))
	assert.False(t, SpawnUnit(st, "p1", model.UnitWarrior, testSpawnCfg(), nil))
	assert.Len(t, st.Units, 1)
	assert.Equal(t, 90, p.Resources, "rejected spawn costs nothing")

	st.PhaseElapsed = 2
	assert.True(t, SpawnUnit(st, "p1", model.UnitWarrior, testSpawnCfg(), nil))
}

func TestSpawnUnitRequiresClaimedCastle(t *testing.T) {
	st := floorState(t, 12)
	p, _ := st.Player("p1")
	p.Resources = 100

	assert.False(t, SpawnUnit(st, "p1", model.UnitWarrior, testSpawnCfg(), nil))
}

func TestRegistryDispatchesByActionID(t *testing.T) {
	st := floorState(t, 12)
	r := NewRegistry()
	r.Register(testBonk(nil))
	r.Register(testRaptor(nil))

	assert.True(t, r.Execute(model.ActionBonk, "p1", 6.5, 6.5, st))
	assert.True(t, r.Execute(model.ActionSpawnRaptor, "p1", 3.5, 3.5, st))
	assert.False(t, r.Execute("launch_nukes", "p1", 0, 0, st), "unknown id is ignored")
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatTiles(w, h int) []Tile {
	tiles := make([]Tile, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tiles = append(tiles, Tile{X: x, Y: y, Type: TileFloor})
		}
	}
	return tiles
}

func TestNewMatchStateValidation(t *testing.T) {
	_, err := NewMatchState(0, 5, nil)
	assert.Error(t, err)

	_, err = NewMatchState(4, 4, flatTiles(3, 3))
	assert.Error(t, err, "tile slice must cover the grid")

	st, err := NewMatchState(4, 4, flatTiles(4, 4))
	require.NoError(t, err)
	assert.Equal(t, PhaseLobby, st.Phase)
}

func TestTileLookups(t *testing.T) {
	st, err := NewMatchState(3, 2, flatTiles(3, 2))
	require.NoError(t, err)

	tile, ok := st.TileAt(2, 1)
	require.True(t, ok)
	assert.Equal(t, 2, tile.X)
	assert.Equal(t, 1, tile.Y)

	_, ok = st.TileAt(3, 0)
	assert.False(t, ok)
	_, ok = st.TileAt(0, -1)
	assert.False(t, ok)

	tile, ok = st.TileAtPoint(2.9, 1.1)
	require.True(t, ok)
	assert.Equal(t, 2, tile.X)

	assert.True(t, st.InBounds(0, 0))
	assert.False(t, st.InBounds(3.0, 0))
}

func TestTileWalkability(t *testing.T) {
	assert.False(t, Tile{Type: TileWater}.Walkable())
	assert.True(t, Tile{Type: TileFloor}.Walkable())
	assert.True(t, Tile{Type: TileBridge}.Walkable())
}

func TestUnitTemplates(t *testing.T) {
	for _, ut := range []UnitType{UnitWarrior, UnitGolem, UnitSheep, UnitRaptor} {
		tpl, err := TemplateFor(ut)
		require.NoError(t, err)
		assert.Equal(t, ut, tpl.Type)
		assert.Greater(t, tpl.MaxHealth, 0)
		assert.Greater(t, tpl.Radius, 0.0)
		assert.Greater(t, tpl.Weight, 0.0)
	}

	_, err := TemplateFor(UnitType(99))
	assert.Error(t, err)
}

func TestUnitArchetypes(t *testing.T) {
	cases := map[UnitType]Archetype{
		UnitWarrior: ArchetypeAggressive,
		UnitGolem:   ArchetypeAggressive,
		UnitSheep:   ArchetypePassive,
		UnitRaptor:  ArchetypeWildAnimal,
	}
	for ut, want := range cases {
		tpl, err := TemplateFor(ut)
		require.NoError(t, err)
		assert.Equal(t, want, tpl.Archetype, ut.String())
	}
}

func TestUnitLifecycle(t *testing.T) {
	u, err := NewUnit(UnitWarrior, "p1", 3.5, 4.5)
	require.NoError(t, err)

	assert.True(t, u.Alive())
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "p1", u.OwnerID)
	assert.Equal(t, 3, u.TileX())
	assert.Equal(t, 4, u.TileY())

	u.SetTarget(7.5, 2.5)
	assert.True(t, u.HasTarget)
	tx, ty := u.TargetTile()
	assert.Equal(t, 7, tx)
	assert.Equal(t, 2, ty)

	u.ClearTarget()
	assert.False(t, u.HasTarget)
}

func TestDuplicateIDsRejected(t *testing.T) {
	st, err := NewMatchState(4, 4, flatTiles(4, 4))
	require.NoError(t, err)

	u, err := NewUnit(UnitSheep, "", 1.5, 1.5)
	require.NoError(t, err)
	require.NoError(t, st.AddUnit(u))
	assert.Error(t, st.AddUnit(u))

	b := NewBuilding(BuildingTree, 2.5, 2.5)
	require.NoError(t, st.AddBuilding(b))
	assert.Error(t, st.AddBuilding(b))

	p := NewPlayer("p1", "Ann", false)
	require.NoError(t, st.AddPlayer(p))
	assert.Error(t, st.AddPlayer(p))
}

func TestCastleClaims(t *testing.T) {
	st, err := NewMatchState(8, 8, flatTiles(8, 8))
	require.NoError(t, err)

	c1 := NewBuilding(BuildingCastle, 1.5, 4.5)
	c2 := NewBuilding(BuildingCastle, 6.5, 4.5)
	require.NoError(t, st.AddBuilding(c1))
	require.NoError(t, st.AddBuilding(c2))

	_, ok := st.CastleOf("p1")
	assert.False(t, ok)

	free, ok := st.UnclaimedCastle()
	require.True(t, ok)
	free.OwnerID = "p1"

	got, ok := st.CastleOf("p1")
	require.True(t, ok)
	assert.Equal(t, free.ID, got.ID)

	// A neutral castle must never be reported as claimed by "".
	_, ok = st.CastleOf("")
	assert.False(t, ok)
}

func TestObstaclesExcludesSelfAndDead(t *testing.T) {
	st, err := NewMatchState(6, 6, flatTiles(6, 6))
	require.NoError(t, err)

	tree := NewBuilding(BuildingTree, 2.5, 2.5)
	require.NoError(t, st.AddBuilding(tree))

	u1, err := NewUnit(UnitWarrior, "p1", 1.5, 1.5)
	require.NoError(t, err)
	u2, err := NewUnit(UnitWarrior, "p2", 4.5, 4.5)
	require.NoError(t, err)
	require.NoError(t, st.AddUnit(u1))
	require.NoError(t, st.AddUnit(u2))

	obs := st.Obstacles(u1.ID, true)
	assert.Len(t, obs, 2, "tree + other unit")

	u2.Health = 0
	obs = st.Obstacles(u1.ID, true)
	assert.Len(t, obs, 1, "dead units are not obstacles")

	obs = st.Obstacles("", false)
	assert.Len(t, obs, 1, "buildings only")
}

func TestModifierTriangle(t *testing.T) {
	assert.True(t, ModifierFire.StrongAgainst(ModifierEarth))
	assert.True(t, ModifierWater.StrongAgainst(ModifierFire))
	assert.True(t, ModifierEarth.StrongAgainst(ModifierWater))

	assert.False(t, ModifierFire.StrongAgainst(ModifierWater))
	assert.False(t, ModifierFire.StrongAgainst(ModifierFire))
	assert.False(t, ModifierNone.StrongAgainst(ModifierFire))
	assert.False(t, ModifierFire.StrongAgainst(ModifierNone))
}

func TestSnapshotIsSortedAndComplete(t *testing.T) {
	st, err := NewMatchState(4, 4, flatTiles(4, 4))
	require.NoError(t, err)

	require.NoError(t, st.AddPlayer(NewPlayer("pb", "Bo", true)))
	require.NoError(t, st.AddPlayer(NewPlayer("pa", "Al", false)))

	ua, err := NewUnit(UnitSheep, "", 1.5, 1.5)
	require.NoError(t, err)
	ub, err := NewUnit(UnitWarrior, "pa", 2.5, 2.5)
	require.NoError(t, err)
	require.NoError(t, st.AddUnit(ua))
	require.NoError(t, st.AddUnit(ub))

	snap := st.BuildSnapshot()
	require.Len(t, snap.Players, 2)
	assert.Equal(t, "pa", snap.Players[0].ID)
	assert.Equal(t, "pb", snap.Players[1].ID)

	require.Len(t, snap.Units, 2)
	assert.LessOrEqual(t, snap.Units[0].ID, snap.Units[1].ID)
}

package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeprush/arena/internal/model"
)

func testState(t *testing.T) *model.MatchState {
	t.Helper()
	tiles := make([]model.Tile, 0, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			tiles = append(tiles, model.Tile{X: x, Y: y, Type: model.TileFloor})
		}
	}
	st, err := model.NewMatchState(4, 4, tiles)
	require.NoError(t, err)
	require.NoError(t, st.AddPlayer(model.NewPlayer("bot1", "Bot", true)))
	return st
}

func testConfig() Config {
	return Config{
		MinSpawnDelay:  2,
		MaxSpawnDelay:  4,
		SwitchChance:   0.1,
		SwitchCooldown: 8,
	}
}

func TestNoDecisionBeforeDelayElapses(t *testing.T) {
	st := testState(t)
	b := New("bot1", testConfig(), rand.New(rand.NewPCG(1, 1)))

	// The sampled delay is at least MinSpawnDelay.
	assert.Nil(t, b.Update(1.0, st))
	assert.Nil(t, b.Update(0.5, st))
}

func TestEmitsExactlyOneDecisionPerInterval(t *testing.T) {
	st := testState(t)
	b := New("bot1", testConfig(), rand.New(rand.NewPCG(2, 2)))

	decisions := 0
	elapsed := 0.0
	for i := 0; i < 1000; i++ {
		if d := b.Update(0.1, st); d != nil {
			decisions++
		}
		elapsed += 0.1
	}

	// 100 seconds of 2–4s intervals: between 25 and 50 decisions.
	assert.GreaterOrEqual(t, decisions, 25)
	assert.LessOrEqual(t, decisions, 50)
}

func TestSpawnDecisionsUseWeightTable(t *testing.T) {
	st := testState(t)
	cfg := testConfig()
	cfg.SwitchChance = 0 // spawns only
	b := New("bot1", cfg, rand.New(rand.NewPCG(3, 3)))

	counts := map[model.UnitType]int{}
	for i := 0; i < 500; i++ {
		d := b.Update(10, st) // always past the max delay
		require.NotNil(t, d)
		require.Equal(t, DecisionSpawnUnit, d.Type)
		counts[d.UnitType]++
	}

	assert.Greater(t, counts[model.UnitWarrior], counts[model.UnitSheep],
		"combat units carry more weight than sheep")
	assert.Greater(t, counts[model.UnitGolem], 0)
	assert.Zero(t, counts[model.UnitRaptor], "raptors are not in the bot spawn table")
}

func TestSwitchDecisionPicksADifferentElement(t *testing.T) {
	st := testState(t)
	p, _ := st.Player("bot1")
	p.Modifier = model.ModifierWater

	cfg := testConfig()
	cfg.SwitchChance = 1 // switch whenever allowed
	b := New("bot1", cfg, rand.New(rand.NewPCG(4, 4)))

	d := b.Update(10, st)
	require.NotNil(t, d)
	require.Equal(t, DecisionSwitchModifier, d.Type)
	assert.NotEqual(t, model.ModifierWater, d.Modifier)
	assert.True(t, d.Modifier.Valid())
	assert.NotEqual(t, model.ModifierNone, d.Modifier)
}

func TestSwitchSuppressedDuringCooldown(t *testing.T) {
	st := testState(t)
	st.PhaseElapsed = 10
	p, _ := st.Player("bot1")
	p.LastUsed[model.ActionModifierSwitch] = 9 // switched 1s ago, cooldown 8s

	cfg := testConfig()
	cfg.SwitchChance = 1
	b := New("bot1", cfg, rand.New(rand.NewPCG(5, 5)))

	d := b.Update(10, st)
	require.NotNil(t, d)
	assert.Equal(t, DecisionSpawnUnit, d.Type, "falls back to spawning while switch is cooling down")
}

func TestSwitchAllowedAfterPhaseReset(t *testing.T) {
	st := testState(t)
	st.PhaseElapsed = 1
	p, _ := st.Player("bot1")
	// Timestamp ahead of phase time: the phase restarted. Treated as available.
	p.LastUsed[model.ActionModifierSwitch] = 50

	cfg := testConfig()
	cfg.SwitchChance = 1
	b := New("bot1", cfg, rand.New(rand.NewPCG(6, 6)))

	d := b.Update(10, st)
	require.NotNil(t, d)
	assert.Equal(t, DecisionSwitchModifier, d.Type)
}

func TestMissingPlayerNeverSwitches(t *testing.T) {
	st := testState(t)
	cfg := testConfig()
	cfg.SwitchChance = 1
	b := New("ghost", cfg, rand.New(rand.NewPCG(7, 7)))

	d := b.Update(10, st)
	require.NotNil(t, d)
	assert.Equal(t, DecisionSpawnUnit, d.Type)
}

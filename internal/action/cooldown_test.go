package action

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keeprush/arena/internal/model"
)

func TestReadyWhenNeverUsed(t *testing.T) {
	p := model.NewPlayer("p1", "Alice", false)
	assert.True(t, Ready(p, model.ActionBonk, 5, 0))
	assert.Zero(t, Remaining(p, model.ActionBonk, 5, 0))
}

func TestRejectedWhileCoolingDown(t *testing.T) {
	p := model.NewPlayer("p1", "Alice", false)
	MarkUsed(p, model.ActionBonk, 10)

	assert.False(t, Ready(p, model.ActionBonk, 5, 12))
	assert.InDelta(t, 3, Remaining(p, model.ActionBonk, 5, 12), 1e-9)

	assert.True(t, Ready(p, model.ActionBonk, 5, 15))
	assert.Zero(t, Remaining(p, model.ActionBonk, 5, 15))
}

func TestBackwardsTimestampMeansPhaseRestarted(t *testing.T) {
	p := model.NewPlayer("p1", "Alice", false)

	// Recorded in a previous phase: timestamp is ahead of the new phase
	// clock. Treated as freshly available.
	MarkUsed(p, model.ActionBonk, 200)
	assert.True(t, Ready(p, model.ActionBonk, 5, 1))
}

func TestCooldownsAreIndependentPerKey(t *testing.T) {
	p := model.NewPlayer("p1", "Alice", false)
	MarkUsed(p, model.ActionBonk, 10)

	assert.False(t, Ready(p, model.ActionBonk, 5, 11))
	assert.True(t, Ready(p, model.ActionSpawnRaptor, 5, 11))
}

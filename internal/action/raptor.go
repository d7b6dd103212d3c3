package action

import (
	"log/slog"

	"github.com/keeprush/arena/internal/model"
)

// RaptorConfig tunes the directed raptor spawn.
type RaptorConfig struct {
	Cooldown       float64
	SearchDistance int // BFS bound, in tiles from the requested tile
	Margin         float64
}

// SpawnRaptorAction drops a wild raptor near a requested point. Placement
// is a breadth-first search over the tile grid from the requested tile,
// expanding in the four cardinal directions up to SearchDistance, accepting
// the first tile walkable for the raptor's radius that also has a walkable
// neighbor, so the animal is never boxed into a dead end. No qualifying
// tile means the action fails without touching state.
type SpawnRaptorAction struct {
	cfg       RaptorConfig
	onSpawned func(*model.Unit)
}

// NewSpawnRaptorAction creates the raptor spawn. onSpawned is invoked with
// the new unit after it joins the match state; may be nil.
func NewSpawnRaptorAction(cfg RaptorConfig, onSpawned func(*model.Unit)) *SpawnRaptorAction {
	return &SpawnRaptorAction{cfg: cfg, onSpawned: onSpawned}
}

// Name returns the action id.
func (a *SpawnRaptorAction) Name() string { return model.ActionSpawnRaptor }

// Execute spawns a raptor near the target point.
func (a *SpawnRaptorAction) Execute(playerID string, targetX, targetY float64, st *model.MatchState) bool {
	p, ok := st.Player(playerID)
	if !ok {
		slog.Warn("action from unknown player", "action", a.Name(), "player", playerID)
		return false
	}
	if !Ready(p, model.ActionSpawnRaptor, a.cfg.Cooldown, st.PhaseElapsed) {
		return false
	}

	tpl, err := model.TemplateFor(model.UnitRaptor)
	if err != nil {
		slog.Error("raptor template missing", "error", err)
		return false
	}

	tx, ty, found := findSpawnTile(st, int(targetX), int(targetY),
		tpl.Radius, a.cfg.Margin, a.cfg.SearchDistance, true)
	if !found {
		slog.Debug("raptor spawn found no tile", "player", playerID, "x", targetX, "y", targetY)
		return false
	}

	// Wild: owned by nobody, hostile to everything that is not a raptor.
	u, err := model.NewUnit(model.UnitRaptor, "", float64(tx)+0.5, float64(ty)+0.5)
	if err != nil {
		slog.Error("raptor spawn failed", "error", err)
		return false
	}
	if err := st.AddUnit(u); err != nil {
		slog.Error("raptor spawn rejected", "error", err)
		return false
	}

	MarkUsed(p, model.ActionSpawnRaptor, st.PhaseElapsed)
	if a.onSpawned != nil {
		a.onSpawned(u)
	}
	slog.Debug("raptor spawned", "player", playerID, "tile_x", tx, "tile_y", ty)
	return true
}

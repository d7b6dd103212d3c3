package action

import (
	"log/slog"

	"github.com/keeprush/arena/internal/model"
	"github.com/keeprush/arena/internal/movement"
)

// SpawnConfig tunes the plain unit spawn used by spawn messages.
type SpawnConfig struct {
	Cooldown       float64
	SearchDistance int // placement search bound around the castle
	Margin         float64
}

// SpawnUnit handles a spawn message: cooldown gate, resource cost, then
// safe placement near the player's own castle. The unit inherits the
// player's current element. Returns false without mutating state when any
// gate fails.
func SpawnUnit(st *model.MatchState, playerID string, unitType model.UnitType,
	cfg SpawnConfig, onSpawned func(*model.Unit)) bool {

	p, ok := st.Player(playerID)
	if !ok {
		slog.Warn("spawn from unknown player", "player", playerID)
		return false
	}
	tpl, err := model.TemplateFor(unitType)
	if err != nil {
		slog.Warn("spawn of unknown unit type", "player", playerID, "type", int(unitType))
		return false
	}
	if !Ready(p, model.ActionSpawnUnit, cfg.Cooldown, st.PhaseElapsed) {
		return false
	}
	if p.Resources < tpl.Cost {
		return false
	}
	castle, ok := st.CastleOf(playerID)
	if !ok {
		slog.Warn("spawn without a claimed castle", "player", playerID)
		return false
	}

	tx, ty, found := findSpawnTile(st, castle.TileX(), castle.TileY(),
		tpl.Radius, cfg.Margin, cfg.SearchDistance, false)
	if !found {
		slog.Debug("no free tile around castle", "player", playerID)
		return false
	}

	u, err := model.NewUnit(unitType, playerID, float64(tx)+0.5, float64(ty)+0.5)
	if err != nil {
		slog.Error("unit creation failed", "error", err)
		return false
	}
	u.Modifier = p.Modifier
	if err := st.AddUnit(u); err != nil {
		slog.Error("spawn rejected", "error", err)
		return false
	}

	p.Resources -= tpl.Cost
	MarkUsed(p, model.ActionSpawnUnit, st.PhaseElapsed)
	if onSpawned != nil {
		onSpawned(u)
	}
	return true
}

var spawnOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// findSpawnTile breadth-first searches the tile grid outward from a start
// tile, cardinal directions only, up to maxDist steps. It returns the first
// tile walkable for the given radius; with requireNeighbor the tile must
// additionally border at least one walkable tile.
func findSpawnTile(st *model.MatchState, startX, startY int,
	radius, margin float64, maxDist int, requireNeighbor bool) (int, int, bool) {

	type cell struct{ x, y, dist int }

	visited := map[[2]int]bool{}
	queue := []cell{{startX, startY, 0}}
	visited[[2]int{startX, startY}] = true

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if _, ok := st.TileAt(c.x, c.y); ok {
			if movement.TileWalkableFor(st, c.x, c.y, radius, margin, "") &&
				(!requireNeighbor || hasWalkableNeighbor(st, c.x, c.y)) {
				return c.x, c.y, true
			}
		}

		if c.dist >= maxDist {
			continue
		}
		for _, off := range spawnOffsets {
			next := [2]int{c.x + off[0], c.y + off[1]}
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, cell{next[0], next[1], c.dist + 1})
		}
	}
	return 0, 0, false
}

// hasWalkableNeighbor reports whether any cardinal neighbor tile is
// walkable terrain.
func hasWalkableNeighbor(st *model.MatchState, x, y int) bool {
	for _, off := range spawnOffsets {
		if t, ok := st.TileAt(x+off[0], y+off[1]); ok && t.Walkable() {
			return true
		}
	}
	return false
}

package combat

import (
	"math"

	"github.com/keeprush/arena/internal/model"
	"github.com/keeprush/arena/internal/movement"
)

// ApplyKnockback displaces a unit directly away from (srcX, srcY), walking
// outward in step-sized increments up to power/weight tiles and settling on
// the farthest step that is still walkable for the unit's radius. Knockback
// therefore never pushes a unit into an obstacle or off the map. Returns
// the distance actually travelled.
func ApplyKnockback(st *model.MatchState, u *model.Unit, srcX, srcY, power, step, margin float64) float64 {
	if power <= 0 || u.Weight <= 0 || step <= 0 {
		return 0
	}

	dx := u.X - srcX
	dy := u.Y - srcY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		// Source exactly on the unit: no defined away direction.
		return 0
	}
	dx /= dist
	dy /= dist

	maxDist := power / u.Weight
	bestX, bestY, travelled := u.X, u.Y, 0.0

	for d := step; d <= maxDist+1e-9; d += step {
		nx := u.X + dx*d
		ny := u.Y + dy*d
		if !movement.PositionWalkable(st, nx, ny, u.Collision.Radius, margin, u.ID) {
			break
		}
		bestX, bestY, travelled = nx, ny, d
	}

	u.X, u.Y = bestX, bestY
	return travelled
}

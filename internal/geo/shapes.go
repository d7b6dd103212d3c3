// Package geo provides the pure spatial primitives the movement, combat and
// placement systems are built on. Everything here is stateless; coordinates
// are world-space floats in tile units.
package geo

import (
	"math"

	"github.com/keeprush/arena/internal/model"
)

// DefaultMargin is the safety padding added to a unit's radius before any
// walkability or placement test, so units never graze obstacle edges.
// Configurable via config.Simulation.SafetyMargin.
const DefaultMargin = 0.05

// CirclesOverlap reports whether two circles overlap. Uses squared
// distances; touching circles do not count as overlapping.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	sum := r1 + r2
	return dx*dx+dy*dy < sum*sum
}

// RectsOverlap reports whether two axis-aligned rectangles overlap.
// Rectangles are given by center and full extent.
func RectsOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return math.Abs(x1-x2)*2 < w1+w2 && math.Abs(y1-y2)*2 < h1+h2
}

// CircleRectOverlap reports whether a circle overlaps an axis-aligned
// rectangle, via the closest-point-on-rectangle distance test.
func CircleRectOverlap(cx, cy, r, rx, ry, w, h float64) bool {
	nearX := clamp(cx, rx-w/2, rx+w/2)
	nearY := clamp(cy, ry-h/2, ry+h/2)
	dx := cx - nearX
	dy := cy - nearY
	return dx*dx+dy*dy < r*r
}

// PointInCircle reports whether a point lies strictly inside a circle.
func PointInCircle(px, py, cx, cy, r float64) bool {
	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy < r*r
}

// PointInRect reports whether a point lies inside a center-based rectangle.
func PointInRect(px, py, rx, ry, w, h float64) bool {
	return math.Abs(px-rx)*2 < w && math.Abs(py-ry)*2 < h
}

// CircleOverlapsObject tests a circle against an object's true bounds,
// dispatching on the object's collision shape.
func CircleOverlapsObject(cx, cy, r float64, o *model.GameObject) bool {
	switch o.Collision.Kind {
	case model.ShapeRectangle:
		return CircleRectOverlap(cx, cy, r, o.X, o.Y, o.Collision.Width, o.Collision.Height)
	default:
		return CirclesOverlap(cx, cy, r, o.X, o.Y, o.Collision.Radius)
	}
}

// CanFitAt reports whether a circle of the given radius, padded by margin,
// can be placed at (x, y) without overlapping any obstacle's true bounds.
// ignoreID skips the querying object itself. Used by pathfinding, spawn
// placement and knockback alike, so all three agree on what "walkable for a
// radius" means.
func CanFitAt(x, y, radius, margin float64, obstacles []*model.GameObject, ignoreID string) bool {
	padded := radius + margin
	for _, o := range obstacles {
		if o.ID == ignoreID {
			continue
		}
		if CircleOverlapsObject(x, y, padded, o) {
			return false
		}
	}
	return true
}

// DistanceToObject returns the distance from a point to the boundary of an
// object's collision shape, 0 when the point lies inside. Melee reach tests
// use this so circular and rectangular targets behave alike.
func DistanceToObject(x, y float64, o *model.GameObject) float64 {
	switch o.Collision.Kind {
	case model.ShapeRectangle:
		nearX := clamp(x, o.X-o.Collision.Width/2, o.X+o.Collision.Width/2)
		nearY := clamp(y, o.Y-o.Collision.Height/2, o.Y+o.Collision.Height/2)
		return math.Hypot(x-nearX, y-nearY)
	default:
		d := math.Hypot(x-o.X, y-o.Y) - o.Collision.Radius
		if d < 0 {
			return 0
		}
		return d
	}
}

// Distance returns the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistanceSq returns the squared distance, for comparisons on hot paths.
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

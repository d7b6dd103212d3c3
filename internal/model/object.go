package model

import "github.com/google/uuid"

// ShapeKind discriminates the two collision shapes used in the arena.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle
)

// Collision describes an object's footprint in world space.
// Circles use Radius, rectangles use Width/Height; both are centered on the
// owning object's position.
type Collision struct {
	Kind   ShapeKind
	Radius float64
	Width  float64
	Height float64
}

// CircleCollision returns a circular collision descriptor.
func CircleCollision(radius float64) Collision {
	return Collision{Kind: ShapeCircle, Radius: radius}
}

// RectCollision returns a rectangular collision descriptor.
func RectCollision(width, height float64) Collision {
	return Collision{Kind: ShapeRectangle, Width: width, Height: height}
}

// GameObject is the shape shared by buildings and units.
// Positions are world-space floats in tile units; OwnerID "" means the object
// is neutral/wild. The room's single goroutine is the only writer, so fields
// are plain (no locking, see the concurrency contract in the room package).
type GameObject struct {
	ID        string
	OwnerID   string
	X, Y      float64
	Collision Collision
}

// NewID returns a fresh unique object identifier.
func NewID() string {
	return uuid.NewString()
}

// TileX returns the X index of the tile the object currently occupies.
func (o *GameObject) TileX() int {
	return int(o.X)
}

// TileY returns the Y index of the tile the object currently occupies.
func (o *GameObject) TileY() int {
	return int(o.Y)
}

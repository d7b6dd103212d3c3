package model

// TileType classifies a map tile. Walkability derives from the type.
type TileType int

const (
	TileWater TileType = iota
	TileFloor
	TileBridge
)

// String returns human-readable tile type name.
func (t TileType) String() string {
	switch t {
	case TileWater:
		return "WATER"
	case TileFloor:
		return "FLOOR"
	case TileBridge:
		return "BRIDGE"
	default:
		return "UNKNOWN"
	}
}

// Tile is one immutable grid cell. Tiles are created once at map load and
// never destroyed during a match.
type Tile struct {
	X, Y int
	Type TileType
}

// Walkable reports whether the tile type admits units at all.
// Shape/obstacle checks are layered on top by the movement engine.
func (t Tile) Walkable() bool {
	return t.Type != TileWater
}

// CenterX returns the world-space X of the tile center.
func (t Tile) CenterX() float64 {
	return float64(t.X) + 0.5
}

// CenterY returns the world-space Y of the tile center.
func (t Tile) CenterY() float64 {
	return float64(t.Y) + 0.5
}

package model

// BuildingType identifies a static structure kind.
type BuildingType int

const (
	BuildingCastle BuildingType = iota
	BuildingTower
	BuildingTree
	BuildingBush
	BuildingRock
)

// String returns human-readable building type name.
func (t BuildingType) String() string {
	switch t {
	case BuildingCastle:
		return "CASTLE"
	case BuildingTower:
		return "TOWER"
	case BuildingTree:
		return "TREE"
	case BuildingBush:
		return "BUSH"
	case BuildingRock:
		return "ROCK"
	default:
		return "UNKNOWN"
	}
}

// buildingStats maps type to max health and footprint. Scenery types share
// small circular footprints; castles and towers are rectangular.
var buildingStats = map[BuildingType]struct {
	MaxHealth int
	Collision Collision
}{
	BuildingCastle: {MaxHealth: 300, Collision: RectCollision(2.0, 2.0)},
	BuildingTower:  {MaxHealth: 120, Collision: RectCollision(1.0, 1.0)},
	BuildingTree:   {MaxHealth: 40, Collision: CircleCollision(0.4)},
	BuildingBush:   {MaxHealth: 10, Collision: CircleCollision(0.35)},
	BuildingRock:   {MaxHealth: 80, Collision: CircleCollision(0.45)},
}

// Building is a static structure. Castles additionally carry the owning
// player's elemental modifier and a cooldown-progress fraction the client
// renders on the castle banner.
type Building struct {
	GameObject
	Type      BuildingType
	Health    int
	MaxHealth int

	// Castle only. Modifier mirrors the owning player's modifier;
	// CooldownProgress is the modifier-switch cooldown fraction in [0,1],
	// recomputed from the owning player's timestamps every tick.
	Modifier         Modifier
	CooldownProgress float64
}

// NewBuilding creates a building of the given type at tile center (x, y).
// Buildings start neutral; castles are claimed on player join.
func NewBuilding(t BuildingType, x, y float64) *Building {
	stats := buildingStats[t]
	return &Building{
		GameObject: GameObject{
			ID:        NewID(),
			X:         x,
			Y:         y,
			Collision: stats.Collision,
		},
		Type:      t,
		Health:    stats.MaxHealth,
		MaxHealth: stats.MaxHealth,
	}
}

// Alive reports whether the building is still standing.
func (b *Building) Alive() bool {
	return b.Health > 0
}

package model

import "fmt"

// UnitType identifies a spawnable unit kind.
type UnitType int

const (
	UnitWarrior UnitType = iota
	UnitGolem
	UnitSheep
	UnitRaptor
)

// String returns human-readable unit type name.
func (t UnitType) String() string {
	switch t {
	case UnitWarrior:
		return "WARRIOR"
	case UnitGolem:
		return "GOLEM"
	case UnitSheep:
		return "SHEEP"
	case UnitRaptor:
		return "RAPTOR"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether t is a known unit type.
func (t UnitType) Valid() bool {
	return t >= UnitWarrior && t <= UnitRaptor
}

// Archetype is the fixed AI behavior category of a unit type.
type Archetype int

const (
	ArchetypePassive Archetype = iota
	ArchetypeAggressive
	ArchetypeWildAnimal
)

// String returns human-readable archetype name.
func (a Archetype) String() string {
	switch a {
	case ArchetypePassive:
		return "PASSIVE"
	case ArchetypeAggressive:
		return "AGGRESSIVE"
	case ArchetypeWildAnimal:
		return "WILD_ANIMAL"
	default:
		return "UNKNOWN"
	}
}

// BehaviorState is the per-unit AI state.
type BehaviorState int

const (
	StateIdle BehaviorState = iota
	StateWandering
	StateMoving
	StateFleeing
	StateAttacking
)

// String returns human-readable behavior state name.
func (s BehaviorState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateWandering:
		return "WANDERING"
	case StateMoving:
		return "MOVING"
	case StateFleeing:
		return "FLEEING"
	case StateAttacking:
		return "ATTACKING"
	default:
		return "UNKNOWN"
	}
}

// UnitTemplate holds the immutable per-type stats a unit is created from.
// The table below is the single registry, built at process start.
type UnitTemplate struct {
	Type           UnitType
	Archetype      Archetype
	Name           string
	MaxHealth      int
	Speed          float64 // tiles per tick
	Radius         float64
	Weight         float64
	Damage         int
	AttackRange    float64 // world distance for melee reach
	DetectionRange float64
	AttackInterval int // ticks between hits
	Cost           int
}

var unitTemplates = map[UnitType]UnitTemplate{
	UnitWarrior: {
		Type: UnitWarrior, Archetype: ArchetypeAggressive, Name: "Warrior",
		MaxHealth: 40, Speed: 0.035, Radius: 0.35, Weight: 2.0,
		Damage: 4, AttackRange: 1.1, DetectionRange: 5.0, AttackInterval: 45,
		Cost: 10,
	},
	UnitGolem: {
		Type: UnitGolem, Archetype: ArchetypeAggressive, Name: "Golem",
		MaxHealth: 110, Speed: 0.02, Radius: 0.45, Weight: 6.0,
		Damage: 9, AttackRange: 1.2, DetectionRange: 4.0, AttackInterval: 80,
		Cost: 25,
	},
	UnitSheep: {
		Type: UnitSheep, Archetype: ArchetypePassive, Name: "Sheep",
		MaxHealth: 12, Speed: 0.025, Radius: 0.3, Weight: 1.0,
		Damage: 0, AttackRange: 0, DetectionRange: 3.0, AttackInterval: 0,
		Cost: 4,
	},
	UnitRaptor: {
		Type: UnitRaptor, Archetype: ArchetypeWildAnimal, Name: "Raptor",
		MaxHealth: 30, Speed: 0.045, Radius: 0.35, Weight: 1.5,
		Damage: 5, AttackRange: 1.0, DetectionRange: 3.0, AttackInterval: 50,
		Cost: 0,
	},
}

// TemplateFor returns the stat template for a unit type.
func TemplateFor(t UnitType) (UnitTemplate, error) {
	tpl, ok := unitTemplates[t]
	if !ok {
		return UnitTemplate{}, fmt.Errorf("no template for unit type %d", t)
	}
	return tpl, nil
}

// Unit is a mobile game object driven by the AI behavior system.
type Unit struct {
	GameObject
	Type      UnitType
	Archetype Archetype
	Name      string
	State     BehaviorState

	// Movement target. HasTarget false means the unit is not going anywhere.
	TargetX, TargetY float64
	HasTarget        bool

	Speed     float64
	Health    int
	MaxHealth int
	Modifier  Modifier
	Weight    float64
	Damage    int

	AttackRange    float64
	DetectionRange float64
	AttackInterval int

	// CleanupIn counts down (seconds) once the unit dies; the room removes
	// the unit when it reaches zero. Zero while alive.
	CleanupIn float64
}

// NewUnit creates a unit of the given type at (x, y) owned by ownerID
// ("" for wild units). Stats come from the template registry.
func NewUnit(t UnitType, ownerID string, x, y float64) (*Unit, error) {
	tpl, err := TemplateFor(t)
	if err != nil {
		return nil, err
	}

	return &Unit{
		GameObject: GameObject{
			ID:        NewID(),
			OwnerID:   ownerID,
			X:         x,
			Y:         y,
			Collision: CircleCollision(tpl.Radius),
		},
		Type:           t,
		Archetype:      tpl.Archetype,
		Name:           tpl.Name,
		State:          StateIdle,
		Speed:          tpl.Speed,
		Health:         tpl.MaxHealth,
		MaxHealth:      tpl.MaxHealth,
		Modifier:       ModifierNone,
		Weight:         tpl.Weight,
		Damage:         tpl.Damage,
		AttackRange:    tpl.AttackRange,
		DetectionRange: tpl.DetectionRange,
		AttackInterval: tpl.AttackInterval,
	}, nil
}

// Alive reports whether the unit still participates in the simulation.
func (u *Unit) Alive() bool {
	return u.Health > 0
}

// SetTarget points the unit at a world position.
func (u *Unit) SetTarget(x, y float64) {
	u.TargetX = x
	u.TargetY = y
	u.HasTarget = true
}

// ClearTarget stops the unit.
func (u *Unit) ClearTarget() {
	u.TargetX = 0
	u.TargetY = 0
	u.HasTarget = false
}

// TargetTile returns the tile indices of the current target position.
// Only meaningful while HasTarget is true.
func (u *Unit) TargetTile() (int, int) {
	return int(u.TargetX), int(u.TargetY)
}

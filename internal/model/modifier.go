package model

// Modifier is a player's or unit's elemental affinity. The three real
// elements form a rock-paper-scissors triangle; None is always neutral.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierFire
	ModifierWater
	ModifierEarth
)

// strongAgainst is the fixed element cycle Fire→Water→Earth→Fire: each
// element beats the one behind it. Built at process start, never mutated.
var strongAgainst = map[Modifier]Modifier{
	ModifierFire:  ModifierEarth,
	ModifierWater: ModifierFire,
	ModifierEarth: ModifierWater,
}

// String returns human-readable modifier name.
func (m Modifier) String() string {
	switch m {
	case ModifierNone:
		return "NONE"
	case ModifierFire:
		return "FIRE"
	case ModifierWater:
		return "WATER"
	case ModifierEarth:
		return "EARTH"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether m is a known modifier value.
func (m Modifier) Valid() bool {
	return m >= ModifierNone && m <= ModifierEarth
}

// StrongAgainst reports whether m beats other in the element triangle.
// None never beats and is never beaten.
func (m Modifier) StrongAgainst(other Modifier) bool {
	return strongAgainst[m] == other && other != ModifierNone
}

// SwitchableModifiers is the set a player may switch to (None is the spawn
// default only and cannot be selected).
func SwitchableModifiers() []Modifier {
	return []Modifier{ModifierFire, ModifierWater, ModifierEarth}
}

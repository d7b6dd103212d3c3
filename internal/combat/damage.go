// Package combat implements the elemental damage model: the modifier
// triangle, radius queries and knockback. Functions are pure except where a
// damaged-unit callback is threaded through for AI interrupts.
package combat

import (
	"math"

	"github.com/keeprush/arena/internal/model"
)

// Damage multipliers for the elemental triangle.
const (
	NeutralMultiplier = 1.0
	StrongMultiplier  = 1.5
	WeakMultiplier    = 0.5
)

// Multiplier returns the elemental damage multiplier for an attacker/target
// modifier pairing. Same element or either side None is neutral.
func Multiplier(attacker, target model.Modifier) float64 {
	switch {
	case attacker.StrongAgainst(target):
		return StrongMultiplier
	case target.StrongAgainst(attacker):
		return WeakMultiplier
	default:
		return NeutralMultiplier
	}
}

// FinalDamage applies a multiplier to base damage. Any landed hit deals at
// least 1: damage never rounds down to zero once baseDamage is positive.
func FinalDamage(baseDamage int, multiplier float64) int {
	if baseDamage <= 0 {
		return 0
	}
	dmg := int(math.Round(float64(baseDamage) * multiplier))
	if dmg < 1 {
		return 1
	}
	return dmg
}

// DamagedFunc is invoked after a unit takes damage, so the AI system can
// interrupt the unit's current plan (flee, retaliate). srcX/srcY is the
// damage origin, attackerID the damaging object ("" for anonymous sources).
type DamagedFunc func(unit *model.Unit, srcX, srcY float64, attackerID string)

// DealDamageToUnit applies modifier-scaled damage to a unit. A killed unit
// is marked for delayed cleanup rather than removed immediately. onDamaged
// may be nil.
func DealDamageToUnit(target *model.Unit, baseDamage int, attackerMod model.Modifier,
	srcX, srcY float64, attackerID string, cleanupDelay float64, onDamaged DamagedFunc) int {

	if !target.Alive() {
		return 0
	}

	dmg := FinalDamage(baseDamage, Multiplier(attackerMod, target.Modifier))
	target.Health -= dmg
	if target.Health <= 0 {
		target.Health = 0
		target.CleanupIn = cleanupDelay
		target.ClearTarget()
	}

	if onDamaged != nil && target.Alive() {
		onDamaged(target, srcX, srcY, attackerID)
	}
	return dmg
}

// DealDamageToBuilding applies modifier-scaled damage to a building.
// Buildings have no elemental affinity of their own except castles, whose
// modifier mirrors the owning player's.
func DealDamageToBuilding(target *model.Building, baseDamage int, attackerMod model.Modifier) int {
	if !target.Alive() {
		return 0
	}

	dmg := FinalDamage(baseDamage, Multiplier(attackerMod, target.Modifier))
	target.Health -= dmg
	if target.Health < 0 {
		target.Health = 0
	}
	return dmg
}

// Package ai implements the per-unit behavior state machines: passive
// wanderers, aggressive fighters and wild animals, plus the manager that
// ticks them and routes damage interrupts.
package ai

import (
	"math/rand/v2"

	"github.com/keeprush/arena/internal/model"
	"github.com/keeprush/arena/internal/movement"
)

// Controller drives one unit's behavior. Tick runs once per simulation
// tick; OnDamaged may interrupt any state (flee, retaliate) and is invoked
// by the combat system through the manager.
type Controller interface {
	// UnitID returns the id of the controlled unit.
	UnitID() string

	// Tick advances the behavior state machine by one simulation tick.
	Tick(st *model.MatchState)

	// OnDamaged notifies the controller that its unit took damage from
	// (srcX, srcY); attackerID may be "" for anonymous sources.
	OnDamaged(srcX, srcY float64, attackerID string)
}

// Params carries the shared tunables and collaborators controllers need.
// One instance is held by the manager and shared by every controller.
type Params struct {
	Move   *movement.Engine
	Margin float64

	// Passive archetype.
	WanderIntervalTicks int
	WanderRadius        float64
	FleeDistance        float64
	FleeDurationTicks   int

	// Delay before a killed unit is removed.
	CleanupDelay float64

	// Rng is the randomness source; injectable for deterministic tests.
	Rng *rand.Rand

	// onDamaged is wired by the manager so controllers can feed combat
	// results back into other controllers.
	onDamaged func(unit *model.Unit, srcX, srcY float64, attackerID string)
}

// NewController builds the archetype-appropriate controller for a unit.
// The switch is the single dispatch point over archetypes.
func NewController(u *model.Unit, p *Params) Controller {
	switch u.Archetype {
	case model.ArchetypePassive:
		return newPassiveAI(u, p)
	case model.ArchetypeWildAnimal:
		return newWildAnimalAI(u, p)
	default:
		return newAggressiveAI(u, p)
	}
}

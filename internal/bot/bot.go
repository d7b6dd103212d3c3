// Package bot implements the timer-gated decision maker for bot players.
// A bot holds only timers; decisions are opaque data the room executes
// through the same entry points as human messages — the bot never mutates
// match state itself.
package bot

import (
	"math/rand/v2"

	"github.com/keeprush/arena/internal/model"
)

// DecisionType discriminates bot decisions.
type DecisionType int

const (
	DecisionSpawnUnit DecisionType = iota
	DecisionSwitchModifier
)

// Decision is one high-level bot choice, handed back to the room.
type Decision struct {
	Type     DecisionType
	UnitType model.UnitType
	Modifier model.Modifier
}

// spawnWeights is the fixed weighted table for unit selection, biased
// toward combat units.
var spawnWeights = []struct {
	unitType model.UnitType
	weight   int
}{
	{model.UnitWarrior, 5},
	{model.UnitGolem, 3},
	{model.UnitSheep, 1},
}

// Config tunes one bot's timing and temperament.
type Config struct {
	MinSpawnDelay  float64 // seconds
	MaxSpawnDelay  float64
	SwitchChance   float64 // probability of a modifier switch per decision
	SwitchCooldown float64 // mirror of the player modifier-switch cooldown
}

// Bot decides for one bot player. Holds no world references across ticks.
type Bot struct {
	playerID string
	cfg      Config
	rng      *rand.Rand

	elapsed   float64
	nextDelay float64
}

// New creates a bot for a player. rng is injectable so tests can be
// deterministic.
func New(playerID string, cfg Config, rng *rand.Rand) *Bot {
	b := &Bot{playerID: playerID, cfg: cfg, rng: rng}
	b.nextDelay = b.sampleDelay()
	return b
}

// PlayerID returns the bot's player id.
func (b *Bot) PlayerID() string {
	return b.playerID
}

// Update accumulates elapsed time and emits at most one decision once the
// randomized interval elapses. The match state is read-only here, used for
// cooldown inspection only.
func (b *Bot) Update(dt float64, st *model.MatchState) *Decision {
	b.elapsed += dt
	if b.elapsed < b.nextDelay {
		return nil
	}
	b.elapsed = 0
	b.nextDelay = b.sampleDelay()

	if b.rng.Float64() < b.cfg.SwitchChance && b.canSwitchModifier(st) {
		return &Decision{
			Type:     DecisionSwitchModifier,
			Modifier: b.pickOtherModifier(st),
		}
	}

	return &Decision{
		Type:     DecisionSpawnUnit,
		UnitType: b.pickUnitType(),
	}
}

// sampleDelay draws the next decision interval uniformly from
// [MinSpawnDelay, MaxSpawnDelay].
func (b *Bot) sampleDelay() float64 {
	return b.cfg.MinSpawnDelay + b.rng.Float64()*(b.cfg.MaxSpawnDelay-b.cfg.MinSpawnDelay)
}

// canSwitchModifier checks the bot player's own modifier-switch cooldown
// against phase time, so the bot does not emit switches the room would
// reject anyway.
func (b *Bot) canSwitchModifier(st *model.MatchState) bool {
	p, ok := st.Player(b.playerID)
	if !ok {
		return false
	}
	last, used := p.LastUsed[model.ActionModifierSwitch]
	if !used || last > st.PhaseElapsed {
		return true
	}
	return st.PhaseElapsed-last >= b.cfg.SwitchCooldown
}

// pickOtherModifier chooses uniformly between the two elements the bot
// does not currently hold.
func (b *Bot) pickOtherModifier(st *model.MatchState) model.Modifier {
	current := model.ModifierNone
	if p, ok := st.Player(b.playerID); ok {
		current = p.Modifier
	}

	others := make([]model.Modifier, 0, 2)
	for _, m := range model.SwitchableModifiers() {
		if m != current {
			others = append(others, m)
		}
	}
	return others[b.rng.IntN(len(others))]
}

// pickUnitType draws from the fixed weight table.
func (b *Bot) pickUnitType() model.UnitType {
	total := 0
	for _, w := range spawnWeights {
		total += w.weight
	}
	roll := b.rng.IntN(total)
	for _, w := range spawnWeights {
		roll -= w.weight
		if roll < 0 {
			return w.unitType
		}
	}
	return spawnWeights[0].unitType
}

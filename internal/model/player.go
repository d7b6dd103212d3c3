package model

// Action timestamp keys used in Player.LastUsed. Values are phase-elapsed
// seconds at the moment of use; cooldown accounting is phase-relative, not
// wall-clock.
const (
	ActionModifierSwitch = "modifier_switch"
	ActionSpawnUnit      = "spawn_unit"
	ActionBonk           = "bonk"
	ActionSpawnRaptor    = "spawn_raptor"
)

// Player is a joined participant, human or bot.
type Player struct {
	ID        string
	Name      string
	Resources int
	Modifier  Modifier
	Bot       bool

	// ResourceFraction accrues sub-unit income between ticks; whole units
	// roll over into Resources.
	ResourceFraction float64

	// LastUsed records per-action phase-relative use times. An absent key
	// means the action has never been used this phase. Reset on every phase
	// change so cooldowns cannot leak across phases.
	LastUsed map[string]float64
}

// NewPlayer creates a player with the default element and no action history.
func NewPlayer(id, name string, bot bool) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Modifier: ModifierFire,
		Bot:      bot,
		LastUsed: make(map[string]float64),
	}
}

// ResetActionTimes clears all phase-relative timestamps (phase change).
func (p *Player) ResetActionTimes() {
	p.LastUsed = make(map[string]float64)
}

package model

// Phase is the match-level state. The cycle is
// Lobby → InGame → GameOver → Lobby, driven by phase commands.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseInGame
	PhaseGameOver
)

// String returns human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "LOBBY"
	case PhaseInGame:
		return "IN_GAME"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Package phase implements the match-level state machine: the
// Lobby → InGame → GameOver → Lobby cycle, driven by command objects, and
// the manager that owns countdowns and win conditions.
package phase

import "github.com/keeprush/arena/internal/model"

// Command encapsulates one phase transition. Execute validates the current
// phase first: a command run from the wrong phase is a no-op reporting
// false, never an error. On success the mutation is applied atomically.
type Command interface {
	Name() string
	Execute(st *model.MatchState) bool
}

// resetPhaseClock zeroes the phase timer and every player's phase-relative
// action timestamps. Runs on every successful transition, so cooldowns can
// never leak across phases.
func resetPhaseClock(st *model.MatchState) {
	st.PhaseElapsed = 0
	st.Countdown = 0
	for _, p := range st.Players {
		p.ResetActionTimes()
	}
}

// StartGameCommand enters InGame from Lobby.
type StartGameCommand struct{}

// Name returns the command name for logging.
func (StartGameCommand) Name() string { return "start_game" }

// Execute resets the phase timer and winner and enters InGame.
func (StartGameCommand) Execute(st *model.MatchState) bool {
	if st.Phase != model.PhaseLobby {
		return false
	}
	st.Phase = model.PhaseInGame
	st.WinnerID = ""
	resetPhaseClock(st)
	return true
}

// EndGameCommand enters GameOver from InGame, recording the winner
// ("" for a draw).
type EndGameCommand struct {
	WinnerID string
}

// Name returns the command name for logging.
func (EndGameCommand) Name() string { return "end_game" }

// Execute records the winner, resets the phase timer and enters GameOver.
func (c EndGameCommand) Execute(st *model.MatchState) bool {
	if st.Phase != model.PhaseInGame {
		return false
	}
	st.Phase = model.PhaseGameOver
	st.WinnerID = c.WinnerID
	resetPhaseClock(st)
	return true
}

// ResetToLobbyCommand closes the cycle: GameOver back to Lobby.
type ResetToLobbyCommand struct{}

// Name returns the command name for logging.
func (ResetToLobbyCommand) Name() string { return "reset_to_lobby" }

// Execute clears all units, restores every building to full health, zeroes
// player resources, resets the phase timer and enters Lobby. Castle claims
// survive: players are still joined.
func (ResetToLobbyCommand) Execute(st *model.MatchState) bool {
	if st.Phase != model.PhaseGameOver {
		return false
	}

	for id := range st.Units {
		delete(st.Units, id)
	}
	for _, b := range st.Buildings {
		b.Health = b.MaxHealth
	}
	for _, p := range st.Players {
		p.Resources = 0
		p.ResourceFraction = 0
	}

	st.Phase = model.PhaseLobby
	resetPhaseClock(st)
	return true
}

package phase

import (
	"log/slog"

	"github.com/keeprush/arena/internal/model"
)

// Manager owns the lobby-fill and countdown bookkeeping around the phase
// commands, plus the automatic win conditions: forfeit (lone remaining
// player), castle destruction, and match-countdown expiry.
type Manager struct {
	requiredPlayers int
	lobbyCountdown  float64
	matchDuration   float64
	gameOverDelay   float64
	startResources  int
	incomePerSec    float64
}

// Config holds the manager's timing and economy knobs.
type Config struct {
	RequiredPlayers int
	LobbyCountdown  float64
	MatchDuration   float64
	GameOverDelay   float64
	StartResources  int
	IncomePerSec    float64
}

// NewManager creates a phase manager.
func NewManager(cfg Config) *Manager {
	return &Manager{
		requiredPlayers: cfg.RequiredPlayers,
		lobbyCountdown:  cfg.LobbyCountdown,
		matchDuration:   cfg.MatchDuration,
		gameOverDelay:   cfg.GameOverDelay,
		startResources:  cfg.StartResources,
		incomePerSec:    cfg.IncomePerSec,
	}
}

// OnPlayerJoin arms the lobby countdown once all slots are filled.
func (m *Manager) OnPlayerJoin(st *model.MatchState) {
	if st.Phase == model.PhaseLobby && len(st.Players) >= m.requiredPlayers && st.Countdown <= 0 {
		st.Countdown = m.lobbyCountdown
		slog.Info("lobby filled, countdown armed", "seconds", m.lobbyCountdown)
	}
}

// OnPlayerLeave disarms the lobby countdown when a slot frees up, and ends
// a running match by forfeit when one player remains.
func (m *Manager) OnPlayerLeave(st *model.MatchState) {
	switch st.Phase {
	case model.PhaseLobby:
		if len(st.Players) < m.requiredPlayers {
			st.Countdown = 0
		}
	case model.PhaseInGame:
		if len(st.Players) == 1 {
			var winnerID string
			for id := range st.Players {
				winnerID = id
			}
			m.endGame(st, winnerID, "forfeit")
		} else if len(st.Players) == 0 {
			m.endGame(st, "", "abandoned")
		}
	}
}

// Update advances phase time, drives countdowns and evaluates win
// conditions. Runs once per tick, before AI per the tick-order contract.
func (m *Manager) Update(st *model.MatchState, dt float64) {
	st.PhaseElapsed += dt

	switch st.Phase {
	case model.PhaseLobby:
		m.updateLobby(st, dt)
	case model.PhaseInGame:
		m.updateInGame(st, dt)
	case model.PhaseGameOver:
		m.updateGameOver(st, dt)
	}
}

func (m *Manager) updateLobby(st *model.MatchState, dt float64) {
	if st.Countdown <= 0 {
		return
	}
	st.Countdown -= dt
	if st.Countdown > 0 {
		return
	}
	st.Countdown = 0

	if len(st.Players) < m.requiredPlayers {
		return
	}
	if (StartGameCommand{}).Execute(st) {
		st.Countdown = m.matchDuration
		for _, p := range st.Players {
			p.Resources = m.startResources
			p.ResourceFraction = 0
		}
		slog.Info("match started", "players", len(st.Players), "duration", m.matchDuration)
	}
}

func (m *Manager) updateInGame(st *model.MatchState, dt float64) {
	// Resource income accrues with phase time; whole units roll over.
	for _, p := range st.Players {
		p.ResourceFraction += m.incomePerSec * dt
		if whole := int(p.ResourceFraction); whole > 0 {
			p.Resources += whole
			p.ResourceFraction -= float64(whole)
		}
	}

	// Castle destruction: the opponent of the player whose castle fell wins.
	for _, p := range st.PlayersOrdered() {
		castle, ok := st.CastleOf(p.ID)
		if ok && !castle.Alive() {
			m.endGame(st, m.opponentOf(st, p.ID), "castle destroyed")
			return
		}
	}

	st.Countdown -= dt
	if st.Countdown <= 0 {
		m.endGame(st, m.leaderByCastleHealth(st), "time up")
	}
}

func (m *Manager) updateGameOver(st *model.MatchState, dt float64) {
	st.Countdown -= dt
	if st.Countdown > 0 {
		return
	}
	if (ResetToLobbyCommand{}).Execute(st) {
		slog.Info("room reset to lobby", "players", len(st.Players))
		// Enough players still seated: immediately re-arm the next round.
		if len(st.Players) >= m.requiredPlayers {
			st.Countdown = m.lobbyCountdown
		}
	}
}

// endGame executes EndGame and arms the game-over delay.
func (m *Manager) endGame(st *model.MatchState, winnerID, reason string) {
	if (EndGameCommand{WinnerID: winnerID}).Execute(st) {
		st.Countdown = m.gameOverDelay
		slog.Info("match over", "winner", winnerID, "reason", reason)
	}
}

// opponentOf returns the id of any player other than playerID.
func (m *Manager) opponentOf(st *model.MatchState, playerID string) string {
	for _, p := range st.PlayersOrdered() {
		if p.ID != playerID {
			return p.ID
		}
	}
	return ""
}

// leaderByCastleHealth decides a timed-out match: the player whose castle
// kept the most health wins; an exact tie is a draw ("").
func (m *Manager) leaderByCastleHealth(st *model.MatchState) string {
	bestID := ""
	bestHealth := -1
	tie := false
	for _, p := range st.PlayersOrdered() {
		castle, ok := st.CastleOf(p.ID)
		if !ok {
			continue
		}
		switch {
		case castle.Health > bestHealth:
			bestID, bestHealth, tie = p.ID, castle.Health, false
		case castle.Health == bestHealth:
			tie = true
		}
	}
	if tie {
		return ""
	}
	return bestID
}

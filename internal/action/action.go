// Package action implements player-triggered abilities: the area attack,
// the directed raptor spawn, and the plain unit spawn used by spawn
// messages. Actions are strategy objects behind a registry keyed by action
// id; every action is gated by a per-player cooldown measured in phase time.
package action

import (
	"log/slog"

	"github.com/keeprush/arena/internal/model"
)

// Action is one player ability. Execute validates its own preconditions
// (cooldown, resources, placement) and reports whether it mutated state.
// A failed action leaves the match state untouched.
type Action interface {
	Name() string
	Execute(playerID string, targetX, targetY float64, st *model.MatchState) bool
}

// Event is a broadcastable side effect of an action, handed to the room for
// client-side effects. Coordinates are world-space.
type Event struct {
	Name     string  `json:"name"`
	PlayerID string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius,omitempty"`
}

// EventFunc receives action events. May be nil on any action.
type EventFunc func(Event)

// Registry dispatches player-action messages by action id.
type Registry struct {
	actions map[string]Action
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds an action under its own name, replacing any previous one.
func (r *Registry) Register(a Action) {
	r.actions[a.Name()] = a
}

// Execute runs the named action. Unknown action ids are logged and ignored.
func (r *Registry) Execute(name, playerID string, targetX, targetY float64, st *model.MatchState) bool {
	a, ok := r.actions[name]
	if !ok {
		slog.Warn("unknown action id", "action", name, "player", playerID)
		return false
	}
	return a.Execute(playerID, targetX, targetY, st)
}

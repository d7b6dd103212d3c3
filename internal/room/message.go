package room

import "math"

// Message names accepted from clients. Unknown names are logged and
// ignored; malformed payloads are rejected without mutating state.
const (
	MsgSpawnUnit      = "spawn_unit"
	MsgSwitchModifier = "switch_modifier"
	MsgPlayerAction   = "player_action"
	MsgCycleCastle    = "cycle_castle_modifier"
)

// Message is one decoded client (or bot) request. PlayerID is stamped by
// the transport from the authenticated connection, never read from the
// payload.
type Message struct {
	Name     string  `json:"name"`
	PlayerID string  `json:"-"`
	UnitType int     `json:"unitType"`
	Modifier int     `json:"modifier"`
	Action   string  `json:"action"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// finite rejects NaN and infinities before coordinates reach the
// simulation.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

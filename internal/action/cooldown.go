package action

import "github.com/keeprush/arena/internal/model"

// Ready reports whether the player's cooldown for an action key has expired
// at phase time now. A timestamp ahead of now means the phase restarted
// underneath the record, so the action is treated as freshly available.
func Ready(p *model.Player, key string, cooldown, now float64) bool {
	last, used := p.LastUsed[key]
	if !used || last > now {
		return true
	}
	return now-last >= cooldown
}

// MarkUsed records the action's use at phase time now.
func MarkUsed(p *model.Player, key string, now float64) {
	p.LastUsed[key] = now
}

// Remaining returns the seconds left on a cooldown, zero when ready.
func Remaining(p *model.Player, key string, cooldown, now float64) float64 {
	if Ready(p, key, cooldown, now) {
		return 0
	}
	return cooldown - (now - p.LastUsed[key])
}

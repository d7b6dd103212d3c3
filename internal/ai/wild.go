package ai

import (
	"github.com/keeprush/arena/internal/geo"
	"github.com/keeprush/arena/internal/model"
)

// WildAnimalAI is hostile to every unit that is not of its own kind,
// including both players' units and other wild species. It runs the
// aggressive state machine with its tighter detection radius and never
// touches buildings.
type WildAnimalAI struct {
	AggressiveAI
}

func newWildAnimalAI(u *model.Unit, p *Params) *WildAnimalAI {
	u.State = model.StateIdle
	ai := &WildAnimalAI{AggressiveAI: AggressiveAI{
		unit:           u,
		params:         p,
		ticksSinceScan: idleScanInterval,
	}}
	ai.hostileUnit = func(t *model.Unit) bool {
		return t.ID != u.ID && t.Type != u.Type
	}
	ai.hostileBuilding = func(*model.Building) bool { return false }
	return ai
}

// Tick advances the hunt using wild target acquisition.
func (ai *WildAnimalAI) Tick(st *model.MatchState) {
	ai.tick(st, ai.selectPrey)
}

// selectPrey picks the nearest unit of a different kind within detection
// range. Wild animals have no castle to march on: no prey means idling.
func (ai *WildAnimalAI) selectPrey(st *model.MatchState) string {
	u := ai.unit

	bestID := ""
	bestDist := u.DetectionRange
	for _, t := range st.UnitsOrdered() {
		if !t.Alive() || !ai.hostileUnit(t) {
			continue
		}
		if d := geo.Distance(u.X, u.Y, t.X, t.Y); d <= bestDist {
			bestID, bestDist = t.ID, d
		}
	}
	return bestID
}

package combat

import (
	"sort"

	"github.com/keeprush/arena/internal/geo"
	"github.com/keeprush/arena/internal/model"
)

// UnitsWithinRadius returns all live units whose centers fall within radius
// of (x, y). When maxHits > 0 the result is ordered by ascending distance
// and truncated, so the closest units are hit first and the remainder is
// unaffected.
func UnitsWithinRadius(st *model.MatchState, x, y, radius float64, maxHits int) []*model.Unit {
	type hit struct {
		unit   *model.Unit
		distSq float64
	}

	hits := make([]hit, 0, 8)
	for _, u := range st.UnitsOrdered() {
		if !u.Alive() {
			continue
		}
		d := geo.DistanceSq(u.X, u.Y, x, y)
		if d <= radius*radius {
			hits = append(hits, hit{unit: u, distSq: d})
		}
	}

	if maxHits > 0 {
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].distSq < hits[j].distSq })
		if len(hits) > maxHits {
			hits = hits[:maxHits]
		}
	}

	units := make([]*model.Unit, len(hits))
	for i, h := range hits {
		units[i] = h.unit
	}
	return units
}

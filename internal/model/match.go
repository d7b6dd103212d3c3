package model

import (
	"fmt"
	"sort"
)

// MatchState is the aggregate root: every entity collection and all
// match-level bookkeeping for one room. All mutation funnels through it,
// from exactly one writer goroutine (the room's tick/message loop).
type MatchState struct {
	Width, Height int
	Tiles         []Tile // row-major, index y*Width+x

	Buildings map[string]*Building
	Units     map[string]*Unit
	Players   map[string]*Player

	Phase        Phase
	PhaseElapsed float64 // seconds in current phase
	Countdown    float64 // seconds remaining; <= 0 means no countdown armed
	WinnerID     string
}

// NewMatchState creates an empty world of the given dimensions. The tile
// slice must cover the full grid.
func NewMatchState(width, height int, tiles []Tile) (*MatchState, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map dimensions %dx%d", width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("tile count %d does not cover %dx%d grid", len(tiles), width, height)
	}

	return &MatchState{
		Width:     width,
		Height:    height,
		Tiles:     tiles,
		Buildings: make(map[string]*Building),
		Units:     make(map[string]*Unit),
		Players:   make(map[string]*Player),
		Phase:     PhaseLobby,
	}, nil
}

// TileAt returns the tile at grid coordinates, false when out of bounds.
func (s *MatchState) TileAt(x, y int) (Tile, bool) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return Tile{}, false
	}
	return s.Tiles[y*s.Width+x], true
}

// TileAtPoint returns the tile containing a world-space point.
func (s *MatchState) TileAtPoint(x, y float64) (Tile, bool) {
	return s.TileAt(int(x), int(y))
}

// InBounds reports whether a world-space point lies on the map.
func (s *MatchState) InBounds(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(s.Width) && y < float64(s.Height)
}

// AddUnit registers a unit. The id must be unique for the unit's lifetime.
func (s *MatchState) AddUnit(u *Unit) error {
	if _, exists := s.Units[u.ID]; exists {
		return fmt.Errorf("duplicate unit id %s", u.ID)
	}
	s.Units[u.ID] = u
	return nil
}

// RemoveUnit drops a unit from the active collection.
func (s *MatchState) RemoveUnit(id string) {
	delete(s.Units, id)
}

// Unit looks up a unit by id.
func (s *MatchState) Unit(id string) (*Unit, bool) {
	u, ok := s.Units[id]
	return u, ok
}

// UnitsOrdered returns all units sorted by id for deterministic iteration.
func (s *MatchState) UnitsOrdered() []*Unit {
	units := make([]*Unit, 0, len(s.Units))
	for _, u := range s.Units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	return units
}

// AddBuilding registers a building.
func (s *MatchState) AddBuilding(b *Building) error {
	if _, exists := s.Buildings[b.ID]; exists {
		return fmt.Errorf("duplicate building id %s", b.ID)
	}
	s.Buildings[b.ID] = b
	return nil
}

// Building looks up a building by id.
func (s *MatchState) Building(id string) (*Building, bool) {
	b, ok := s.Buildings[id]
	return b, ok
}

// BuildingsOrdered returns all buildings sorted by id.
func (s *MatchState) BuildingsOrdered() []*Building {
	bs := make([]*Building, 0, len(s.Buildings))
	for _, b := range s.Buildings {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].ID < bs[j].ID })
	return bs
}

// AddPlayer registers a player.
func (s *MatchState) AddPlayer(p *Player) error {
	if _, exists := s.Players[p.ID]; exists {
		return fmt.Errorf("duplicate player id %s", p.ID)
	}
	s.Players[p.ID] = p
	return nil
}

// RemovePlayer drops a player.
func (s *MatchState) RemovePlayer(id string) {
	delete(s.Players, id)
}

// Player looks up a player by id.
func (s *MatchState) Player(id string) (*Player, bool) {
	p, ok := s.Players[id]
	return p, ok
}

// PlayersOrdered returns all players sorted by id.
func (s *MatchState) PlayersOrdered() []*Player {
	ps := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	return ps
}

// CastleOf returns the castle claimed by the given player.
func (s *MatchState) CastleOf(playerID string) (*Building, bool) {
	for _, b := range s.Buildings {
		if b.Type == BuildingCastle && b.OwnerID == playerID && playerID != "" {
			return b, true
		}
	}
	return nil, false
}

// UnclaimedCastle returns a neutral castle, if any remains.
func (s *MatchState) UnclaimedCastle() (*Building, bool) {
	for _, b := range s.BuildingsOrdered() {
		if b.Type == BuildingCastle && b.OwnerID == "" {
			return b, true
		}
	}
	return nil, false
}

// Obstacles returns the collision set a moving or spawning circle must
// avoid: all standing buildings and, when includeUnits is set, all live
// units. excludeID removes the querying object itself.
func (s *MatchState) Obstacles(excludeID string, includeUnits bool) []*GameObject {
	obs := make([]*GameObject, 0, len(s.Buildings)+len(s.Units))
	for _, b := range s.Buildings {
		if b.ID == excludeID || !b.Alive() {
			continue
		}
		obs = append(obs, &b.GameObject)
	}
	if includeUnits {
		for _, u := range s.Units {
			if u.ID == excludeID || !u.Alive() {
				continue
			}
			obs = append(obs, &u.GameObject)
		}
	}
	return obs
}

package model

// Snapshot is the plain-record view of the aggregate root handed to the
// transport collaborator. Entity maps are flattened to id-sorted arrays so
// the collaborator can diff consecutive snapshots; the core never
// serializes itself.
type Snapshot struct {
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	Phase        int              `json:"phase"`
	PhaseElapsed float64          `json:"phaseElapsed"`
	Countdown    float64          `json:"countdown"`
	WinnerID     string           `json:"winnerId"`
	Players      []PlayerRecord   `json:"players"`
	Units        []UnitRecord     `json:"units"`
	Buildings    []BuildingRecord `json:"buildings"`
}

// PlayerRecord mirrors Player for the wire.
type PlayerRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Resources int    `json:"resources"`
	Modifier  int    `json:"modifier"`
	Bot       bool   `json:"bot"`
}

// UnitRecord mirrors Unit for the wire.
type UnitRecord struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"ownerId"`
	Type      int     `json:"type"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	State     int     `json:"state"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	Modifier  int     `json:"modifier"`
}

// BuildingRecord mirrors Building for the wire.
type BuildingRecord struct {
	ID               string  `json:"id"`
	OwnerID          string  `json:"ownerId"`
	Type             int     `json:"type"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Health           int     `json:"health"`
	MaxHealth        int     `json:"maxHealth"`
	Modifier         int     `json:"modifier"`
	CooldownProgress float64 `json:"cooldownProgress"`
}

// MapInfo is the immutable map description sent to a client once at join.
// Tiles are numeric tile types in row-major order.
type MapInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []int  `json:"tiles"`
}

// BuildMapInfo flattens the tile grid for the join payload.
func (s *MatchState) BuildMapInfo(name string) MapInfo {
	info := MapInfo{
		Name:   name,
		Width:  s.Width,
		Height: s.Height,
		Tiles:  make([]int, len(s.Tiles)),
	}
	for i, t := range s.Tiles {
		info.Tiles[i] = int(t.Type)
	}
	return info
}

// BuildSnapshot flattens the aggregate root into a Snapshot. Tiles are
// omitted: the map is immutable during a match and clients receive it once
// at join from the map collaborator.
func (s *MatchState) BuildSnapshot() Snapshot {
	snap := Snapshot{
		Width:        s.Width,
		Height:       s.Height,
		Phase:        int(s.Phase),
		PhaseElapsed: s.PhaseElapsed,
		Countdown:    s.Countdown,
		WinnerID:     s.WinnerID,
	}

	for _, p := range s.PlayersOrdered() {
		snap.Players = append(snap.Players, PlayerRecord{
			ID: p.ID, Name: p.Name, Resources: p.Resources,
			Modifier: int(p.Modifier), Bot: p.Bot,
		})
	}
	for _, u := range s.UnitsOrdered() {
		snap.Units = append(snap.Units, UnitRecord{
			ID: u.ID, OwnerID: u.OwnerID, Type: int(u.Type), Name: u.Name,
			X: u.X, Y: u.Y, State: int(u.State),
			Health: u.Health, MaxHealth: u.MaxHealth, Modifier: int(u.Modifier),
		})
	}
	for _, b := range s.BuildingsOrdered() {
		snap.Buildings = append(snap.Buildings, BuildingRecord{
			ID: b.ID, OwnerID: b.OwnerID, Type: int(b.Type),
			X: b.X, Y: b.Y, Health: b.Health, MaxHealth: b.MaxHealth,
			Modifier: int(b.Modifier), CooldownProgress: b.CooldownProgress,
		})
	}
	return snap
}

// Package mapdata supplies the initial arena layout: tile grid, building
// placements and wild-unit seeds. A definition is consumed once at room
// creation; a definition that fails validation aborts room startup.
package mapdata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/keeprush/arena/internal/model"
)

// Tile characters used in definition rows.
const (
	charWater  = '~'
	charFloor  = '.'
	charBridge = '='
)

// BuildingSeed places one building at map load.
type BuildingSeed struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// UnitSeed places one wild unit at match start.
type UnitSeed struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Definition is a complete arena description. Rows are strings of tile
// characters, one per map row, top to bottom.
type Definition struct {
	Name      string         `yaml:"name"`
	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	Rows      []string       `yaml:"rows"`
	Buildings []BuildingSeed `yaml:"buildings"`
	Units     []UnitSeed     `yaml:"units"`
}

// DefaultArena is the built-in map: two castles on opposite banks of a
// vertical river crossed by two bridges, scattered cover, a sheep flock on
// the west bank and a raptor pack guarding the crossings.
func DefaultArena() *Definition {
	return &Definition{
		Name:   "riverside",
		Width:  20,
		Height: 12,
		Rows: []string{
			".........~~.........",
			".........~~.........",
			".........~~.........",
			".........==.........",
			".........~~.........",
			".........~~.........",
			".........~~.........",
			".........~~.........",
			".........==.........",
			".........~~.........",
			".........~~.........",
			".........~~.........",
		},
		Buildings: []BuildingSeed{
			{Type: "castle", X: 2, Y: 6},
			{Type: "castle", X: 18, Y: 6},
			{Type: "tree", X: 5.5, Y: 2.5},
			{Type: "tree", X: 5.5, Y: 9.5},
			{Type: "tree", X: 14.5, Y: 2.5},
			{Type: "tree", X: 14.5, Y: 9.5},
			{Type: "rock", X: 7.5, Y: 5.5},
			{Type: "rock", X: 12.5, Y: 6.5},
			{Type: "bush", X: 4.5, Y: 4.5},
			{Type: "bush", X: 15.5, Y: 7.5},
		},
		Units: []UnitSeed{
			{Type: "sheep", X: 6.5, Y: 7.5},
			{Type: "sheep", X: 7.5, Y: 8.5},
			{Type: "sheep", X: 6.5, Y: 9.5},
			{Type: "raptor", X: 8.5, Y: 3.5},
			{Type: "raptor", X: 11.5, Y: 3.5},
			{Type: "raptor", X: 11.5, Y: 8.5},
		},
	}
}

// Load reads a definition from a YAML file and validates it.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse map file %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map %s: %w", path, err)
	}
	return &def, nil
}

var buildingTypes = map[string]model.BuildingType{
	"castle": model.BuildingCastle,
	"tower":  model.BuildingTower,
	"tree":   model.BuildingTree,
	"bush":   model.BuildingBush,
	"rock":   model.BuildingRock,
}

var unitTypes = map[string]model.UnitType{
	"warrior": model.UnitWarrior,
	"golem":   model.UnitGolem,
	"sheep":   model.UnitSheep,
	"raptor":  model.UnitRaptor,
}

// Validate checks the definition is internally consistent: matching
// dimensions, known tile characters and seed types, in-bounds placements,
// exactly two castles and at least one walkable tile.
func (d *Definition) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("dimensions must be positive, got %dx%d", d.Width, d.Height)
	}
	if len(d.Rows) != d.Height {
		return fmt.Errorf("expected %d rows, got %d", d.Height, len(d.Rows))
	}

	walkable := 0
	for y, row := range d.Rows {
		if len(row) != d.Width {
			return fmt.Errorf("row %d: expected %d tiles, got %d", y, d.Width, len(row))
		}
		for x, c := range row {
			switch c {
			case charWater:
			case charFloor, charBridge:
				walkable++
			default:
				return fmt.Errorf("row %d col %d: unknown tile character %q", y, x, c)
			}
		}
	}
	if walkable == 0 {
		return fmt.Errorf("map has no walkable tiles")
	}

	castles := 0
	for i, b := range d.Buildings {
		if _, ok := buildingTypes[b.Type]; !ok {
			return fmt.Errorf("building %d: unknown type %q", i, b.Type)
		}
		if !d.inBounds(b.X, b.Y) {
			return fmt.Errorf("building %d (%s): position (%v, %v) out of bounds", i, b.Type, b.X, b.Y)
		}
		if b.Type == "castle" {
			castles++
		}
	}
	if castles != 2 {
		return fmt.Errorf("expected exactly 2 castles, got %d", castles)
	}

	for i, u := range d.Units {
		if _, ok := unitTypes[u.Type]; !ok {
			return fmt.Errorf("unit seed %d: unknown type %q", i, u.Type)
		}
		if !d.inBounds(u.X, u.Y) {
			return fmt.Errorf("unit seed %d (%s): position (%v, %v) out of bounds", i, u.Type, u.X, u.Y)
		}
	}
	return nil
}

func (d *Definition) inBounds(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(d.Width) && y < float64(d.Height)
}

// BuildState constructs the match state this definition describes: the
// full tile grid plus all buildings, still neutral. Unit seeds are not
// placed here; SpawnSeedUnits runs at match start.
func (d *Definition) BuildState() (*model.MatchState, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	tiles := make([]model.Tile, 0, d.Width*d.Height)
	for y, row := range d.Rows {
		for x, c := range row {
			t := model.Tile{X: x, Y: y}
			switch c {
			case charWater:
				t.Type = model.TileWater
			case charBridge:
				t.Type = model.TileBridge
			default:
				t.Type = model.TileFloor
			}
			tiles = append(tiles, t)
		}
	}

	st, err := model.NewMatchState(d.Width, d.Height, tiles)
	if err != nil {
		return nil, err
	}
	for _, seed := range d.Buildings {
		b := model.NewBuilding(buildingTypes[seed.Type], seed.X, seed.Y)
		if err := st.AddBuilding(b); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// SpawnSeedUnits places the definition's wild units into the state and
// returns them so the caller can attach AI controllers. All seeded units
// are unowned.
func (d *Definition) SpawnSeedUnits(st *model.MatchState) ([]*model.Unit, error) {
	units := make([]*model.Unit, 0, len(d.Units))
	for _, seed := range d.Units {
		u, err := model.NewUnit(unitTypes[seed.Type], "", seed.X, seed.Y)
		if err != nil {
			return nil, err
		}
		if err := st.AddUnit(u); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

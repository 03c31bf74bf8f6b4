// Package tuning loads the generation parameters from tuning.yaml and
// maps them onto the generator configs. Every field has a shipped
// default so the pipeline runs without a config file.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hexatlas.world/internal/gen/rivergen"
	"hexatlas.world/internal/gen/worldgen"
)

type Tuning struct {
	World  World  `yaml:"world"`
	Rivers Rivers `yaml:"rivers"`
}

type World struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Continents []Continent `yaml:"continents"`
	Islands    []Island    `yaml:"islands"`

	ForestContinent string `yaml:"forest_continent"`
	JungleContinent string `yaml:"jungle_continent"`

	DesertTargetTiles int     `yaml:"desert_target_tiles"`
	DesertSplit       float64 `yaml:"desert_split"`

	VolcanoTarget int `yaml:"volcano_target"`

	TundraLatitude float64 `yaml:"tundra_latitude"`
	IceLatitude    float64 `yaml:"ice_latitude"`

	MountainMinElevation int `yaml:"mountain_min_elevation"`
}

type Continent struct {
	Name    string `yaml:"name"`
	Col     int    `yaml:"col"`
	Row     int    `yaml:"row"`
	RadiusX int    `yaml:"radius_x"`
	RadiusY int    `yaml:"radius_y"`
}

type Island struct {
	Name     string `yaml:"name"`
	Col      int    `yaml:"col"`
	Row      int    `yaml:"row"`
	Radius   int    `yaml:"radius"`
	Mountain bool   `yaml:"mountain"`
}

type Rivers struct {
	MinLength   int  `yaml:"min_length"`
	MaxAttempts int  `yaml:"max_attempts"`
	FlowToOcean bool `yaml:"flow_to_ocean"`
	AllowLakes  bool `yaml:"allow_lakes"`
	TargetCount int  `yaml:"target_count"`
}

// Default returns the shipped tuning, identical to the generator
// defaults.
func Default() Tuning {
	w := worldgen.DefaultConfig()
	r := rivergen.DefaultConfig()

	t := Tuning{
		World: World{
			Width:                w.Width,
			Height:               w.Height,
			ForestContinent:      w.ForestContinent,
			JungleContinent:      w.JungleContinent,
			DesertTargetTiles:    w.DesertTargetTiles,
			DesertSplit:          w.DesertSplit,
			VolcanoTarget:        w.VolcanoTarget,
			TundraLatitude:       w.TundraLatitude,
			IceLatitude:          w.IceLatitude,
			MountainMinElevation: w.MountainMinElevation,
		},
		Rivers: Rivers{
			MinLength:   r.MinLength,
			MaxAttempts: r.MaxAttempts,
			FlowToOcean: r.FlowToOcean,
			AllowLakes:  r.AllowLakes,
			TargetCount: 20,
		},
	}
	for _, c := range w.Continents {
		t.World.Continents = append(t.World.Continents, Continent{
			Name: c.Name, Col: c.Col, Row: c.Row, RadiusX: c.RadiusX, RadiusY: c.RadiusY,
		})
	}
	for _, is := range w.Islands {
		t.World.Islands = append(t.World.Islands, Island{
			Name: is.Name, Col: is.Col, Row: is.Row, Radius: is.Radius, Mountain: is.Mountain,
		})
	}
	return t
}

// Load reads tuning.yaml, overlaying the file on the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// WorldConfig maps the tuning onto the world generator config,
// keeping the generator defaults for anything the file does not carry.
func (t Tuning) WorldConfig() worldgen.GenConfig {
	cfg := worldgen.DefaultConfig()

	if t.World.Width > 0 {
		cfg.Width = t.World.Width
	}
	if t.World.Height > 0 {
		cfg.Height = t.World.Height
	}
	if len(t.World.Continents) > 0 {
		cfg.Continents = nil
		for _, c := range t.World.Continents {
			cfg.Continents = append(cfg.Continents, worldgen.ContinentSpec{
				Name: c.Name, Col: c.Col, Row: c.Row, RadiusX: c.RadiusX, RadiusY: c.RadiusY,
			})
		}
	}
	if len(t.World.Islands) > 0 {
		cfg.Islands = nil
		for _, is := range t.World.Islands {
			cfg.Islands = append(cfg.Islands, worldgen.IslandSpec{
				Name: is.Name, Col: is.Col, Row: is.Row, Radius: is.Radius, Mountain: is.Mountain,
			})
		}
	}
	if t.World.ForestContinent != "" {
		cfg.ForestContinent = t.World.ForestContinent
	}
	if t.World.JungleContinent != "" {
		cfg.JungleContinent = t.World.JungleContinent
	}
	if t.World.DesertTargetTiles > 0 {
		cfg.DesertTargetTiles = t.World.DesertTargetTiles
	}
	if t.World.DesertSplit > 0 {
		cfg.DesertSplit = t.World.DesertSplit
	}
	if t.World.VolcanoTarget > 0 {
		cfg.VolcanoTarget = t.World.VolcanoTarget
	}
	if t.World.TundraLatitude > 0 {
		cfg.TundraLatitude = t.World.TundraLatitude
	}
	if t.World.IceLatitude > 0 {
		cfg.IceLatitude = t.World.IceLatitude
	}
	if t.World.MountainMinElevation > 0 {
		cfg.MountainMinElevation = t.World.MountainMinElevation
	}
	return cfg
}

// RiverConfig maps the tuning onto the river generator config.
func (t Tuning) RiverConfig() rivergen.Config {
	cfg := rivergen.DefaultConfig()
	if t.Rivers.MinLength > 0 {
		cfg.MinLength = t.Rivers.MinLength
	}
	if t.Rivers.MaxAttempts > 0 {
		cfg.MaxAttempts = t.Rivers.MaxAttempts
	}
	cfg.FlowToOcean = t.Rivers.FlowToOcean
	cfg.AllowLakes = t.Rivers.AllowLakes
	return cfg
}

// TargetCount returns the desired river count, defaulting to 20.
func (t Tuning) TargetCount() int {
	if t.Rivers.TargetCount > 0 {
		return t.Rivers.TargetCount
	}
	return 20
}

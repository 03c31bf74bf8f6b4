package worldgen

import "hexatlas.world/internal/gen/hexgrid"

// Terrain is the base classification of a tile. Exactly one terrain per
// tile; visual/behavioral modifiers are layered on top as features.
type Terrain uint8

const (
	TerrainOcean Terrain = iota
	TerrainCoast
	TerrainIce
	TerrainPlains
	TerrainMeadow
	TerrainHills
	TerrainMountainRange
	TerrainTundra
	TerrainDesert
)

var terrainNames = [...]string{
	TerrainOcean:         "ocean",
	TerrainCoast:         "coast",
	TerrainIce:           "ice",
	TerrainPlains:        "plains",
	TerrainMeadow:        "meadow",
	TerrainHills:         "hills",
	TerrainMountainRange: "mountain_range",
	TerrainTundra:        "tundra",
	TerrainDesert:        "desert",
}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "unknown"
}

// IsWater reports whether the terrain is ocean, coast or ice. Water
// tiles never belong to a continent and never carry land features.
func (t Terrain) IsWater() bool {
	return t == TerrainOcean || t == TerrainCoast || t == TerrainIce
}

// IsLand is the complement of IsWater with tundra excluded: tundra is
// ocean-only polar terrain, so for adjacency purposes (coast derivation,
// river mouths) it does not count as land.
func (t Terrain) IsLand() bool {
	return !t.IsWater() && t != TerrainTundra
}

// Feature is a modifier tag layered on a tile's terrain.
type Feature uint16

const (
	FeatureForest Feature = 1 << iota
	FeatureJungle
	FeatureBorealForest
	FeatureOasis
	FeatureVolcano
	FeatureMountain
	FeatureRiver
)

var featureNames = map[Feature]string{
	FeatureForest:       "forest",
	FeatureJungle:       "jungle",
	FeatureBorealForest: "boreal_forest",
	FeatureOasis:        "oasis",
	FeatureVolcano:      "volcano",
	FeatureMountain:     "mountain",
	FeatureRiver:        "river",
}

// allFeatures is ordered by bit position so listings are deterministic.
var allFeatures = []Feature{
	FeatureForest, FeatureJungle, FeatureBorealForest,
	FeatureOasis, FeatureVolcano, FeatureMountain, FeatureRiver,
}

// FeatureSet is a bitset of features. Value semantics keep the tile
// arena flat; the zero value is the empty set.
type FeatureSet uint16

func (s FeatureSet) Has(f Feature) bool { return s&FeatureSet(f) != 0 }
func (s *FeatureSet) Add(f Feature)     { *s |= FeatureSet(f) }
func (s *FeatureSet) Remove(f Feature)  { *s &^= FeatureSet(f) }
func (s FeatureSet) Empty() bool        { return s == 0 }

// Names returns the set as sorted tag strings for wire encoding.
func (s FeatureSet) Names() []string {
	if s == 0 {
		return nil
	}
	out := make([]string, 0, 4)
	for _, f := range allFeatures {
		if s.Has(f) {
			out = append(out, featureNames[f])
		}
	}
	return out
}

// Hemisphere of a tile, derived from its latitude.
type Hemisphere uint8

const (
	HemisphereNorth Hemisphere = iota
	HemisphereSouth
)

func (h Hemisphere) String() string {
	if h == HemisphereSouth {
		return "south"
	}
	return "north"
}

// Season is a display-only field derived from the month number and the
// tile's hemisphere. It never influences terrain.
type Season uint8

const (
	SeasonWinter Season = iota
	SeasonSpring
	SeasonSummer
	SeasonAutumn
)

var seasonNames = [...]string{"winter", "spring", "summer", "autumn"}

func (s Season) String() string { return seasonNames[s%4] }

// seasonFor maps a month (1..14 on the world calendar) and hemisphere
// to a season. The southern hemisphere runs half a year out of phase.
func seasonFor(month int, h Hemisphere) Season {
	if month < 1 {
		month = 1
	}
	if month > monthsPerYear {
		month = monthsPerYear
	}
	idx := (month - 1) * 4 / monthsPerYear
	if h == HemisphereSouth {
		idx = (idx + 2) % 4
	}
	return Season(idx)
}

const monthsPerYear = 14

// Tile is one hexagonal cell. Tiles are created once by the base
// classification pass and mutated in place by every later pass; after
// generation returns they are read-only to everything except the river
// generator, which may only set the river feature and flag.
type Tile struct {
	Coord hexgrid.Coord
	X, Y  float64 // cartesian-equivalent center

	Terrain  Terrain
	Features FeatureSet

	Elevation   int // 0..10
	Temperature float64
	Rainfall    float64

	Volcano bool
	River   bool

	Continent string // empty when the tile belongs to no landmass

	Latitude   float64
	Hemisphere Hemisphere
	Season     Season
}

// sanitizeFeatures drops any feature that is no longer legal for the
// tile's terrain. Called whenever a cleanup pass rewrites terrain.
func (t *Tile) sanitizeFeatures() {
	if t.Terrain != TerrainHills {
		t.Features.Remove(FeatureJungle)
		t.Features.Remove(FeatureForest)
	}
	if t.Terrain != TerrainTundra {
		t.Features.Remove(FeatureBorealForest)
	}
	if t.Terrain != TerrainDesert {
		t.Features.Remove(FeatureOasis)
	}
	if t.Terrain != TerrainMountainRange {
		t.Features.Remove(FeatureVolcano)
		t.Volcano = false
	}
}

package worldgen

// ContinentSpec is a placement region used only while generating; the
// only trace it leaves on tiles is the continent tag.
type ContinentSpec struct {
	Name string
	// Center and radii in offset (col, row) space.
	Col, Row int
	RadiusX  int
	RadiusY  int
}

// IslandSpec places a small landmass. Mountain islands get a forced
// volcanic peak at their center.
type IslandSpec struct {
	Name     string
	Col, Row int
	Radius   int
	Mountain bool
}

// GenConfig carries every world-generation parameter. The zero value
// is not usable; start from DefaultConfig and override.
type GenConfig struct {
	Width  int
	Height int

	Continents []ContinentSpec
	Islands    []IslandSpec

	// Names selecting which continent hosts which biome rules.
	ForestContinent string
	JungleContinent string

	// Coastline shaping.
	CoastNoiseAmp   float64 // radial distortion from the simplex layer
	CoastNoiseFreq  float64
	CoastRaggedness float64 // chance to erode a rim tile back to ocean

	// Latitude bands (absolute degrees).
	TundraLatitude float64
	IceLatitude    float64

	// Elevation model.
	MountainMinElevation int
	ElevationNoiseFreq   float64

	// Desert clustering.
	DesertTargetTiles int
	DesertSplit       float64 // share of the target carved on the first continent

	// Mountain arcs around desert clusters.
	ArcSweepDegrees  float64
	ArcThickness     int
	ArcRadiusPadding float64

	// Jungle-zone expansion.
	JungleRadius int
	JungleChance float64

	// Volcanoes.
	VolcanoTarget      int
	VolcanoMaxAttempts int

	// Feature tagging probabilities.
	JungleFeatureChance float64
	ForestFeatureChance float64
	BorealChance        float64
	OasisChance         float64
	MountainTagChance   float64

	// Consistency cleanup.
	MaxCleanupPasses int

	// DebugChecks runs the stage-appropriate invariant checks after
	// every pipeline stage and panics on violation. Test-only.
	DebugChecks bool
}

// DefaultConfig returns the shipped world layout: two continents, a
// scatter of islands, and the tuning the renderer expects.
func DefaultConfig() GenConfig {
	return GenConfig{
		Width:  220,
		Height: 160,

		Continents: []ContinentSpec{
			{Name: "boreas", Col: 62, Row: 48, RadiusX: 44, RadiusY: 34},
			{Name: "austra", Col: 152, Row: 102, RadiusX: 40, RadiusY: 36},
		},
		Islands: []IslandSpec{
			{Name: "emberholm", Col: 118, Row: 34, Radius: 6, Mountain: true},
			{Name: "seastead", Col: 30, Row: 112, Radius: 5},
			{Name: "cinder_teeth", Col: 186, Row: 44, Radius: 4, Mountain: true},
			{Name: "lowsands", Col: 104, Row: 136, Radius: 5},
		},

		ForestContinent: "boreas",
		JungleContinent: "austra",

		CoastNoiseAmp:   0.18,
		CoastNoiseFreq:  0.045,
		CoastRaggedness: 0.3,

		TundraLatitude: 66,
		IceLatitude:    78,

		MountainMinElevation: 6,
		ElevationNoiseFreq:   0.09,

		DesertTargetTiles: 170,
		DesertSplit:       0.55,

		ArcSweepDegrees:  235,
		ArcThickness:     2,
		ArcRadiusPadding: 2.5,

		JungleRadius: 22,
		JungleChance: 0.7,

		VolcanoTarget:      9,
		VolcanoMaxAttempts: 600,

		JungleFeatureChance: 0.8,
		ForestFeatureChance: 0.55,
		BorealChance:        0.35,
		OasisChance:         0.05,
		MountainTagChance:   0.5,

		MaxCleanupPasses: 4,
	}
}

func (c GenConfig) continent(name string) *ContinentSpec {
	for i := range c.Continents {
		if c.Continents[i].Name == name {
			return &c.Continents[i]
		}
	}
	return nil
}

package worldgen

import (
	"fmt"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/sirupsen/logrus"

	"hexatlas.world/internal/gen/hexgrid"
	"hexatlas.world/internal/gen/rng"
)

// genState is the shared handle every pipeline stage mutates. Stages
// run strictly in order: each one observes the fully-completed output
// of all stages before it.
type genState struct {
	g     *Grid
	cfg   GenConfig
	rng   *rng.RNG
	noise opensimplex.Noise

	// scratch neighbor buffer reused across passes
	nbuf []*Tile

	// desert clusters carved in stage 2, consumed by the arc carver
	deserts []desertCluster
}

type stage struct {
	name string
	run  func(*genState)
}

// pipeline is the ordered stage list. The order is load-bearing; see
// the per-stage files for what each pass assumes about its
// predecessors.
var pipeline = []stage{
	{"base_classification", (*genState).classifyBase},
	{"desert_clustering", (*genState).carveDeserts},
	{"mountain_arcs", (*genState).carveMountainArcs},
	{"tundra_replacement", (*genState).replaceLandTundra},
	{"jungle_expansion", (*genState).expandJungleZone},
	{"volcano_placement", (*genState).placeVolcanoes},
	{"coastal_derivation", (*genState).deriveCoasts},
	{"feature_tagging", (*genState).tagFeatures},
	{"consistency_cleanup", (*genState).cleanup},
	{"cordillera_enforcement", (*genState).enforceCordilleras},
}

// Generate builds a finished world for (seed, month) with the default
// configuration. It always succeeds; a degenerate world (no mountains,
// no land) is a valid output.
func Generate(seed int64, month int) *Grid {
	return GenerateWithConfig(seed, month, DefaultConfig())
}

// GenerateWithConfig runs the full pipeline under cfg.
func GenerateWithConfig(seed int64, month int, cfg GenConfig) *Grid {
	bounds := hexgrid.Bounds{Width: cfg.Width, Height: cfg.Height}
	st := &genState{
		g:     NewGrid(bounds, seed, month),
		cfg:   cfg,
		rng:   rng.New(seed),
		noise: opensimplex.New(seed),
	}

	for i, s := range pipeline {
		start := time.Now()
		s.run(st)
		logrus.WithFields(logrus.Fields{
			"stage": s.name,
			"took":  time.Since(start),
		}).Debug("worldgen stage complete")

		if cfg.DebugChecks {
			if err := checkStageInvariants(st.g, cfg, i); err != nil {
				panic(fmt.Sprintf("worldgen: invariant broken after %s: %v", s.name, err))
			}
		}
	}
	return st.g
}

// DeriveCoasts re-runs coastal derivation over the grid. Exposed so a
// terrain editor can restore the coast invariant after mutating tiles.
func DeriveCoasts(g *Grid) {
	promoteCoasts(g)
	demoteOrphanCoasts(g)
}

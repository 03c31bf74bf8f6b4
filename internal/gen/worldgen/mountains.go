package worldgen

import (
	"math"

	"hexatlas.world/internal/gen/hexgrid"
)

// Stage 3: mountain-arc carving. Each desert cluster gets a C-shaped
// cordillera traced around it, with the opening facing the continent
// core so the desert reads as rain-shadowed by the range.
func (st *genState) carveMountainArcs() {
	for _, dc := range st.deserts {
		st.carveArc(dc)
	}
}

func (st *genState) carveArc(dc desertCluster) {
	cfg := st.cfg
	c := cfg.continent(dc.continent)
	if c == nil {
		return
	}

	// Opening points from the cluster toward the continent center.
	open := math.Atan2(float64(c.Row-dc.row), float64(c.Col-dc.col))
	sweep := cfg.ArcSweepDegrees * math.Pi / 180
	gap := 2*math.Pi - sweep
	start := open + gap/2

	baseRadius := dc.radius + cfg.ArcRadiusPadding
	// Angular step fine enough that consecutive samples land on
	// adjacent tiles even at the outer layer.
	step := 1 / (baseRadius + float64(cfg.ArcThickness) + 1)

	seen := make(map[int]bool)
	for a := 0.0; a <= sweep; a += step {
		theta := start + a
		jitter := st.rng.Range(-0.6, 0.6)
		for layer := 0; layer < cfg.ArcThickness; layer++ {
			rad := baseRadius + float64(layer) + jitter
			col := dc.col + int(math.Round(rad*math.Cos(theta)))
			row := dc.row + int(math.Round(rad*math.Sin(theta)))

			idx, ok := st.g.Bounds.Index(hexgrid.FromOffset(col, row))
			if !ok || seen[idx] {
				continue
			}
			seen[idx] = true

			t := st.g.TileAt(idx)
			// Arcs stay on the landmass; sweeping into open water would
			// leave mountains with no continent behind them.
			if t.Continent == "" || t.Terrain.IsWater() || t.Terrain == TerrainTundra {
				continue
			}
			t.Terrain = TerrainMountainRange
			t.Elevation = st.rng.Int(7, 10)
			t.sanitizeFeatures()
		}
	}
}

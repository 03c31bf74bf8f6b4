package worldgen

import (
	"math"
	"sort"

	"hexatlas.world/internal/gen/hexgrid"
)

// desertCluster records where stage 2 carved a desert so the arc
// carver can wrap a cordillera around it.
type desertCluster struct {
	col, row  int
	radius    float64
	continent string
}

// Stage 2: desert clustering. The fixed tile target is split between
// the two continents and carved as a compact radial flood around a
// center offset from each continent's core.
func (st *genState) carveDeserts() {
	cfg := st.cfg
	if len(cfg.Continents) == 0 || cfg.DesertTargetTiles <= 0 {
		return
	}

	first := int(math.Round(float64(cfg.DesertTargetTiles) * cfg.DesertSplit))
	targets := []int{first, cfg.DesertTargetTiles - first}

	for i := range cfg.Continents {
		if i >= len(targets) {
			break
		}
		st.carveDesertCluster(&cfg.Continents[i], targets[i])
	}
}

func (st *genState) carveDesertCluster(c *ContinentSpec, target int) {
	if target <= 0 {
		return
	}

	col := c.Col + st.rng.Int(-c.RadiusX/3, c.RadiusX/3)
	row := c.Row + st.rng.Int(-c.RadiusY/3, c.RadiusY/3)

	// Slack over the exact-packing radius: the flood is probabilistic
	// and skips water holes, so the nominal disc must overshoot.
	radius := math.Sqrt(float64(target)/math.Pi) * 1.45

	type cand struct {
		idx  int
		dist float64
	}
	var cands []cand

	r := int(math.Ceil(radius))
	for dc := -r; dc <= r; dc++ {
		for dr := -r; dr <= r; dr++ {
			cc, rr := col+dc, row+dr
			coord := hexgrid.FromOffset(cc, rr)
			idx, ok := st.g.Bounds.Index(coord)
			if !ok {
				continue
			}
			d := math.Sqrt(float64(dc*dc + dr*dr))
			if d > radius {
				continue
			}
			t := st.g.TileAt(idx)
			if t.Terrain.IsWater() || t.Terrain == TerrainTundra ||
				t.Terrain == TerrainMountainRange || t.Terrain == TerrainDesert {
				continue
			}
			if t.Continent != c.Name {
				continue
			}
			cands = append(cands, cand{idx: idx, dist: d})
		}
	}

	// Inner tiles first; ties broken by arena index so the rng draw
	// order is reproducible.
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].idx < cands[j].idx
	})

	carved := 0
	for _, cd := range cands {
		if carved >= target {
			break
		}
		p := 1 - cd.dist/radius
		if !st.rng.Chance(0.35 + 0.65*p) {
			continue
		}
		t := st.g.TileAt(cd.idx)
		t.Terrain = TerrainDesert
		t.Rainfall = st.rng.Range(0.05, 0.22)
		t.sanitizeFeatures()
		carved++
	}

	st.deserts = append(st.deserts, desertCluster{
		col: col, row: row, radius: radius, continent: c.Name,
	})
}

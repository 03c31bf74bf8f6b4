package worldgen

import "hexatlas.world/internal/gen/hexgrid"

// Stage 6: volcano placement. Every mountain-type island center is
// forced volcanic, then random mountain tiles are sampled until the
// target count is reached or the attempt budget runs out.
func (st *genState) placeVolcanoes() {
	cfg := st.cfg
	count := 0

	for i := range cfg.Islands {
		is := &cfg.Islands[i]
		if !is.Mountain {
			continue
		}
		t := st.g.At(hexgrid.FromOffset(is.Col, is.Row))
		if t == nil {
			continue
		}
		t.Terrain = TerrainMountainRange
		if t.Elevation < 8 {
			t.Elevation = 8
		}
		if t.Continent == "" {
			t.Continent = is.Name
		}
		st.markVolcano(t)
		count++
	}

	for attempts := 0; count < cfg.VolcanoTarget && attempts < cfg.VolcanoMaxAttempts; attempts++ {
		t := st.g.TileAt(st.rng.Int(0, st.g.Len()-1))
		if t.Terrain != TerrainMountainRange || t.Volcano {
			continue
		}
		st.markVolcano(t)
		count++
	}
}

func (st *genState) markVolcano(t *Tile) {
	t.Volcano = true
	t.Features.Add(FeatureVolcano)
}

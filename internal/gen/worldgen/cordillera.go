package worldgen

// Stage 10: cordillera-neighbor enforcement. Every land neighbor of a
// mountain_range tile is forced to hills (unless it already carries
// the mountain feature) and to strictly lower elevation, so any river
// starting on a mountain always has a legal first downhill step.
func (st *genState) enforceCordilleras() {
	g := st.g
	minElev := st.cfg.MountainMinElevation

	for i := 0; i < g.Len(); i++ {
		m := g.TileAt(i)
		if m.Terrain != TerrainMountainRange {
			continue
		}
		if m.Elevation < minElev {
			m.Elevation = minElev
		}

		st.nbuf = g.Neighbors(m.Coord, st.nbuf[:0])
		for _, n := range st.nbuf {
			if n.Terrain == TerrainMountainRange || n.Terrain.IsWater() || n.Terrain == TerrainTundra {
				continue
			}
			if !n.Features.Has(FeatureMountain) && n.Terrain != TerrainHills {
				n.Terrain = TerrainHills
				n.sanitizeFeatures()
			}
			if n.Elevation >= m.Elevation {
				n.Elevation = m.Elevation - 1
			}
		}
	}
}

package worldgen

import "math"

// Stage 4: tundra replacement. Base classification leaves tundra on
// any landmass that reaches the polar band; tundra is ocean-only
// terrain, so those tiles are demoted to mountains near the region
// core and to a hills/meadow foothill ring further out.
func (st *genState) replaceLandTundra() {
	g := st.g

	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if t.Continent == "" || t.Terrain != TerrainTundra {
			continue
		}

		d := st.regionDistanceFor(t)
		switch {
		case d < 0.4:
			t.Terrain = TerrainMountainRange
			t.Elevation = st.rng.Int(st.cfg.MountainMinElevation, 9)
		case d < 0.75:
			t.Terrain = TerrainHills
			if t.Elevation < 4 {
				t.Elevation = st.rng.Int(4, 5)
			}
		default:
			t.Terrain = TerrainMeadow
			if t.Elevation < 1 {
				t.Elevation = 1
			}
		}
		t.sanitizeFeatures()
	}
}

// regionDistanceFor returns the tile's plain (noise-free) normalized
// distance to the center of the region it is tagged with. Unknown tags
// count as rim distance so the caller picks the gentlest demotion.
func (st *genState) regionDistanceFor(t *Tile) float64 {
	col, row := st.g.Bounds.Offset(t.Coord)

	if c := st.cfg.continent(t.Continent); c != nil {
		dx := float64(col-c.Col) / float64(c.RadiusX)
		dy := float64(row-c.Row) / float64(c.RadiusY)
		return math.Sqrt(dx*dx + dy*dy)
	}
	for i := range st.cfg.Islands {
		is := &st.cfg.Islands[i]
		if is.Name != t.Continent {
			continue
		}
		dx := float64(col - is.Col)
		dy := float64(row - is.Row)
		return math.Sqrt(dx*dx+dy*dy) / float64(is.Radius)
	}
	return 1
}

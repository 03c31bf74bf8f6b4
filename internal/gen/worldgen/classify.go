package worldgen

import "math"

// Stage 1: base classification. Every tile's initial values depend
// only on its own coordinates and the placement descriptors, never on
// other tiles, so this is the one pass that observes no neighbor state.
func (st *genState) classifyBase() {
	g := st.g

	InitTileGeometry(g)

	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		col, row := g.Bounds.Offset(t.Coord)

		region, dist := st.placeRegion(col, row)

		t.Elevation = st.rollElevation(region, dist, col, row)
		t.Rainfall = st.rollRainfall(t.Latitude)
		t.Temperature = st.rollTemperature(t.Latitude, t.Elevation)

		t.Terrain = st.classifyTerrain(region, t)
		if region != nil {
			t.Continent = region.name
		}
	}
}

// placedRegion is the continent or island a tile fell inside, if any.
type placedRegion struct {
	name     string
	mountain bool // mountain-type island
	island   bool
}

// placeRegion runs the noisy-radius membership test against every
// continent and island descriptor and returns the closest hit along
// with the normalized (0..1) distance to its center.
func (st *genState) placeRegion(col, row int) (*placedRegion, float64) {
	cfg := st.cfg

	bestDist := math.MaxFloat64
	var best *placedRegion

	for i := range cfg.Continents {
		c := &cfg.Continents[i]
		d := st.noisyDistance(col, row, c.Col, c.Row, float64(c.RadiusX), float64(c.RadiusY))
		if d <= 1 && d < bestDist {
			bestDist = d
			best = &placedRegion{name: c.Name}
		}
	}
	for i := range cfg.Islands {
		is := &cfg.Islands[i]
		d := st.noisyDistance(col, row, is.Col, is.Row, float64(is.Radius), float64(is.Radius))
		if d <= 1 && d < bestDist {
			bestDist = d
			best = &placedRegion{name: is.Name, mountain: is.Mountain, island: true}
		}
	}

	if best == nil {
		return nil, 0
	}

	// Ragged rim: tiles near the nominal coastline may erode back to
	// ocean, which is what gives coasts their irregular look.
	if bestDist > 0.9 {
		erode := cfg.CoastRaggedness * (bestDist - 0.9) / 0.1
		if st.rng.Chance(erode) {
			return nil, 0
		}
	}
	return best, bestDist
}

// noisyDistance is the elliptical distance to a region center with the
// simplex layer distorting the radius. Both inputs to the noise are
// pure functions of the seed and coordinates, so membership is fully
// reproducible.
func (st *genState) noisyDistance(col, row, cx, cy int, rx, ry float64) float64 {
	dx := float64(col-cx) / rx
	dy := float64(row-cy) / ry
	d := math.Sqrt(dx*dx + dy*dy)
	n := st.noise.Eval2(float64(col)*st.cfg.CoastNoiseFreq, float64(row)*st.cfg.CoastNoiseFreq)
	return d + st.cfg.CoastNoiseAmp*n
}

// rollElevation picks an elevation from the region-dependent band,
// then lets the simplex detail layer nudge it so relief does not band
// along the region-distance thresholds.
func (st *genState) rollElevation(region *placedRegion, dist float64, col, row int) int {
	if region == nil {
		return 0
	}

	var e int
	switch {
	case region.island && region.mountain:
		if dist < 0.4 {
			e = st.rng.Int(7, 9)
		} else {
			e = st.rng.Int(3, 6)
		}
	case region.island:
		e = st.rng.Int(1, 4)
	case dist < 0.35:
		e = st.rng.Int(5, 9)
	case dist < 0.7:
		e = st.rng.Int(3, 6)
	default:
		e = st.rng.Int(1, 4)
	}

	n := st.noise.Eval2(float64(col)*st.cfg.ElevationNoiseFreq, float64(row)*st.cfg.ElevationNoiseFreq)
	if n > 0.45 {
		e++
	} else if n < -0.45 {
		e--
	}
	return clampElevation(e)
}

func (st *genState) rollRainfall(lat float64) float64 {
	a := math.Abs(lat)
	var base float64
	switch {
	case a <= 12:
		base = 0.85
	case a <= 30:
		base = 0.35
	case a <= 55:
		base = 0.6
	case a <= 70:
		base = 0.45
	default:
		base = 0.25
	}
	return clamp01(base + st.rng.Range(-0.08, 0.08))
}

// rollTemperature is the latitude- and elevation-derived falloff, in
// degrees. Positive near the equator at sea level, well below zero at
// the poles and on high peaks.
func (st *genState) rollTemperature(lat float64, elevation int) float64 {
	return 32 - 0.5*math.Abs(lat) - 1.6*float64(elevation) + st.rng.Range(-1, 1)
}

func (st *genState) classifyTerrain(region *placedRegion, t *Tile) Terrain {
	cfg := st.cfg
	polar := math.Abs(t.Latitude)

	if region == nil {
		switch {
		case polar >= cfg.IceLatitude:
			return TerrainIce
		case polar >= cfg.TundraLatitude:
			return TerrainTundra
		default:
			return TerrainOcean
		}
	}

	// High elevation always wins, climate decides the rest. Polar-band
	// land comes out as tundra here; the tundra-replacement stage
	// repairs it, because tundra must never survive on a landmass.
	switch {
	case t.Elevation >= cfg.MountainMinElevation:
		return TerrainMountainRange
	case polar >= cfg.TundraLatitude:
		return TerrainTundra
	case t.Rainfall < 0.3 && t.Temperature > 18:
		return TerrainDesert
	case t.Elevation >= 4:
		return TerrainHills
	case t.Rainfall >= 0.65:
		return TerrainMeadow
	default:
		return TerrainPlains
	}
}

func clampElevation(e int) int {
	if e < 0 {
		return 0
	}
	if e > 10 {
		return 10
	}
	return e
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package worldgen

// Stage 9: consistency cleanup. Repairs the rough edges the earlier
// passes introduce: inland orphan coast, lone desert tiles, and
// single-tile terrain noise. Runs until stable or the pass budget is
// spent, then re-derives coasts since terrain was edited.
func (st *genState) cleanup() {
	for pass := 0; pass < st.cfg.MaxCleanupPasses; pass++ {
		changed := st.removeOrphanCoast()
		changed += st.compactDeserts()
		changed += st.smoothTerrainNoise()
		if changed == 0 {
			break
		}
	}
	DeriveCoasts(st.g)
}

func (st *genState) removeOrphanCoast() int {
	g := st.g
	changed := 0
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if t.Terrain == TerrainCoast && !g.hasLandNeighbor(t.Coord) {
			t.Terrain = TerrainOcean
			changed++
		}
	}
	return changed
}

// compactDeserts reclassifies desert tiles that are isolated (fewer
// than two desert neighbors) or walled in by mountains, adopting the
// most common non-water neighbor terrain.
func (st *genState) compactDeserts() int {
	g := st.g
	changed := 0
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if t.Terrain != TerrainDesert {
			continue
		}

		desertN, mountainN := 0, 0
		st.nbuf = g.Neighbors(t.Coord, st.nbuf[:0])
		for _, n := range st.nbuf {
			switch n.Terrain {
			case TerrainDesert:
				desertN++
			case TerrainMountainRange:
				mountainN++
			}
		}
		if desertN >= 2 && mountainN < 4 {
			continue
		}
		if st.adoptNeighborTerrain(t) {
			changed++
		}
	}
	return changed
}

// smoothTerrainNoise reclassifies single-tile islands of land terrain:
// a tile whose six neighbors overwhelmingly agree on another land
// terrain adopts it.
func (st *genState) smoothTerrainNoise() int {
	g := st.g
	changed := 0
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if !t.Terrain.IsLand() || t.Terrain == TerrainMountainRange || t.Terrain == TerrainDesert {
			continue
		}

		var counts [len(terrainNames)]int
		st.nbuf = g.Neighbors(t.Coord, st.nbuf[:0])
		for _, n := range st.nbuf {
			counts[n.Terrain]++
		}

		for terr, c := range counts {
			tt := Terrain(terr)
			if c >= 5 && tt != t.Terrain && tt.IsLand() {
				st.setCleanedTerrain(t, tt)
				changed++
				break
			}
		}
	}
	return changed
}

// adoptNeighborTerrain rewrites t to the most common non-water
// neighbor terrain. Ties and the no-land-neighbor case fall back to
// plains.
func (st *genState) adoptNeighborTerrain(t *Tile) bool {
	var counts [len(terrainNames)]int
	st.nbuf = st.g.Neighbors(t.Coord, st.nbuf[:0])
	for _, n := range st.nbuf {
		if n.Terrain.IsLand() && n.Terrain != t.Terrain {
			counts[n.Terrain]++
		}
	}

	best := TerrainPlains
	bestCount := 0
	for terr, c := range counts {
		if c > bestCount {
			best = Terrain(terr)
			bestCount = c
		}
	}
	if best == t.Terrain {
		return false
	}
	st.setCleanedTerrain(t, best)
	return true
}

func (st *genState) setCleanedTerrain(t *Tile, terr Terrain) {
	t.Terrain = terr
	// Adopting mountain terrain must not undercut the elevation floor
	// every mountain_range tile is held to.
	if terr == TerrainMountainRange && t.Elevation < st.cfg.MountainMinElevation {
		t.Elevation = st.rng.Int(st.cfg.MountainMinElevation, 9)
	}
	t.sanitizeFeatures()
}

package worldgen

// Stage 8: feature tagging. Every rule respects the terrain
// restrictions: jungle/forest on hills inside their continent, boreal
// forest on tundra, oasis on desert, volcano on mountain ranges.
func (st *genState) tagFeatures() {
	g := st.g
	cfg := st.cfg

	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)

		switch t.Terrain {
		case TerrainHills:
			switch t.Continent {
			case cfg.JungleContinent:
				if t.Rainfall > 0.6 && t.Temperature > 20 && st.rng.Chance(cfg.JungleFeatureChance) {
					t.Features.Add(FeatureJungle)
				}
			case cfg.ForestContinent:
				if t.Rainfall > 0.45 && st.rng.Chance(cfg.ForestFeatureChance) {
					t.Features.Add(FeatureForest)
				}
			}
		case TerrainTundra:
			if st.rng.Chance(cfg.BorealChance) {
				t.Features.Add(FeatureBorealForest)
			}
		case TerrainDesert:
			if st.rng.Chance(cfg.OasisChance) {
				t.Features.Add(FeatureOasis)
			}
		case TerrainMountainRange:
			if t.Volcano {
				t.Features.Add(FeatureVolcano)
			}
		}

		// Foothill tag: land tiles leaning against a cordillera may be
		// marked mountainous without changing their base terrain.
		if t.Terrain != TerrainMountainRange && t.Terrain.IsLand() {
			if st.touchesMountain(t) && st.rng.Chance(cfg.MountainTagChance) {
				t.Features.Add(FeatureMountain)
			}
		}
	}
}

func (st *genState) touchesMountain(t *Tile) bool {
	st.nbuf = st.g.Neighbors(t.Coord, st.nbuf[:0])
	for _, n := range st.nbuf {
		if n.Terrain == TerrainMountainRange {
			return true
		}
	}
	return false
}

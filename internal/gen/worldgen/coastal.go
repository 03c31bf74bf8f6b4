package worldgen

// Stage 7: coastal derivation. Ocean tiles touching land become coast;
// coast tiles left without a land neighbor fall back to ocean. Also
// re-run (via DeriveCoasts) whenever terrain is edited after
// generation.
func (st *genState) deriveCoasts() {
	DeriveCoasts(st.g)
}

func promoteCoasts(g *Grid) {
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if t.Terrain != TerrainOcean {
			continue
		}
		if g.hasLandNeighbor(t.Coord) {
			t.Terrain = TerrainCoast
		}
	}
}

func demoteOrphanCoasts(g *Grid) {
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if t.Terrain != TerrainCoast {
			continue
		}
		if !g.hasLandNeighbor(t.Coord) {
			t.Terrain = TerrainOcean
		}
	}
}

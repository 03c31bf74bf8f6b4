package worldgen

import (
	"math"

	"hexatlas.world/internal/gen/hexgrid"
)

// Stage 5: jungle-zone expansion. Tiles near the jungle continent's
// core are probabilistically promoted to hills/meadow with boosted
// rainfall, closer meaning likelier, which seeds the later
// jungle-feature tagging (jungle grows only on hills).
func (st *genState) expandJungleZone() {
	cfg := st.cfg
	c := cfg.continent(cfg.JungleContinent)
	if c == nil || cfg.JungleRadius <= 0 {
		return
	}

	radius := float64(cfg.JungleRadius)
	r := cfg.JungleRadius

	for dc := -r; dc <= r; dc++ {
		for dr := -r; dr <= r; dr++ {
			d := math.Sqrt(float64(dc*dc + dr*dr))
			if d > radius {
				continue
			}
			idx, ok := st.g.Bounds.Index(hexgrid.FromOffset(c.Col+dc, c.Row+dr))
			if !ok {
				continue
			}
			t := st.g.TileAt(idx)
			if t.Terrain != TerrainPlains && t.Terrain != TerrainMeadow {
				continue
			}
			if !st.rng.Chance(cfg.JungleChance * (1 - d/radius)) {
				continue
			}
			if st.rng.Chance(0.7) {
				t.Terrain = TerrainHills
				if t.Elevation < 4 {
					t.Elevation = st.rng.Int(4, 5)
				}
			} else {
				t.Terrain = TerrainMeadow
			}
			t.Rainfall = clamp01(t.Rainfall + st.rng.Range(0.15, 0.35))
		}
	}
}

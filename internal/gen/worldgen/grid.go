package worldgen

import "hexatlas.world/internal/gen/hexgrid"

// Grid is the dense tile arena for the fixed world region. Tiles are
// stored by value at the index derived from their axial coordinate, so
// lookups are a bounds check plus arithmetic rather than a hash.
type Grid struct {
	Bounds hexgrid.Bounds
	Seed   int64
	Month  int

	tiles []Tile
}

func NewGrid(bounds hexgrid.Bounds, seed int64, month int) *Grid {
	return &Grid{
		Bounds: bounds,
		Seed:   seed,
		Month:  month,
		tiles:  make([]Tile, bounds.Len()),
	}
}

// InitTileGeometry fills in the derived per-tile fields that depend
// only on position and month: coordinates, cartesian centers, latitude,
// hemisphere and season. Generation runs it as part of the base pass;
// snapshot restore runs it standalone because those fields are not
// archived.
func InitTileGeometry(g *Grid) {
	for i := range g.tiles {
		t := &g.tiles[i]
		t.Coord = g.Bounds.CoordAt(i)
		t.X, t.Y = t.Coord.Cartesian()

		_, row := g.Bounds.Offset(t.Coord)
		t.Latitude = 90 - 180*float64(row)/float64(g.Bounds.Height-1)
		if t.Latitude >= 0 {
			t.Hemisphere = HemisphereNorth
		} else {
			t.Hemisphere = HemisphereSouth
		}
		t.Season = seasonFor(g.Month, t.Hemisphere)
	}
}

// At returns the tile at c, or nil when c lies outside the world
// region. Callers treat nil as "out of bounds", never as an error.
func (g *Grid) At(c hexgrid.Coord) *Tile {
	i, ok := g.Bounds.Index(c)
	if !ok {
		return nil
	}
	return &g.tiles[i]
}

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// TileAt returns the tile at arena index i. Iterating indices from 0
// to Len() visits every tile in a deterministic order.
func (g *Grid) TileAt(i int) *Tile { return &g.tiles[i] }

// Neighbors appends the in-bounds neighbors of c to buf and returns
// it. The direction order of hexgrid.Directions is preserved.
func (g *Grid) Neighbors(c hexgrid.Coord, buf []*Tile) []*Tile {
	for _, n := range c.Neighbors() {
		if t := g.At(n); t != nil {
			buf = append(buf, t)
		}
	}
	return buf
}

// TerrainCounts returns a histogram of terrain classifications.
func (g *Grid) TerrainCounts() map[Terrain]int {
	counts := make(map[Terrain]int)
	for i := range g.tiles {
		counts[g.tiles[i].Terrain]++
	}
	return counts
}

// LandSides reports, per direction index, whether the neighboring tile
// on that side is land. Out-of-bounds sides count as not-land. Derived
// fresh on every call; never cached, so terrain edits are always
// reflected.
func (g *Grid) LandSides(c hexgrid.Coord) [6]bool {
	var out [6]bool
	for i, n := range c.Neighbors() {
		if t := g.At(n); t != nil && t.Terrain.IsLand() {
			out[i] = true
		}
	}
	return out
}

// WaterSides reports, per direction index, whether the neighboring
// tile on that side is ocean, coast or ice.
func (g *Grid) WaterSides(c hexgrid.Coord) [6]bool {
	var out [6]bool
	for i, n := range c.Neighbors() {
		if t := g.At(n); t != nil && t.Terrain.IsWater() {
			out[i] = true
		}
	}
	return out
}

// hasLandNeighbor is the coast-invariant predicate: at least one of
// the six neighbors is land.
func (g *Grid) hasLandNeighbor(c hexgrid.Coord) bool {
	for _, n := range c.Neighbors() {
		if t := g.At(n); t != nil && t.Terrain.IsLand() {
			return true
		}
	}
	return false
}

package rivergen

import (
	"testing"

	"hexatlas.world/internal/gen/hexgrid"
	"hexatlas.world/internal/gen/worldgen"
)

// stripWorld builds a minimal fixture: one descending ridge of land in
// an ocean, mountain source at one end, coast derived around it.
func stripWorld(t *testing.T) (*worldgen.Grid, hexgrid.Coord) {
	t.Helper()
	g := worldgen.NewGrid(hexgrid.Bounds{Width: 30, Height: 9}, 7, 1)
	for i := 0; i < g.Len(); i++ {
		tile := g.TileAt(i)
		tile.Coord = g.Bounds.CoordAt(i)
		tile.Terrain = worldgen.TerrainOcean
	}

	src := hexgrid.FromOffset(2, 4)
	for col := 2; col <= 20; col++ {
		tile := g.At(hexgrid.FromOffset(col, 4))
		tile.Continent = "strip"
		tile.Terrain = worldgen.TerrainHills
		tile.Elevation = 9 - (col - 2)
		if tile.Elevation < 1 {
			tile.Elevation = 1
		}
	}
	mt := g.At(src)
	mt.Terrain = worldgen.TerrainMountainRange
	mt.Elevation = 9

	worldgen.DeriveCoasts(g)
	return g, src
}

func TestStripWorldRiver(t *testing.T) {
	g, src := stripWorld(t)

	rivers, stats := Generate(g, Config{MinLength: 8, MaxAttempts: 10, FlowToOcean: true}, 5)
	if len(rivers) != 1 {
		t.Fatalf("got %d rivers (stats %+v), want 1", len(rivers), stats)
	}

	r := rivers[0]
	if r.Source != src {
		t.Fatalf("source = %v, want %v", r.Source, src)
	}
	if g.At(r.Mouth).Terrain != worldgen.TerrainCoast {
		t.Fatalf("mouth terrain = %s, want coast", g.At(r.Mouth).Terrain)
	}
	if r.Length < 8 {
		t.Fatalf("river length %d below minimum", r.Length)
	}
	assertRiverValid(t, g, r, 8)
}

func TestNoSourcesReturnsEmpty(t *testing.T) {
	g := worldgen.NewGrid(hexgrid.Bounds{Width: 10, Height: 10}, 1, 1)
	for i := 0; i < g.Len(); i++ {
		g.TileAt(i).Coord = g.Bounds.CoordAt(i)
		g.TileAt(i).Terrain = worldgen.TerrainOcean
	}

	rivers, stats := Generate(g, DefaultConfig(), 20)
	if len(rivers) != 0 {
		t.Fatalf("got %d rivers from a world with no mountains", len(rivers))
	}
	if stats.Sources != 0 || stats.Attempts != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestZeroTarget(t *testing.T) {
	g, _ := stripWorld(t)
	rivers, _ := Generate(g, DefaultConfig(), 0)
	if len(rivers) != 0 {
		t.Fatalf("got %d rivers for target 0", len(rivers))
	}
}

func TestRejectionDoesNotTagGrid(t *testing.T) {
	g, _ := stripWorld(t)

	// Impossible floor: every attempt must fail and the grid must stay
	// untouched.
	rivers, stats := Generate(g, Config{MinLength: 500, MaxAttempts: 10, FlowToOcean: true}, 5)
	if len(rivers) != 0 {
		t.Fatalf("got %d rivers with minLength 500", len(rivers))
	}
	if len(stats.Rejected) == 0 {
		t.Fatal("expected rejection reasons to be recorded")
	}
	for i := 0; i < g.Len(); i++ {
		tile := g.TileAt(i)
		if tile.River || tile.Features.Has(worldgen.FeatureRiver) {
			t.Fatalf("tile %s tagged by a rejected attempt", tile.Coord.Key())
		}
	}
}

func TestGeneratedWorldScenario(t *testing.T) {
	g := worldgen.Generate(42, 1)
	cfg := Config{MinLength: 8, MaxAttempts: 100, FlowToOcean: true, AllowLakes: false}

	rivers, stats := Generate(g, cfg, 20)
	if len(rivers) > 20 {
		t.Fatalf("accepted %d rivers, target was 20", len(rivers))
	}
	if stats.Accepted != len(rivers) {
		t.Fatalf("stats.Accepted %d != %d rivers", stats.Accepted, len(rivers))
	}

	for _, r := range rivers {
		assertRiverValid(t, g, r, cfg.MinLength)
		if g.At(r.Source).Terrain != worldgen.TerrainMountainRange {
			t.Fatalf("river %d source %s is %s", r.ID, r.Source.Key(), g.At(r.Source).Terrain)
		}
	}
}

func TestInlandMouthGating(t *testing.T) {
	g, src := stripWorld(t)

	// Downhill path along the ridge that stops well short of the coast.
	path := []hexgrid.Coord{src}
	for col := 3; col <= 12; col++ {
		path = append(path, hexgrid.FromOffset(col, 4))
	}

	if reason, ok := validatePath(path, g, Config{MinLength: 8, FlowToOcean: true}); ok || reason != ReasonNotMouth {
		t.Fatalf("inland mouth with FlowToOcean: ok=%v reason=%q, want rejection %q", ok, reason, ReasonNotMouth)
	}
	if reason, ok := validatePath(path, g, Config{MinLength: 8, FlowToOcean: true, AllowLakes: true}); !ok {
		t.Fatalf("inland mouth with AllowLakes rejected: %q", reason)
	}
	if reason, ok := validatePath(path, g, Config{MinLength: 8, FlowToOcean: false}); !ok {
		t.Fatalf("inland mouth with FlowToOcean off rejected: %q", reason)
	}
}

func TestRiversDeterministic(t *testing.T) {
	r1, _ := Generate(worldgen.Generate(42, 1), DefaultConfig(), 12)
	r2, _ := Generate(worldgen.Generate(42, 1), DefaultConfig(), 12)

	if len(r1) != len(r2) {
		t.Fatalf("river counts differ: %d vs %d", len(r1), len(r2))
	}
	for i := range r1 {
		if len(r1[i].Segments) != len(r2[i].Segments) {
			t.Fatalf("river %d lengths differ", i)
		}
		for j := range r1[i].Segments {
			if r1[i].Segments[j].Coord != r2[i].Segments[j].Coord {
				t.Fatalf("river %d diverges at segment %d", i, j)
			}
		}
	}
}

func TestEdgeSymmetry(t *testing.T) {
	a := hexgrid.Coord{Q: 3, R: 5}
	b := hexgrid.Coord{Q: 4, R: 5}

	e1 := NewEdge(a, b, 1)
	e2 := NewEdge(b, a, 1)
	if e1.Key != e2.Key {
		t.Fatalf("edge keys differ: %s vs %s", e1.Key, e2.Key)
	}
	if e1.A != e2.A || e1.B != e2.B || e1.Direction != e2.Direction {
		t.Fatalf("canonical edges differ: %+v vs %+v", e1, e2)
	}
	if e1.Direction < 0 || e1.Direction > 5 {
		t.Fatalf("direction index %d out of range", e1.Direction)
	}
}

// assertRiverValid checks the full acceptance contract on an accepted
// river: coastal mouth, minimum length, downstream elevation order,
// adjacency and tagging.
func assertRiverValid(t *testing.T, g *worldgen.Grid, r River, minLength int) {
	t.Helper()

	if r.Length != len(r.Segments) {
		t.Fatalf("river %d: Length %d != %d segments", r.ID, r.Length, len(r.Segments))
	}
	if r.Length < minLength {
		t.Fatalf("river %d: length %d below floor %d", r.ID, r.Length, minLength)
	}
	if len(r.Edges) != r.Length-1 {
		t.Fatalf("river %d: %d edges for %d segments", r.ID, len(r.Edges), r.Length)
	}
	if mouth := g.At(r.Mouth); mouth.Terrain != worldgen.TerrainCoast {
		t.Fatalf("river %d: mouth on %s", r.ID, mouth.Terrain)
	}

	for i := 1; i < len(r.Segments); i++ {
		prev, cur := r.Segments[i-1], r.Segments[i]
		if hexgrid.Distance(prev.Coord, cur.Coord) != 1 {
			t.Fatalf("river %d: segments %d->%d not adjacent", r.ID, i-1, i)
		}
		if cur.Elevation > prev.Elevation {
			t.Fatalf("river %d: uphill step at segment %d (%d -> %d)",
				r.ID, i, prev.Elevation, cur.Elevation)
		}
		if cur.FromSource != i || cur.ToMouth != len(r.Segments)-1-i {
			t.Fatalf("river %d: segment %d distances wrong: %+v", r.ID, i, cur)
		}
	}

	for _, s := range r.Segments {
		tile := g.At(s.Coord)
		if !tile.River || !tile.Features.Has(worldgen.FeatureRiver) {
			t.Fatalf("river %d: tile %s not tagged", r.ID, s.Coord.Key())
		}
	}
}

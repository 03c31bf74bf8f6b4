package rivergen

import (
	"hexatlas.world/internal/gen/hexgrid"
	"hexatlas.world/internal/gen/worldgen"
)

// Segment is one tile along a river path, ordered source to mouth.
type Segment struct {
	Coord      hexgrid.Coord
	Elevation  int
	FromSource int
	ToMouth    int
}

// Edge is the border a river crosses between two adjacent tiles. Its
// identity is canonical: A/B are ordered so the same edge is
// identified identically regardless of traversal direction.
type Edge struct {
	A, B      hexgrid.Coord
	Key       string
	Direction int // direction index from A to B
	RiverID   int
}

// NewEdge builds the canonical edge between two adjacent coordinates.
func NewEdge(a, b hexgrid.Coord, riverID int) Edge {
	if b.Q < a.Q || (b.Q == a.Q && b.R < a.R) {
		a, b = b, a
	}
	return Edge{
		A:         a,
		B:         b,
		Key:       a.Key() + "|" + b.Key(),
		Direction: hexgrid.DirectionIndex(a, b),
		RiverID:   riverID,
	}
}

// River is an accepted mountain-to-coast path. Elevation along the
// segment order is non-increasing (the downstream invariant).
type River struct {
	ID       int
	Source   hexgrid.Coord
	Mouth    hexgrid.Coord
	Segments []Segment
	Edges    []Edge
	Length   int
}

// buildRiver assembles the segment and edge lists for a validated
// path.
func buildRiver(id int, path []hexgrid.Coord, g *worldgen.Grid) River {
	n := len(path)
	r := River{
		ID:       id,
		Source:   path[0],
		Mouth:    path[n-1],
		Segments: make([]Segment, n),
		Edges:    make([]Edge, 0, n-1),
		Length:   n,
	}
	for i, c := range path {
		r.Segments[i] = Segment{
			Coord:      c,
			Elevation:  g.At(c).Elevation,
			FromSource: i,
			ToMouth:    n - 1 - i,
		}
		if i > 0 {
			r.Edges = append(r.Edges, NewEdge(path[i-1], c, id))
		}
	}
	return r
}

// validatePath checks the acceptance rules for a candidate path and
// returns the rejection reason when it fails.
func validatePath(path []hexgrid.Coord, g *worldgen.Grid, cfg Config) (Reason, bool) {
	if len(path) == 0 {
		return ReasonNoCoast, false
	}
	if len(path) < cfg.MinLength {
		return ReasonTooShort, false
	}

	mouth := g.At(path[len(path)-1])
	if mouth == nil {
		return ReasonNotMouth, false
	}
	if mouth.Terrain != worldgen.TerrainCoast && cfg.FlowToOcean && !cfg.AllowLakes {
		return ReasonNotMouth, false
	}

	prev := g.At(path[0]).Elevation
	for _, c := range path[1:] {
		t := g.At(c)
		if t == nil {
			return ReasonDeadEnd, false
		}
		if t.Elevation > prev {
			return ReasonUphill, false
		}
		prev = t.Elevation
	}
	return "", true
}

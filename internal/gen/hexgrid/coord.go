// Package hexgrid provides axial-coordinate hex math and the bounded
// dense addressing used by the tile arena.
package hexgrid

import (
	"fmt"
	"math"
)

// Coord is an axial hex coordinate. The implicit third cube coordinate
// is s = -q - r.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

func (c Coord) S() int { return -c.Q - c.R }

// Key returns the canonical string form used for edge identity and
// external lookups.
func (c Coord) Key() string { return fmt.Sprintf("%d,%d", c.Q, c.R) }

func (c Coord) Add(o Coord) Coord { return Coord{Q: c.Q + o.Q, R: c.R + o.R} }

// Directions lists the six neighbor offsets. The slice index is the
// direction index carried on river edges, so the order is part of the
// wire contract and must not change.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent coordinates in direction order.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// DirectionIndex returns which of the six directions leads from a to b,
// or -1 if the coordinates are not adjacent.
func DirectionIndex(a, b Coord) int {
	for i, d := range Directions {
		if a.Add(d) == b {
			return i
		}
	}
	return -1
}

// Distance returns the hex distance (max of the absolute cube deltas).
func Distance(a, b Coord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	m := dq
	if dr > m {
		m = dr
	}
	if ds > m {
		m = ds
	}
	return m
}

// Cartesian returns the planar-equivalent position of the hex center
// (unit hex spacing), used by climate math and by renderers.
func (c Coord) Cartesian() (x, y float64) {
	x = float64(c.Q) + float64(c.R)*0.5
	y = float64(c.R) * math.Sqrt(3) / 2
	return x, y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

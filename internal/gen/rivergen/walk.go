package rivergen

import (
	"sort"

	"hexatlas.world/internal/gen/hexgrid"
	"hexatlas.world/internal/gen/worldgen"
)

// Fallback strategy: a scored greedy walk with explicit backtracking.
// Each step ranks the legal neighbors, pushes the alternatives on a
// frame stack, and takes the best; dead ends pop the stack and retry
// the next-ranked alternative from that point.

const maxWalkSteps = 512

const (
	scoreDropWeight     = 3.0
	scoreApproachWeight = 2.0
	scoreCoastBonus     = 5.0
	scoreLoopPenalty    = 0.75
)

type walkFrame struct {
	coord hexgrid.Coord
	alts  []hexgrid.Coord // remaining lower-ranked alternatives
}

// walkFallback tries to reach a coast by greedy descent. It returns
// the path and, on failure, why the walk gave up.
func (gen *generator) walkFallback(src hexgrid.Coord) ([]hexgrid.Coord, Reason) {
	g := gen.g

	path := []hexgrid.Coord{src}
	visited := map[hexgrid.Coord]bool{src: true}
	var stack []walkFrame

	for steps := 0; steps < maxWalkSteps; steps++ {
		cur := path[len(path)-1]

		if g.At(cur).Terrain == worldgen.TerrainCoast {
			return path, ""
		}

		ranked := gen.rankNeighbors(cur, visited)
		if len(ranked) == 0 {
			// Dead end: unwind one step and retry the best remaining
			// alternative recorded for that position.
			retry, ok := gen.backtrack(&path, &stack, visited)
			if !ok {
				return nil, ReasonDeadEnd
			}
			visited[retry] = true
			path = append(path, retry)
			continue
		}

		next := ranked[0]
		stack = append(stack, walkFrame{coord: cur, alts: ranked[1:]})
		visited[next] = true
		path = append(path, next)
	}
	return nil, ReasonDeadEnd
}

// backtrack pops frames until one still has an untried alternative,
// trimming the path back to that frame's position.
func (gen *generator) backtrack(path *[]hexgrid.Coord, stack *[]walkFrame, visited map[hexgrid.Coord]bool) (hexgrid.Coord, bool) {
	for len(*stack) > 0 {
		top := &(*stack)[len(*stack)-1]
		*path = (*path)[:len(*path)-1]

		for len(top.alts) > 0 {
			next := top.alts[0]
			top.alts = top.alts[1:]
			if !visited[next] {
				return next, true
			}
		}
		*stack = (*stack)[:len(*stack)-1]
	}
	return hexgrid.Coord{}, false
}

// rankNeighbors scores the legal (unvisited, non-uphill, non-ice,
// non-ocean) neighbors of cur, best first. Ties keep direction-index
// order, so ranking is deterministic.
func (gen *generator) rankNeighbors(cur hexgrid.Coord, visited map[hexgrid.Coord]bool) []hexgrid.Coord {
	g := gen.g
	tile := g.At(cur)

	type scored struct {
		coord hexgrid.Coord
		score float64
		dir   int
	}
	var cands []scored

	for dir, n := range cur.Neighbors() {
		nt := g.At(n)
		if nt == nil || visited[n] {
			continue
		}
		if nt.Terrain == worldgen.TerrainIce || nt.Terrain == worldgen.TerrainOcean {
			continue
		}
		if nt.Elevation > tile.Elevation {
			continue
		}
		cands = append(cands, scored{coord: n, score: gen.scoreStep(cur, n, nt, visited), dir: dir})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].dir < cands[j].dir
	})

	out := make([]hexgrid.Coord, len(cands))
	for i, c := range cands {
		out[i] = c.coord
	}
	return out
}

// scoreStep rewards elevation drop, getting closer to the coast, and
// arrival itself; it penalizes steps that crowd tiles already visited,
// which is what keeps the walk from coiling around itself.
func (gen *generator) scoreStep(cur, n hexgrid.Coord, nt *worldgen.Tile, visited map[hexgrid.Coord]bool) float64 {
	tile := gen.g.At(cur)

	score := float64(tile.Elevation-nt.Elevation) * scoreDropWeight
	score += float64(gen.coastDistAt(cur)-gen.coastDistAt(n)) * scoreApproachWeight
	if nt.Terrain == worldgen.TerrainCoast {
		score += scoreCoastBonus
	}

	crowd := 0
	for _, near := range n.Neighbors() {
		if visited[near] {
			crowd++
		}
	}
	score -= float64(crowd) * scoreLoopPenalty
	return score
}

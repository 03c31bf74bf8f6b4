package rivergen

import (
	"container/heap"
	"sort"

	"hexatlas.world/internal/gen/hexgrid"
	"hexatlas.world/internal/gen/worldgen"
)

// Primary strategy: best-first search from the source toward each of
// the nearest candidate coast tiles, expanding only downhill-or-level
// neighbors. The first path reaching any coast at legal length wins a
// candidate's search; the shortest success across candidates is kept.

const (
	candidateCoastLimit = 10
	maxExpansions       = 4096
)

type searchNode struct {
	coord    hexgrid.Coord
	steps    int
	priority int
	seq      int // insertion order, breaks priority ties deterministically
	index    int
}

type searchQueue []*searchNode

func (q searchQueue) Len() int { return len(q) }
func (q searchQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q searchQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *searchQueue) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *searchQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// searchPrimary returns the shortest valid source-to-coast path found
// across the candidate coasts, or nil.
func (gen *generator) searchPrimary(src hexgrid.Coord) []hexgrid.Coord {
	targets := gen.nearestCoasts(src, candidateCoastLimit)
	if len(targets) == 0 {
		return nil
	}

	var best []hexgrid.Coord
	for _, target := range targets {
		path := gen.searchToward(src, target)
		if path == nil {
			continue
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best
}

// searchToward runs one best-first search guided by the hex distance
// to target plus the elevation still to shed.
func (gen *generator) searchToward(src, target hexgrid.Coord) []hexgrid.Coord {
	g := gen.g

	cameFrom := map[hexgrid.Coord]hexgrid.Coord{}
	visited := map[hexgrid.Coord]bool{src: true}

	seq := 0
	q := &searchQueue{}
	heap.Init(q)
	heap.Push(q, &searchNode{
		coord:    src,
		steps:    0,
		priority: hexgrid.Distance(src, target) + g.At(src).Elevation,
	})

	for expansions := 0; q.Len() > 0 && expansions < maxExpansions; expansions++ {
		cur := heap.Pop(q).(*searchNode)
		tile := g.At(cur.coord)

		if tile.Terrain == worldgen.TerrainCoast {
			path := reconstruct(cameFrom, src, cur.coord)
			if len(path) >= gen.cfg.MinLength {
				return path
			}
			// Too short through this mouth; other queue entries may
			// still reach a farther coast.
			continue
		}

		for _, n := range cur.coord.Neighbors() {
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
			visited[n] = true
			cameFrom[n] = cur.coord
			seq++
			heap.Push(q, &searchNode{
				coord:    n,
				steps:    cur.steps + 1,
				priority: cur.steps + 1 + hexgrid.Distance(n, target) + nt.Elevation,
				seq:      seq,
			})
		}
	}
	return nil
}

func reconstruct(cameFrom map[hexgrid.Coord]hexgrid.Coord, src, end hexgrid.Coord) []hexgrid.Coord {
	var rev []hexgrid.Coord
	for c := end; ; {
		rev = append(rev, c)
		if c == src {
			break
		}
		c = cameFrom[c]
	}
	path := make([]hexgrid.Coord, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// nearestCoasts returns up to limit coast tiles closest to src by hex
// distance, ties broken by arena order.
func (gen *generator) nearestCoasts(src hexgrid.Coord, limit int) []hexgrid.Coord {
	type cand struct {
		coord hexgrid.Coord
		dist  int
		idx   int
	}
	var cands []cand
	for _, idx := range gen.coastIdx {
		c := gen.g.Bounds.CoordAt(idx)
		cands = append(cands, cand{coord: c, dist: hexgrid.Distance(src, c), idx: idx})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].idx < cands[j].idx
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]hexgrid.Coord, len(cands))
	for i, c := range cands {
		out[i] = c.coord
	}
	return out
}

package rivergen

import (
	"math"

	"github.com/sirupsen/logrus"

	"hexatlas.world/internal/gen/hexgrid"
	"hexatlas.world/internal/gen/rng"
	"hexatlas.world/internal/gen/worldgen"
)

// riverSeedOffset decorrelates the river stream from the worldgen
// stream while keeping both a pure function of the world seed.
const riverSeedOffset = 7919

type generator struct {
	g   *worldgen.Grid
	cfg Config
	rng *rng.RNG

	coastIdx  []int // arena indices of every coast tile
	coastDist []int // per-arena-index hex steps to the nearest coast, -1 unreachable
}

// Generate attempts up to targetCount rivers over the finished grid.
// It mutates the grid only by tagging accepted paths with the river
// feature; everything else on the tiles stays read-only. The returned
// count may be below target: exhausted sources and failed attempts are
// normal outcomes, not errors.
func Generate(g *worldgen.Grid, cfg Config, targetCount int) ([]River, Stats) {
	gen := &generator{
		g:   g,
		cfg: cfg,
		rng: rng.New(g.Seed + riverSeedOffset),
	}
	stats := newStats()

	sources := gen.collectSources()
	stats.Sources = len(sources)
	if len(sources) == 0 || targetCount <= 0 {
		return nil, *stats
	}

	gen.indexCoasts()
	gen.buildCoastDistances()

	// The shuffle runs on the seeded stream so a (seed, month) pair
	// always yields the same river set.
	gen.rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})

	var rivers []River
	for _, src := range sources {
		if len(rivers) >= targetCount || stats.Attempts >= cfg.MaxAttempts {
			break
		}
		stats.Attempts++

		path := gen.searchPrimary(src)
		if path == nil {
			var reason Reason
			path, reason = gen.walkFallback(src)
			if path == nil {
				stats.reject(reason)
				continue
			}
		}

		if reason, ok := validatePath(path, g, cfg); !ok {
			stats.reject(reason)
			continue
		}

		river := buildRiver(len(rivers)+1, path, g)
		gen.tagRiver(river)
		rivers = append(rivers, river)
		stats.Accepted++
	}

	logrus.WithFields(logrus.Fields{
		"sources":  stats.Sources,
		"attempts": stats.Attempts,
		"accepted": stats.Accepted,
		"rejected": stats.Rejected,
	}).Debug("river generation complete")

	return rivers, *stats
}

// collectSources returns every mountain_range tile in arena order.
func (gen *generator) collectSources() []hexgrid.Coord {
	var out []hexgrid.Coord
	for i := 0; i < gen.g.Len(); i++ {
		if gen.g.TileAt(i).Terrain == worldgen.TerrainMountainRange {
			out = append(out, gen.g.TileAt(i).Coord)
		}
	}
	return out
}

func (gen *generator) indexCoasts() {
	for i := 0; i < gen.g.Len(); i++ {
		if gen.g.TileAt(i).Terrain == worldgen.TerrainCoast {
			gen.coastIdx = append(gen.coastIdx, i)
		}
	}
}

// buildCoastDistances runs a multi-source BFS from every coast tile so
// the fallback walk can score "closer to the sea" in O(1).
func (gen *generator) buildCoastDistances() {
	g := gen.g
	dist := make([]int, g.Len())
	for i := range dist {
		dist[i] = -1
	}

	queue := make([]int, 0, len(gen.coastIdx))
	for _, i := range gen.coastIdx {
		dist[i] = 0
		queue = append(queue, i)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Bounds.CoordAt(cur).Neighbors() {
			ni, ok := g.Bounds.Index(n)
			if !ok || dist[ni] >= 0 {
				continue
			}
			dist[ni] = dist[cur] + 1
			queue = append(queue, ni)
		}
	}
	gen.coastDist = dist
}

func (gen *generator) coastDistAt(c hexgrid.Coord) int {
	i, ok := gen.g.Bounds.Index(c)
	if !ok || gen.coastDist[i] < 0 {
		return math.MaxInt32
	}
	return gen.coastDist[i]
}

// tagRiver marks every tile on the accepted path. This is the only
// grid mutation river generation is allowed to make.
func (gen *generator) tagRiver(r River) {
	for _, s := range r.Segments {
		t := gen.g.At(s.Coord)
		t.Features.Add(worldgen.FeatureRiver)
		t.River = true
	}
}

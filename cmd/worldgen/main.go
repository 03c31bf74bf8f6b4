// Command worldgen generates one world, prints its headline numbers
// and optionally archives it for the server to pick up.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hexatlas.world/internal/gen/rivergen"
	"hexatlas.world/internal/gen/tuning"
	"hexatlas.world/internal/gen/worldgen"
	"hexatlas.world/internal/persistence/indexdb"
	persistlog "hexatlas.world/internal/persistence/log"
	"hexatlas.world/internal/persistence/snapshot"
	"hexatlas.world/pkg/logger"
)

func main() {
	var (
		seed       = flag.Int64("seed", 1337, "world seed")
		month      = flag.Int("month", 1, "calendar month (1..14)")
		rivers     = flag.Int("rivers", 0, "river target count (0: use tuning)")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		outDir     = flag.String("out", "./data", "archive directory (empty: print only)")
		dbPath     = flag.String("db", "", "index db path (default: <out>/index.db)")
		debug      = flag.Bool("debug_checks", false, "verify stage invariants after every pass")
	)
	flag.Parse()

	logger.Init()
	log := logrus.StandardLogger()

	if *month < 1 || *month > 14 {
		log.Fatalf("month must be 1..14, got %d", *month)
	}

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", *tuningPath).Info("tuning not found, using defaults")
			tune = tuning.Default()
		} else {
			log.WithError(err).Fatal("load tuning")
		}
	}

	cfg := tune.WorldConfig()
	cfg.DebugChecks = *debug
	target := tune.TargetCount()
	if *rivers > 0 {
		target = *rivers
	}

	startedAt := time.Now()
	g := worldgen.GenerateWithConfig(*seed, *month, cfg)
	riverList, stats := rivergen.Generate(g, tune.RiverConfig(), target)
	elapsed := time.Since(startedAt)

	printSummary(g, riverList, stats, elapsed)

	if strings.TrimSpace(*outDir) == "" {
		return
	}

	snap := snapshot.FromWorld(g, riverList, stats)
	path := filepath.Join(*outDir, "worlds", fmt.Sprintf("%d-%d.snap.zst", *seed, *month))
	if err := snapshot.WriteSnapshot(path, snap); err != nil {
		log.WithError(err).Fatal("write snapshot")
	}
	log.WithField("path", path).Info("snapshot archived")

	db := strings.TrimSpace(*dbPath)
	if db == "" {
		db = filepath.Join(*outDir, "index.db")
	}
	idx, err := indexdb.Open(db)
	if err != nil {
		log.WithError(err).Fatal("open index db")
	}
	defer idx.Close()
	if err := idx.RecordSnapshot(path, snap); err != nil {
		log.WithError(err).Fatal("record snapshot")
	}

	runLog := persistlog.NewRunLogger(*outDir)
	defer runLog.Close()
	entry := persistlog.RunEntry{
		Seed:           g.Seed,
		Month:          g.Month,
		Width:          g.Bounds.Width,
		Height:         g.Bounds.Height,
		DurationMs:     elapsed.Milliseconds(),
		Terrain:        snap.TerrainCounts,
		Rivers:         len(riverList),
		RiverAttempts:  stats.Attempts,
		SnapshotPath:   path,
		StartedAt:      startedAt.UTC().Format(time.RFC3339),
		FinishedUnixMs: time.Now().UnixMilli(),
	}
	if len(stats.Rejected) > 0 {
		entry.RiverRejected = make(map[string]int, len(stats.Rejected))
		for reason, n := range stats.Rejected {
			entry.RiverRejected[string(reason)] = n
		}
	}
	if err := runLog.WriteRun(entry); err != nil {
		log.WithError(err).Warn("write run log")
	}
}

func printSummary(g *worldgen.Grid, rivers []rivergen.River, stats rivergen.Stats, elapsed time.Duration) {
	fmt.Printf("world %d month %d: %dx%d (%d tiles) in %s\n",
		g.Seed, g.Month, g.Bounds.Width, g.Bounds.Height, g.Len(), elapsed.Round(time.Millisecond))

	counts := g.TerrainCounts()
	type row struct {
		name string
		n    int
	}
	rows := make([]row, 0, len(counts))
	for terrain, n := range counts {
		rows = append(rows, row{name: terrain.String(), n: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].name < rows[j].name
	})
	for _, r := range rows {
		fmt.Printf("  %-15s %6d (%.1f%%)\n", r.name, r.n, 100*float64(r.n)/float64(g.Len()))
	}

	fmt.Printf("rivers: %d accepted of %d attempts (%d sources)\n",
		stats.Accepted, stats.Attempts, stats.Sources)
	if len(stats.Rejected) > 0 {
		reasons := make([]string, 0, len(stats.Rejected))
		for reason := range stats.Rejected {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Printf("  rejected %-20s %d\n", reason, stats.Rejected[rivergen.Reason(reason)])
		}
	}
	var longest int
	for _, r := range rivers {
		if r.Length > longest {
			longest = r.Length
		}
	}
	if longest > 0 {
		fmt.Printf("longest river: %d tiles\n", longest)
	}
}

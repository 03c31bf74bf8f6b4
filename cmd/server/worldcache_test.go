package main

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"hexatlas.world/internal/gen/rivergen"
	"hexatlas.world/internal/gen/tuning"
	"hexatlas.world/internal/gen/worldgen"
	"hexatlas.world/internal/persistence/indexdb"
	"hexatlas.world/internal/persistence/snapshot"
	"hexatlas.world/internal/protocol"
)

func testTuning() tuning.Tuning {
	t := tuning.Default()
	t.World.Width, t.World.Height = 48, 36
	t.World.Continents = []tuning.Continent{
		{Name: "boreas", Col: 14, Row: 12, RadiusX: 10, RadiusY: 8},
		{Name: "austra", Col: 33, Row: 24, RadiusX: 9, RadiusY: 8},
	}
	t.World.Islands = nil
	t.World.DesertTargetTiles = 24
	t.World.VolcanoTarget = 2
	t.Rivers.TargetCount = 6
	t.Rivers.MinLength = 4
	return t
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestCacheServesIdenticalWorlds(t *testing.T) {
	c := newWorldCache(testTuning(), nil, 4, quietLogger())

	first, err := c.Snapshot(42, 3)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	second, err := c.Snapshot(42, 3)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if len(first.Tiles) != len(second.Tiles) || first.Seed != second.Seed {
		t.Fatalf("cache returned a different world")
	}
	s := c.Stats()
	if s.Generated != 1 || s.Hits != 1 {
		t.Fatalf("expected 1 generation and 1 hit, got %+v", s)
	}
}

func TestCacheEvictsOldestWorld(t *testing.T) {
	c := newWorldCache(testTuning(), nil, 2, quietLogger())

	for seed := int64(1); seed <= 3; seed++ {
		if _, err := c.Snapshot(seed, 1); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
	if s := c.Stats(); s.Cached != 2 {
		t.Fatalf("expected 2 cached worlds, got %+v", s)
	}

	// Seed 1 was evicted; asking again regenerates the same world.
	again, err := c.Snapshot(1, 1)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if again.Seed != 1 || again.Month != 1 {
		t.Fatalf("unexpected world: seed=%d month=%d", again.Seed, again.Month)
	}
	if s := c.Stats(); s.Generated != 4 {
		t.Fatalf("expected regeneration after eviction, got %+v", s)
	}
}

func TestArchivedLookupNeverGenerates(t *testing.T) {
	c := newWorldCache(testTuning(), nil, 4, quietLogger())

	if _, found, err := c.SnapshotArchived(42, 3, false); err != nil || found {
		t.Fatalf("found=%v err=%v for a world nothing archived", found, err)
	}
	if s := c.Stats(); s.Generated != 0 {
		t.Fatalf("archived lookup generated a world: %+v", s)
	}

	// Once the world is in memory the lookup serves it.
	if _, err := c.Snapshot(42, 3); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	msg, found, err := c.SnapshotArchived(42, 3, false)
	if err != nil || !found {
		t.Fatalf("found=%v err=%v after the world entered memory", found, err)
	}
	if msg.Seed != 42 || msg.Month != 3 {
		t.Fatalf("unexpected world: seed=%d month=%d", msg.Seed, msg.Month)
	}
}

func TestArchivedLookupRestoresFromIndex(t *testing.T) {
	dir := t.TempDir()
	tune := testTuning()

	g := worldgen.GenerateWithConfig(7, 2, tune.WorldConfig())
	rivers, stats := rivergen.Generate(g, tune.RiverConfig(), tune.TargetCount())
	snap := snapshot.FromWorld(g, rivers, stats)

	snapPath := filepath.Join(dir, "world.snap")
	if err := snapshot.WriteSnapshot(snapPath, snap); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	idx, err := indexdb.Open(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer idx.Close()
	if err := idx.RecordSnapshot(snapPath, snap); err != nil {
		t.Fatalf("record: %v", err)
	}

	c := newWorldCache(tune, idx, 4, quietLogger())
	msg, found, err := c.SnapshotArchived(7, 2, false)
	if err != nil || !found {
		t.Fatalf("found=%v err=%v for an archived world", found, err)
	}
	if msg.Seed != 7 || msg.Month != 2 {
		t.Fatalf("unexpected world: seed=%d month=%d", msg.Seed, msg.Month)
	}
	if s := c.Stats(); s.Restored != 1 || s.Generated != 0 {
		t.Fatalf("expected a restore and no generation, got %+v", s)
	}

	if _, found, err := c.SnapshotArchived(7, 9, false); err != nil || found {
		t.Fatalf("found=%v err=%v for a month never archived", found, err)
	}
}

func TestParseWorldQuery(t *testing.T) {
	cases := []struct {
		url  string
		ok   bool
		code string
	}{
		{"/v1/world?seed=42&month=3", true, ""},
		{"/v1/world?seed=-7&month=14", true, ""},
		{"/v1/world?seed=abc&month=3", false, protocol.ErrBadSeed},
		{"/v1/world?seed=1&month=0", false, protocol.ErrBadMonth},
		{"/v1/world?seed=1&month=15", false, protocol.ErrBadMonth},
		{"/v1/world?seed=1", false, protocol.ErrBadMonth},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", tc.url, nil)
		_, _, ok := parseWorldQuery(rec, req)
		if ok != tc.ok {
			t.Fatalf("%s: ok=%v, want %v", tc.url, ok, tc.ok)
		}
		if !tc.ok && rec.Code != 400 {
			t.Fatalf("%s: status %d, want 400", tc.url, rec.Code)
		}
	}
}

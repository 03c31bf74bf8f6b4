package indexdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hexatlas.world/internal/persistence/snapshot"
)

func testSnap(seed int64, month int) snapshot.SnapshotV1 {
	return snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version: snapshot.FormatVersion,
			Seed:    seed,
			Month:   month,
			Width:   220,
			Height:  160,
		},
		Rivers: []snapshot.RiverV1{{ID: 1}, {ID: 2}},
		TerrainCounts: map[string]int{
			"ocean":  20000,
			"plains": 9000,
		},
		RiverStats: snapshot.RiverStatsV1{Attempts: 14, Accepted: 2},
	}
}

func openTest(t *testing.T) *Index {
	t.Helper()
	ix, err := Open(filepath.Join(t.TempDir(), "worlds", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ix.Close() })
	return ix
}

func TestRecordAndLookup(t *testing.T) {
	ix := openTest(t)

	require.NoError(t, ix.RecordSnapshot("/data/42-3.snap.zst", testSnap(42, 3)))

	e, ok, err := ix.Lookup(42, 3)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/data/42-3.snap.zst", e.Path)
	require.Equal(t, 220, e.Width)
	require.Equal(t, 2, e.Rivers)
	require.Equal(t, 14, e.RiverAttempts)
	require.Equal(t, 20000, e.TerrainCounts["ocean"])
}

func TestLookupMissing(t *testing.T) {
	ix := openTest(t)

	_, ok, err := ix.Lookup(99, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRecordReplacesSameWorld(t *testing.T) {
	ix := openTest(t)

	require.NoError(t, ix.RecordSnapshot("/data/old.snap.zst", testSnap(7, 1)))
	require.NoError(t, ix.RecordSnapshot("/data/new.snap.zst", testSnap(7, 1)))

	e, ok, err := ix.Lookup(7, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/data/new.snap.zst", e.Path)

	all, err := ix.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestListReturnsAllWorlds(t *testing.T) {
	ix := openTest(t)

	require.NoError(t, ix.RecordSnapshot("/data/a.snap.zst", testSnap(1, 1)))
	require.NoError(t, ix.RecordSnapshot("/data/b.snap.zst", testSnap(1, 2)))
	require.NoError(t, ix.RecordSnapshot("/data/c.snap.zst", testSnap(2, 1)))

	all, err := ix.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
}

package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hexatlas.world/internal/gen/rivergen"
	"hexatlas.world/internal/gen/worldgen"
)

func smallWorld(t *testing.T, seed int64, month int) (*worldgen.Grid, []rivergen.River, rivergen.Stats) {
	t.Helper()
	cfg := worldgen.DefaultConfig()
	cfg.Width, cfg.Height = 48, 36
	cfg.Continents = []worldgen.ContinentSpec{
		{Name: "boreas", Col: 14, Row: 12, RadiusX: 10, RadiusY: 8},
		{Name: "austra", Col: 33, Row: 24, RadiusX: 9, RadiusY: 8},
	}
	cfg.Islands = nil
	cfg.DesertTargetTiles = 24
	cfg.JungleRadius = 6
	cfg.VolcanoTarget = 2
	g := worldgen.GenerateWithConfig(seed, month, cfg)
	rivers, stats := rivergen.Generate(g, rivergen.Config{
		MinLength: 4, MaxAttempts: 40, FlowToOcean: true,
	}, 6)
	return g, rivers, stats
}

func TestSnapshotRoundTrip(t *testing.T) {
	g, rivers, stats := smallWorld(t, 42, 3)
	path := filepath.Join(t.TempDir(), "world", "42-3.snap.zst")

	require.NoError(t, WriteSnapshot(path, FromWorld(g, rivers, stats)))

	snap, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, FormatVersion, snap.Header.Version)
	require.Equal(t, int64(42), snap.Header.Seed)
	require.Equal(t, 3, snap.Header.Month)

	g2, rivers2, err := snap.World()
	require.NoError(t, err)
	require.Equal(t, g.Bounds, g2.Bounds)
	require.Equal(t, g.Len(), g2.Len())

	for i := 0; i < g.Len(); i++ {
		require.Equal(t, *g.TileAt(i), *g2.TileAt(i), "tile %d", i)
	}

	require.Len(t, rivers2, len(rivers))
	for i := range rivers {
		require.Equal(t, rivers[i], rivers2[i], "river %d", i)
	}
}

func TestReadHeaderOnly(t *testing.T) {
	g, rivers, stats := smallWorld(t, 7, 1)
	path := filepath.Join(t.TempDir(), "7-1.snap.zst")
	require.NoError(t, WriteSnapshot(path, FromWorld(g, rivers, stats)))

	h, err := ReadHeader(path)
	require.NoError(t, err)
	require.Equal(t, int64(7), h.Seed)
	require.Equal(t, 1, h.Month)
	require.Equal(t, g.Bounds.Width, h.Width)
	require.Equal(t, g.Bounds.Height, h.Height)
	require.NotEmpty(t, h.CreatedAt)
}

func TestWorldRejectsBoundsMismatch(t *testing.T) {
	g, rivers, stats := smallWorld(t, 1, 1)
	snap := FromWorld(g, rivers, stats)
	snap.Tiles = snap.Tiles[:len(snap.Tiles)-1]

	_, _, err := snap.World()
	require.Error(t, err)
}

func TestWorldRejectsUnknownVersion(t *testing.T) {
	g, rivers, stats := smallWorld(t, 1, 1)
	snap := FromWorld(g, rivers, stats)
	snap.Header.Version = 99

	_, _, err := snap.World()
	require.Error(t, err)
}

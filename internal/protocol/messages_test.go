package protocol_test

import (
	"testing"

	"hexatlas.world/internal/gen/rivergen"
	"hexatlas.world/internal/gen/worldgen"
	"hexatlas.world/internal/protocol"
)

func smallWorld(t *testing.T) (*worldgen.Grid, []rivergen.River) {
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
	g := worldgen.GenerateWithConfig(42, 1, cfg)
	rivers, _ := rivergen.Generate(g, rivergen.Config{
		MinLength: 4, MaxAttempts: 40, FlowToOcean: true,
	}, 6)
	return g, rivers
}

func TestCompactSnapshotMatchesFull(t *testing.T) {
	g, rivers := smallWorld(t)
	full := protocol.NewSnapshot(g, rivers)
	compact := protocol.NewCompactSnapshot(g, rivers)

	if len(compact.Tiles) != 0 {
		t.Fatalf("compact snapshot still carries %d tiles", len(compact.Tiles))
	}
	if len(compact.Rivers) != len(full.Rivers) || len(compact.Edges) != len(full.Edges) {
		t.Fatalf("compact snapshot lost rivers or edges")
	}

	terrain, err := protocol.DecodeRLE(compact.TerrainRLE)
	if err != nil {
		t.Fatalf("terrain stream: %v", err)
	}
	if len(terrain) != len(full.Tiles) {
		t.Fatalf("terrain stream has %d codes, want %d", len(terrain), len(full.Tiles))
	}
	for i, dto := range full.Tiles {
		if worldgen.Terrain(terrain[i]).String() != dto.Terrain {
			t.Fatalf("tile %d: stream says %q, full snapshot says %q",
				i, worldgen.Terrain(terrain[i]), dto.Terrain)
		}
	}

	elevation, err := protocol.DecodeRLE(compact.ElevationRLE)
	if err != nil {
		t.Fatalf("elevation stream: %v", err)
	}
	for i, dto := range full.Tiles {
		if int(elevation[i]) != dto.Elevation {
			t.Fatalf("tile %d: elevation %d, want %d", i, elevation[i], dto.Elevation)
		}
	}
}

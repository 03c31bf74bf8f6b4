package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRoundTrip(t *testing.T) {
	d := Default()
	if d.World.Width <= 0 || d.World.Height <= 0 {
		t.Fatalf("default world extents invalid: %+v", d.World)
	}
	if len(d.World.Continents) == 0 {
		t.Fatal("default tuning carries no continents")
	}
	if d.Rivers.MinLength <= 0 || !d.Rivers.FlowToOcean {
		t.Fatalf("default river tuning invalid: %+v", d.Rivers)
	}

	cfg := d.WorldConfig()
	if cfg.Width != d.World.Width || len(cfg.Continents) != len(d.World.Continents) {
		t.Fatalf("WorldConfig dropped fields: %+v", cfg)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := `
world:
  width: 64
  height: 48
  desert_target_tiles: 30
rivers:
  min_length: 5
  target_count: 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tn, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tn.World.Width != 64 || tn.World.Height != 48 {
		t.Fatalf("extents not overlaid: %+v", tn.World)
	}
	if tn.World.DesertTargetTiles != 30 {
		t.Fatalf("desert target not overlaid: %d", tn.World.DesertTargetTiles)
	}
	if got := tn.RiverConfig().MinLength; got != 5 {
		t.Fatalf("river min length = %d, want 5", got)
	}
	if tn.TargetCount() != 3 {
		t.Fatalf("target count = %d, want 3", tn.TargetCount())
	}
	// Fields absent from the file keep their defaults.
	if len(tn.World.Continents) == 0 {
		t.Fatal("defaults lost during overlay")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("world: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

// Package snapshot archives a generated world (tiles plus rivers) to a
// compressed file and restores it. A snapshot is a plain-JSON header
// line followed by a gob body, the whole stream zstd-compressed; the
// header line lets tooling identify a snapshot without decoding the
// body.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"hexatlas.world/internal/gen/hexgrid"
	"hexatlas.world/internal/gen/rivergen"
	"hexatlas.world/internal/gen/worldgen"
)

const FormatVersion = 1

type Header struct {
	Version   int    `json:"version"`
	Seed      int64  `json:"seed"`
	Month     int    `json:"month"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"created_at"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Tiles  []TileV1  `json:"tiles"`
	Rivers []RiverV1 `json:"rivers"`

	// Terrain histogram and river generation outcome, captured so
	// tooling can report on an archive without replaying it.
	TerrainCounts map[string]int `json:"terrain_counts"`
	RiverStats    RiverStatsV1   `json:"river_stats"`
}

// TileV1 stores terrain and features as their raw codes; the arena
// index is implicit in slice order, so coordinates are re-derived from
// the bounds on restore.
type TileV1 struct {
	Terrain     uint8   `json:"t"`
	Features    uint16  `json:"f,omitempty"`
	Elevation   int8    `json:"e"`
	Temperature float64 `json:"tc"`
	Rainfall    float64 `json:"rf"`
	Volcano     bool    `json:"v,omitempty"`
	River       bool    `json:"rv,omitempty"`
	Continent   string  `json:"c,omitempty"`
}

type RiverV1 struct {
	ID       int         `json:"id"`
	Source   [2]int      `json:"source"`
	Mouth    [2]int      `json:"mouth"`
	Segments []SegmentV1 `json:"segments"`
	Edges    []EdgeV1    `json:"edges"`
}

type SegmentV1 struct {
	Q         int `json:"q"`
	R         int `json:"r"`
	Elevation int `json:"e"`
}

type EdgeV1 struct {
	A         [2]int `json:"a"`
	B         [2]int `json:"b"`
	Direction int    `json:"d"`
}

type RiverStatsV1 struct {
	Sources  int            `json:"sources"`
	Attempts int            `json:"attempts"`
	Accepted int            `json:"accepted"`
	Rejected map[string]int `json:"rejected,omitempty"`
}

// FromWorld captures a finished grid and its rivers.
func FromWorld(g *worldgen.Grid, rivers []rivergen.River, stats rivergen.Stats) SnapshotV1 {
	snap := SnapshotV1{
		Header: Header{
			Version:   FormatVersion,
			Seed:      g.Seed,
			Month:     g.Month,
			Width:     g.Bounds.Width,
			Height:    g.Bounds.Height,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Tiles: make([]TileV1, g.Len()),
		RiverStats: RiverStatsV1{
			Sources:  stats.Sources,
			Attempts: stats.Attempts,
			Accepted: stats.Accepted,
		},
		TerrainCounts: make(map[string]int),
	}
	if len(stats.Rejected) > 0 {
		snap.RiverStats.Rejected = make(map[string]int, len(stats.Rejected))
		for reason, n := range stats.Rejected {
			snap.RiverStats.Rejected[string(reason)] = n
		}
	}

	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		snap.Tiles[i] = TileV1{
			Terrain:     uint8(t.Terrain),
			Features:    uint16(t.Features),
			Elevation:   int8(t.Elevation),
			Temperature: t.Temperature,
			Rainfall:    t.Rainfall,
			Volcano:     t.Volcano,
			River:       t.River,
			Continent:   t.Continent,
		}
		snap.TerrainCounts[t.Terrain.String()]++
	}

	for _, r := range rivers {
		rv := RiverV1{
			ID:       r.ID,
			Source:   [2]int{r.Source.Q, r.Source.R},
			Mouth:    [2]int{r.Mouth.Q, r.Mouth.R},
			Segments: make([]SegmentV1, 0, len(r.Segments)),
		}
		for _, s := range r.Segments {
			rv.Segments = append(rv.Segments, SegmentV1{Q: s.Coord.Q, R: s.Coord.R, Elevation: s.Elevation})
		}
		for _, e := range r.Edges {
			rv.Edges = append(rv.Edges, EdgeV1{
				A:         [2]int{e.A.Q, e.A.R},
				B:         [2]int{e.B.Q, e.B.R},
				Direction: e.Direction,
			})
		}
		snap.Rivers = append(snap.Rivers, rv)
	}
	return snap
}

// World rebuilds the grid and river list. Derived tile fields (coords,
// cartesian centers, latitude, hemisphere, season) are recomputed from
// the header rather than stored.
func (snap SnapshotV1) World() (*worldgen.Grid, []rivergen.River, error) {
	if snap.Header.Version != FormatVersion {
		return nil, nil, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	bounds := hexgrid.Bounds{Width: snap.Header.Width, Height: snap.Header.Height}
	if len(snap.Tiles) != bounds.Len() {
		return nil, nil, fmt.Errorf("tile count %d does not match %dx%d bounds", len(snap.Tiles), bounds.Width, bounds.Height)
	}

	g := worldgen.NewGrid(bounds, snap.Header.Seed, snap.Header.Month)
	worldgen.InitTileGeometry(g)
	for i := range snap.Tiles {
		src := &snap.Tiles[i]
		t := g.TileAt(i)
		t.Terrain = worldgen.Terrain(src.Terrain)
		t.Features = worldgen.FeatureSet(src.Features)
		t.Elevation = int(src.Elevation)
		t.Temperature = src.Temperature
		t.Rainfall = src.Rainfall
		t.Volcano = src.Volcano
		t.River = src.River
		t.Continent = src.Continent
	}

	rivers := make([]rivergen.River, 0, len(snap.Rivers))
	for _, rv := range snap.Rivers {
		r := rivergen.River{
			ID:     rv.ID,
			Source: hexgrid.Coord{Q: rv.Source[0], R: rv.Source[1]},
			Mouth:  hexgrid.Coord{Q: rv.Mouth[0], R: rv.Mouth[1]},
			Length: len(rv.Segments),
		}
		for i, s := range rv.Segments {
			r.Segments = append(r.Segments, rivergen.Segment{
				Coord:      hexgrid.Coord{Q: s.Q, R: s.R},
				Elevation:  s.Elevation,
				FromSource: i,
				ToMouth:    len(rv.Segments) - 1 - i,
			})
		}
		for _, e := range rv.Edges {
			a := hexgrid.Coord{Q: e.A[0], R: e.A[1]}
			b := hexgrid.Coord{Q: e.B[0], R: e.B[1]}
			edge := rivergen.NewEdge(a, b, rv.ID)
			r.Edges = append(r.Edges, edge)
		}
		rivers = append(rivers, r)
	}
	return g, rivers, nil
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Skip the header line; the gob body repeats it.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// ReadHeader decodes only the plain-text header line, without touching
// the gob body.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, err
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("snapshot header: %w", err)
	}
	return h, nil
}

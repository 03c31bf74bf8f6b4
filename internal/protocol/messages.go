package protocol

import (
	"hexatlas.world/internal/gen/rivergen"
	"hexatlas.world/internal/gen/worldgen"
)

// HELLO (client -> server): request the world for a (seed, month).
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name,omitempty"`
	Seed            int64  `json:"seed"`
	Month           int    `json:"month"`
}

// SNAPSHOT (server -> client): the finished (tiles, rivers) pair.
// Tiles are keyed by their (q, r) coordinates; collaborators must
// treat a missing key as out of bounds, not as an error.
type SnapshotMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Seed            int64      `json:"seed"`
	Month           int        `json:"month"`
	Width           int        `json:"width"`
	Height          int        `json:"height"`
	Tiles           []TileDTO  `json:"tiles,omitempty"`
	Rivers          []RiverDTO `json:"rivers"`
	Edges           []EdgeDTO  `json:"edges"`

	// Compact form: run-length encoded codes in arena order instead of
	// per-tile objects. Populated by NewCompactSnapshot, absent
	// otherwise.
	TerrainRLE   string `json:"terrain_rle,omitempty"`
	ElevationRLE string `json:"elevation_rle,omitempty"`
	FeaturesRLE  string `json:"features_rle,omitempty"`
}

// ERROR (server -> client).
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}

type TileDTO struct {
	Q           int      `json:"q"`
	R           int      `json:"r"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Terrain     string   `json:"terrain"`
	Features    []string `json:"features,omitempty"`
	Elevation   int      `json:"elevation"`
	Temperature float64  `json:"temperature"`
	Rainfall    float64  `json:"rainfall"`
	Volcano     bool     `json:"volcano,omitempty"`
	River       bool     `json:"river,omitempty"`
	Continent   string   `json:"continent,omitempty"`
	Latitude    float64  `json:"latitude"`
	Hemisphere  string   `json:"hemisphere"`
	Season      string   `json:"season"`
}

type SegmentDTO struct {
	Q          int `json:"q"`
	R          int `json:"r"`
	Elevation  int `json:"elevation"`
	FromSource int `json:"from_source"`
	ToMouth    int `json:"to_mouth"`
}

type RiverDTO struct {
	ID       int          `json:"id"`
	Source   [2]int       `json:"source"`
	Mouth    [2]int       `json:"mouth"`
	Length   int          `json:"length"`
	Segments []SegmentDTO `json:"segments"`
}

// EdgeDTO is a river border crossing. The (a, b) pair is canonical
// (sorted), so the same physical edge always serializes identically.
type EdgeDTO struct {
	A         [2]int `json:"a"`
	B         [2]int `json:"b"`
	Key       string `json:"key"`
	Direction int    `json:"direction"`
	RiverID   int    `json:"river_id"`
}

// NewCompactSnapshot builds the run-length form: three RLE streams
// over arena order replace the tile list. Renderers that only need
// terrain shapes pull this instead of the full snapshot.
func NewCompactSnapshot(g *worldgen.Grid, rivers []rivergen.River) SnapshotMsg {
	msg := NewSnapshot(g, rivers)
	msg.Tiles = nil

	terrain := make([]uint16, g.Len())
	elevation := make([]uint16, g.Len())
	features := make([]uint16, g.Len())
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		terrain[i] = uint16(t.Terrain)
		elevation[i] = uint16(t.Elevation)
		features[i] = uint16(t.Features)
	}
	msg.TerrainRLE = EncodeRLE(terrain)
	msg.ElevationRLE = EncodeRLE(elevation)
	msg.FeaturesRLE = EncodeRLE(features)
	return msg
}

// NewSnapshot flattens a finished grid and its rivers into the wire
// form.
func NewSnapshot(g *worldgen.Grid, rivers []rivergen.River) SnapshotMsg {
	msg := SnapshotMsg{
		Type:            TypeSnapshot,
		ProtocolVersion: Version,
		Seed:            g.Seed,
		Month:           g.Month,
		Width:           g.Bounds.Width,
		Height:          g.Bounds.Height,
		Tiles:           make([]TileDTO, 0, g.Len()),
	}

	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		msg.Tiles = append(msg.Tiles, TileDTO{
			Q:           t.Coord.Q,
			R:           t.Coord.R,
			X:           t.X,
			Y:           t.Y,
			Terrain:     t.Terrain.String(),
			Features:    t.Features.Names(),
			Elevation:   t.Elevation,
			Temperature: t.Temperature,
			Rainfall:    t.Rainfall,
			Volcano:     t.Volcano,
			River:       t.River,
			Continent:   t.Continent,
			Latitude:    t.Latitude,
			Hemisphere:  t.Hemisphere.String(),
			Season:      t.Season.String(),
		})
	}

	for _, r := range rivers {
		dto := RiverDTO{
			ID:     r.ID,
			Source: [2]int{r.Source.Q, r.Source.R},
			Mouth:  [2]int{r.Mouth.Q, r.Mouth.R},
			Length: r.Length,
		}
		for _, s := range r.Segments {
			dto.Segments = append(dto.Segments, SegmentDTO{
				Q: s.Coord.Q, R: s.Coord.R,
				Elevation: s.Elevation, FromSource: s.FromSource, ToMouth: s.ToMouth,
			})
		}
		msg.Rivers = append(msg.Rivers, dto)

		for _, e := range r.Edges {
			msg.Edges = append(msg.Edges, EdgeDTO{
				A:         [2]int{e.A.Q, e.A.R},
				B:         [2]int{e.B.Q, e.B.R},
				Key:       e.Key,
				Direction: e.Direction,
				RiverID:   e.RiverID,
			})
		}
	}
	return msg
}

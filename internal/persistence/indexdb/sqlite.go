// Package indexdb keeps a queryable catalog of archived world
// snapshots: one row per (seed, month) with the archive path and the
// headline numbers, so tooling can answer "what worlds do we have"
// without decompressing anything.
package indexdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"hexatlas.world/internal/persistence/snapshot"
)

type Index struct {
	db *sql.DB
}

// Entry is one cataloged world archive.
type Entry struct {
	Seed   int64
	Month  int
	Path   string
	Width  int
	Height int

	Rivers        int
	RiverAttempts int
	RiverAccepted int

	TerrainCounts map[string]int
	RecordedAt    string
}

func Open(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS worlds (
			seed INTEGER NOT NULL,
			month INTEGER NOT NULL,
			path TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			rivers INTEGER NOT NULL,
			river_attempts INTEGER NOT NULL,
			river_accepted INTEGER NOT NULL,
			terrain_counts TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (seed, month)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_worlds_recorded_at ON worlds(recorded_at);`,
		`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1');`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (ix *Index) Close() error {
	if ix == nil {
		return nil
	}
	return ix.db.Close()
}

// RecordSnapshot upserts the catalog row for an archived snapshot.
// Re-generating the same (seed, month) replaces the old row.
func (ix *Index) RecordSnapshot(path string, snap snapshot.SnapshotV1) error {
	if ix == nil {
		return nil
	}
	counts, err := json.Marshal(snap.TerrainCounts)
	if err != nil {
		return err
	}
	_, err = ix.db.Exec(
		`INSERT OR REPLACE INTO worlds
			(seed,month,path,width,height,rivers,river_attempts,river_accepted,terrain_counts,recorded_at)
			VALUES(?,?,?,?,?,?,?,?,?,?)`,
		snap.Header.Seed,
		snap.Header.Month,
		path,
		snap.Header.Width,
		snap.Header.Height,
		len(snap.Rivers),
		snap.RiverStats.Attempts,
		snap.RiverStats.Accepted,
		string(counts),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Lookup returns the catalog entry for (seed, month), if present.
func (ix *Index) Lookup(seed int64, month int) (Entry, bool, error) {
	row := ix.db.QueryRow(
		`SELECT seed,month,path,width,height,rivers,river_attempts,river_accepted,terrain_counts,recorded_at
			FROM worlds WHERE seed=? AND month=?`, seed, month)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// List returns every cataloged world, newest first.
func (ix *Index) List() ([]Entry, error) {
	rows, err := ix.db.Query(
		`SELECT seed,month,path,width,height,rivers,river_attempts,river_accepted,terrain_counts,recorded_at
			FROM worlds ORDER BY recorded_at DESC, seed, month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var counts string
	err := s.Scan(
		&e.Seed, &e.Month, &e.Path, &e.Width, &e.Height,
		&e.Rivers, &e.RiverAttempts, &e.RiverAccepted,
		&counts, &e.RecordedAt,
	)
	if err != nil {
		return e, err
	}
	if counts != "" {
		if err := json.Unmarshal([]byte(counts), &e.TerrainCounts); err != nil {
			return e, fmt.Errorf("terrain_counts: %w", err)
		}
	}
	return e, nil
}

package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestRunLoggerWritesReadableJSONL(t *testing.T) {
	dir := t.TempDir()
	l := NewRunLogger(dir)

	entries := []RunEntry{
		{Seed: 1, Month: 1, Width: 220, Height: 160, Rivers: 3},
		{Seed: 2, Month: 5, Width: 220, Height: 160, Rivers: 0, RiverRejected: map[string]int{"too_short": 4}},
	}
	for _, e := range entries {
		if err := l.WriteRun(e); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "runs", "runs-*.jsonl.zst"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one log file, got %v (%v)", files, err)
	}

	f, err := os.Open(files[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer dec.Close()

	var got []RunEntry
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e RunEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line: %v", err)
		}
		got = append(got, e)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != len(entries) {
		t.Fatalf("got %d entries, want %d", len(got), len(entries))
	}
	if got[0].Seed != 1 || got[1].Seed != 2 {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if got[1].RiverRejected["too_short"] != 4 {
		t.Fatalf("rejected counts lost: %+v", got[1])
	}
}

// Package rivergen derives a river network over a finished world
// grid: downhill paths from mountain sources to coastal mouths, with a
// best-first primary search and a backtracking greedy fallback.
package rivergen

// Config controls a river-generation run.
type Config struct {
	// MinLength is the hard floor on accepted path length, in tiles.
	MinLength int
	// MaxAttempts bounds the total number of source attempts across
	// the whole run.
	MaxAttempts int
	// FlowToOcean requires every river to terminate on a coast tile.
	// When off, inland endings are accepted regardless of AllowLakes.
	FlowToOcean bool
	// AllowLakes accepts rivers that dead-end inland. Off in the
	// shipped world; kept as an explicit switch rather than implied
	// behavior.
	AllowLakes bool
}

// DefaultConfig matches the shipped world tuning.
func DefaultConfig() Config {
	return Config{
		MinLength:   8,
		MaxAttempts: 100,
		FlowToOcean: true,
		AllowLakes:  false,
	}
}

// Reason tags why a single river attempt was rejected. Rejections are
// counted for observability and never abort the generation loop.
type Reason string

const (
	ReasonTooShort Reason = "too_short"
	ReasonDeadEnd  Reason = "dead_end"
	ReasonUphill   Reason = "uphill"
	ReasonNoCoast  Reason = "no_coast_reachable"
	ReasonNotMouth Reason = "ended_off_coast"
)

// Stats accumulates accept/reject counts for one generation run.
type Stats struct {
	Sources  int
	Attempts int
	Accepted int
	Rejected map[Reason]int
}

func newStats() *Stats {
	return &Stats{Rejected: make(map[Reason]int)}
}

func (s *Stats) reject(r Reason) {
	s.Rejected[r]++
}

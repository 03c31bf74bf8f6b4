// Package rng is the single source of randomness for world generation.
// Every pass that needs a random draw takes an *RNG; nothing in the
// pipeline may touch math/rand, so a (seed, call sequence) pair always
// reproduces the same world.
package rng

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// RNG is a small linear-congruential generator. Not suitable for
// anything but procedural content; chosen for its tiny state and exact
// reproducibility across platforms.
type RNG struct {
	state int64
}

func New(seed int64) *RNG {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &RNG{state: s}
}

// Next returns the next value in [0, 1).
func (r *RNG) Next() float64 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.state) / lcgModulus
}

// Range returns a float in [min, max).
func (r *RNG) Range(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Int returns an integer in [min, max], inclusive on both ends.
func (r *RNG) Int(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + int(r.Next()*float64(max-min+1))
}

// Shuffle performs a Fisher-Yates shuffle driven by this generator.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Int(0, i)
		swap(i, j)
	}
}

// Chance returns true with probability p (clamped to [0, 1]).
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		// Still consume a draw so call sequences stay aligned.
		r.Next()
		return true
	}
	return r.Next() < p
}

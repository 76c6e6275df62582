// Package rng provides the deterministic random source used by level
// generation and geometry, and the seed code encoding shared with players.
//
// Every caller owns its own RNG. There is no package-level stream.
package rng

// RNG is a seeded Mulberry32 generator. Two instances built from the same
// seed produce bit-identical sequences for the same call sequence.
type RNG struct {
	seed  uint32
	state uint32
	calls int
}

// New creates an RNG seeded with seed.
func New(seed uint32) *RNG {
	return &RNG{seed: seed, state: seed}
}

// Seed returns the seed the RNG was constructed with.
func (r *RNG) Seed() uint32 {
	return r.seed
}

// Calls returns the number of raw draws taken so far.
func (r *RNG) Calls() int {
	return r.calls
}

// next advances the Mulberry32 state and returns the next 32-bit output.
func (r *RNG) next() uint32 {
	r.calls++
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Frac returns a float64 in [0, 1).
func (r *RNG) Frac() float64 {
	return float64(r.next()) / 4294967296.0
}

// IntegerInRange returns an int in [min, max], inclusive on both ends.
// Swapped bounds are accepted.
func (r *RNG) IntegerInRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + int(r.Frac()*float64(max-min+1))
}

// RealInRange returns a float64 in [min, max).
func (r *RNG) RealInRange(min, max float64) float64 {
	return min + r.Frac()*(max-min)
}

// Chance returns true with probability p. It always consumes one draw,
// so the stream position does not depend on p.
func (r *RNG) Chance(p float64) bool {
	return r.Frac() < p
}

// Pick returns a uniformly chosen element of items.
// An empty slice yields the zero value without consuming a draw.
func Pick[T any](r *RNG, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.IntegerInRange(0, len(items)-1)]
}

// Shuffle returns a Fisher-Yates shuffled copy of items. The input is not
// modified.
func Shuffle[T any](r *RNG, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntegerInRange(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

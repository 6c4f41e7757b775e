// Package rng provides the uniform integer source used by the signal
// generator and the retrigger logic.
package rng

import "math/rand/v2"

// Source draws uniformly distributed integers.
type Source interface {
	// UniformInt returns a value in [min, maxExclusive). It returns min when
	// the range is empty.
	UniformInt(min, maxExclusive int) int
}

// PCG is a Source backed by a seeded PCG generator.
//
// A PCG is not safe for concurrent use; give each task its own.
type PCG struct {
	r *rand.Rand
}

// New returns a PCG source seeded with seed.
func New(seed uint64) *PCG {
	return &PCG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *PCG) UniformInt(min, maxExclusive int) int {
	if maxExclusive <= min {
		return min
	}
	return min + p.r.IntN(maxExclusive-min)
}

// Fixed replays a sequence of raw values, reduced into the requested range.
// It is meant for tests that need to pin every draw.
type Fixed struct {
	Values []int
	i      int
}

func (f *Fixed) UniformInt(min, maxExclusive int) int {
	if maxExclusive <= min || len(f.Values) == 0 {
		return min
	}
	v := f.Values[f.i%len(f.Values)]
	f.i++
	span := maxExclusive - min
	v %= span
	if v < 0 {
		v += span
	}
	return min + v
}

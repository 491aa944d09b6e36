package core

import (
	"math"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// LogUniform draws from [lo, hi) with a uniform density in log space. Both
// bounds must be positive; otherwise lo is returned.
func (r *RNG) LogUniform(lo, hi float64) float64 {
	if lo <= 0 || hi <= 0 {
		return lo
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	a, b := math.Log(lo), math.Log(hi)
	return math.Exp(a + (b-a)*r.r.Float64())
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

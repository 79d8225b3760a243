// Package dice provides the pseudo-random source used by combat and loot.
// Every random decision goes through a Roller so an encounter can be replayed
// from an identical sequence of draws.
package dice

import (
	"math/rand"
	"time"
)

// Roller is the subset of *rand.Rand the game needs.
type Roller interface {
	// Float64 returns a draw in [0.0, 1.0).
	Float64() float64
	// Intn returns a draw in [0, n).
	Intn(n int) int
}

// NewSeeded returns a deterministic roller for the given seed.
func NewSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewRandom returns a roller seeded from the clock.
func NewRandom() *rand.Rand {
	return NewSeeded(time.Now().UnixNano())
}

// Chance draws once and reports whether the draw fell below p.
func Chance(r Roller, p float64) bool {
	return r.Float64() < p
}

// Between draws uniformly from the inclusive range [lo, hi]. When lo == hi
// no draw is consumed.
func Between(r Roller, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

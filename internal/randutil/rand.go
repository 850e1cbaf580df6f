// Package randutil centralises how the table derives its random generators so
// that a single seed reproduces a whole game.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the seed so nearby seeds still diverge.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed unchanged when it is non-zero, otherwise a time-derived seed.
// Zero is reserved to mean "not set" on the command line.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return int64(mix(uint64(time.Now().UnixNano())) >> 1)
}

// Derive returns the seed for the n-th independent stream of a run, used to give
// every simulated game its own generator.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

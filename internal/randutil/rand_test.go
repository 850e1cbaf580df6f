package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for range 100 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestNearbySeedsDiverge(t *testing.T) {
	a, b := New(1), New(2)
	same := 0
	for range 100 {
		if a.IntN(1<<30) == b.IntN(1<<30) {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(42), Seed(42))
	assert.NotZero(t, Seed(0))
}

func TestDerive(t *testing.T) {
	seen := make(map[int64]bool)
	for n := range 1000 {
		s := Derive(99, n)
		assert.False(t, seen[s], "stream %d repeats a seed", n)
		seen[s] = true
	}
	assert.Equal(t, Derive(99, 3), Derive(99, 3))
	assert.NotEqual(t, Derive(99, 3), Derive(100, 3))
}

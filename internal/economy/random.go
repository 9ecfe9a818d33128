package economy

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform draws in [0,1).
type RandomSource interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// FixedRandom always returns the same draw.
type FixedRandom float64

func (f FixedRandom) Float64() float64 { return float64(f) }

// SeededRandom is a reproducible source, safe for concurrent use.
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom creates a PCG-backed source from two seed words.
func NewSeededRandom(seed1, seed2 uint64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (s *SeededRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

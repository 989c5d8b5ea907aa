package rng

import (
	mrand "math/rand"
	"sync"
)

// seededSource implements Source using a deterministic PRNG.
//
// Invariant: Two seededSources constructed with the same seed produce the
// same sequence of Float64/Intn results given the same call sequence.
type seededSource struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewSeededSource returns a Source whose output is fully determined by seed.
// Used for simulated matches so both participants can verify the same
// outcome from the same inputs.
//
// Postcondition: The returned Source is safe for concurrent use, though a
// simulated match drives it from a single goroutine.
func NewSeededSource(seed int64) Source {
	return &seededSource{r: mrand.New(mrand.NewSource(seed))}
}

// Float64 returns the next value in [0, 1) from the seeded stream.
func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Intn returns the next int in [0, n) from the seeded stream.
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// Package rng provides the randomness capability consumed by the combat,
// reward, enhancement, and penalty engines.
//
// Randomness is injected, never ambient: every engine function that rolls
// takes a Source argument, so live combat can use an unpredictable source
// while simulated matches use a seeded one and replay exactly.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

// Source is the randomness provider for the game engines.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64

	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are cryptographically secure and uniformly
// distributed over their range.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand, suitable for live
// interactive combat where outcomes must not be predictable.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure value in [0, 1).
//
// The top 53 bits of a random uint64 are used so the result has full
// float64 mantissa precision.
func (c *cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

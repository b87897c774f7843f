package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source abstracts the randomness behind gacha rolls and match outcomes so
// simulations and tests can run deterministically from a seed.
type Source interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (s cryptoSource) IntN(n int) int {
	return int(s.Float64() * float64(n))
}

// Default returns the crypto-backed source used in production.
func Default() Source { return cryptoSource{} }

type seededSource struct{ r *rand.Rand }

// NewSeeded returns a replicable source for tests and Monte Carlo runs.
func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }
func (s *seededSource) IntN(n int) int   { return s.r.IntN(n) }

// Shuffle permutes s in place (Fisher-Yates).
func Shuffle[T any](r Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

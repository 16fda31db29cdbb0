package service

import (
	"math/rand"
	"strconv"
	"sync"
)

const (
	cardNumberMin = 10000000
	cardNumberMax = 99999999
)

// NumberGenerator produces candidate card numbers. Candidates are not
// guaranteed to be unused; the ledger checks them against the store.
type NumberGenerator interface {
	Next() string
}

// RandomNumberGenerator draws 8-digit numbers uniformly from
// [10000000, 99999999]. It is safe for concurrent use.
type RandomNumberGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomNumberGenerator wraps rng, which must not be shared elsewhere.
func NewRandomNumberGenerator(rng *rand.Rand) *RandomNumberGenerator {
	return &RandomNumberGenerator{rng: rng}
}

// NewSeededNumberGenerator returns a generator with a deterministic sequence.
func NewSeededNumberGenerator(seed int64) *RandomNumberGenerator {
	return NewRandomNumberGenerator(rand.New(rand.NewSource(seed)))
}

// Next returns the next candidate number.
func (g *RandomNumberGenerator) Next() string {
	g.mu.Lock()
	n := cardNumberMin + g.rng.Intn(cardNumberMax-cardNumberMin+1)
	g.mu.Unlock()
	return strconv.Itoa(n)
}

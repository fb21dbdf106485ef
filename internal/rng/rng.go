// Package rng implements a small, seedable 64-bit generator used by the
// puzzle generator wherever a reproducible pseudo-random stream is
// required. It is deliberately not math/rand:
// generation determinism must survive across Go versions and be
// independent of the global seed.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync/atomic"
)

// PCG is a minimal permuted congruential generator (PCG-XSH-RR,
// 64-bit state, 32-bit output).
type PCG struct {
	state uint64
	inc   uint64
}

const (
	multiplier uint64 = 6364136223846793005
	defaultInc uint64 = 1442695040888963407
)

// New creates a PCG seeded deterministically from seed.
func New(seed uint64) *PCG {
	p := &PCG{inc: defaultInc | 1}
	p.state = 0
	p.step()
	p.state += seed
	p.step()
	return p
}

// fallbackCounter seeds NewFromEntropy when the OS entropy source is
// unavailable. It only guarantees distinct seeds within one process, which
// is all a last-resort source needs to provide.
var fallbackCounter atomic.Uint64

// EntropySeed draws a seed from the OS entropy source, falling back to a
// process-wide monotonic counter if the read fails.
func EntropySeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err == nil {
		return binary.LittleEndian.Uint64(buf[:])
	}
	return fallbackCounter.Add(1)
}

// NewFromEntropy creates a PCG seeded from EntropySeed, the unseeded path
// for callers that want fresh puzzles rather than reproducible ones.
func NewFromEntropy() *PCG {
	return New(EntropySeed())
}

func (p *PCG) step() {
	p.state = p.state*multiplier + p.inc
}

// Uint32 returns the next pseudo-random 32-bit value.
func (p *PCG) Uint32() uint32 {
	old := p.state
	p.step()
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Uint64 returns the next pseudo-random 64-bit value, assembled from two
// successive 32-bit draws.
func (p *PCG) Uint64() uint64 {
	hi := uint64(p.Uint32())
	lo := uint64(p.Uint32())
	return hi<<32 | lo
}

// Intn returns a pseudo-random integer in [0, n).
func (p *PCG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(p.Uint32() % uint32(n))
}

// Shuffle permutes a slice of length n in place using the Fisher-Yates
// algorithm, calling swap(i, j) for each transposition.
func (p *PCG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := p.Intn(i + 1)
		swap(i, j)
	}
}

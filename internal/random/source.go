// Package random provides the randomness capability consumed by the password
// composer. Randomness is always passed in explicitly so callers can choose
// between a reproducible, seeded source and the operating system's CSPRNG.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source draws uniform random values.
type Source interface {
	// Pick returns one element of alphabet chosen uniformly. The alphabet
	// must not be empty.
	Pick(alphabet []rune) rune
	// IntRange returns an integer chosen uniformly from the closed range
	// [lo, hi]. hi must not be less than lo.
	IntRange(lo, hi int) int
}

// Seeded is a deterministic Source. Two Seeded sources created with the same
// seed produce the same sequence. It is not safe for concurrent use.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a deterministic source from seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick implements Source.
func (s *Seeded) Pick(alphabet []rune) rune {
	return alphabet[s.rng.IntN(len(alphabet))]
}

// IntRange implements Source.
func (s *Seeded) IntRange(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// Crypto is a Source backed by crypto/rand. It is safe for concurrent use.
type Crypto struct {
	rng *rand.Rand
}

// NewCrypto creates a source reading from the operating system's CSPRNG.
func NewCrypto() *Crypto {
	return &Crypto{rng: rand.New(cryptoSource{})}
}

// Pick implements Source.
func (c *Crypto) Pick(alphabet []rune) rune {
	return alphabet[c.rng.IntN(len(alphabet))]
}

// IntRange implements Source.
func (c *Crypto) IntRange(lo, hi int) int {
	return lo + c.rng.IntN(hi-lo+1)
}

// cryptoSource adapts crypto/rand to rand.Source so the unbiased bounded
// sampling of math/rand/v2 can be reused.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("random: crypto/rand failed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// New returns a Seeded source for a non-zero seed and a Crypto source
// otherwise.
func New(seed uint64) Source {
	if seed != 0 {
		return NewSeeded(seed)
	}
	return NewCrypto()
}

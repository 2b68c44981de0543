package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var alphabet = []rune("abcdefghijklmnopqrstuvwxyz")

func draw(s Source, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = s.Pick(alphabet)
	}
	return string(out)
}

func TestSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	assert.Equal(t, draw(a, 64), draw(b, 64))
	assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
}

func TestSeededDiffersAcrossSeeds(t *testing.T) {
	assert.NotEqual(t, draw(NewSeeded(1), 64), draw(NewSeeded(2), 64))
}

func TestIntRangeBounds(t *testing.T) {
	sources := map[string]Source{
		"seeded": NewSeeded(7),
		"crypto": NewCrypto(),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			seen := make(map[int]bool)
			for i := 0; i < 2000; i++ {
				v := src.IntRange(3, 6)
				assert.GreaterOrEqual(t, v, 3)
				assert.LessOrEqual(t, v, 6)
				seen[v] = true
			}
			// Closed range: both endpoints are reachable.
			assert.Len(t, seen, 4)

			assert.Equal(t, 5, src.IntRange(5, 5))
		})
	}
}

func TestPickStaysInAlphabet(t *testing.T) {
	src := NewCrypto()
	small := []rune("xyz")
	for i := 0; i < 500; i++ {
		assert.Contains(t, small, src.Pick(small))
	}
}

func TestNew(t *testing.T) {
	assert.IsType(t, &Seeded{}, New(9))
	assert.IsType(t, &Crypto{}, New(0))
}

func TestSequence(t *testing.T) {
	seq := &Sequence{Picks: []int{0, 1, 27}, Ints: []int{-1, 2}}

	assert.Equal(t, "abb", draw(seq, 3))
	assert.Equal(t, 'a', seq.Pick(alphabet)) // wraps around
	assert.Equal(t, 4, seq.PickCalls)

	assert.Equal(t, 10, seq.IntRange(0, 10)) // -1 mod 11
	assert.Equal(t, 2, seq.IntRange(0, 10))
	assert.Equal(t, 2, seq.IntCalls)

	empty := &Sequence{}
	assert.Equal(t, 'a', empty.Pick(alphabet))
	assert.Equal(t, 4, empty.IntRange(4, 9))
}

package random

// Sequence is a scripted Source for tests. Picks are given as indexes into
// the alphabet passed to Pick (taken modulo its length) and ints as offsets
// into the requested range (taken modulo its width). When a script runs out
// it wraps around; an empty script always yields the first element / lo.
type Sequence struct {
	Picks []int
	Ints  []int

	pickPos int
	intPos  int

	// PickCalls and IntCalls count how often each method was used.
	PickCalls int
	IntCalls  int
}

// Pick implements Source.
func (s *Sequence) Pick(alphabet []rune) rune {
	s.PickCalls++
	idx := 0
	if len(s.Picks) > 0 {
		idx = s.Picks[s.pickPos%len(s.Picks)]
		s.pickPos++
	}
	return alphabet[mod(idx, len(alphabet))]
}

// IntRange implements Source.
func (s *Sequence) IntRange(lo, hi int) int {
	s.IntCalls++
	off := 0
	if len(s.Ints) > 0 {
		off = s.Ints[s.intPos%len(s.Ints)]
		s.intPos++
	}
	return lo + mod(off, hi-lo+1)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

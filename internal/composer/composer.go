// Package composer builds passwords from composition rules: a fixed prefix, a
// random fill drawn from the enabled character classes minus any excluded
// characters, and a required substring spliced in at a random position.
//
// Compose is a pure function of its Request and the random.Source it is
// handed. Every constraint is checked before any randomness is consumed, so
// a rejected request leaves the source untouched and can be corrected and
// retried. All lengths are counted in runes.
package composer

import (
	"unicode/utf8"

	"github.com/conneroisu/passforge/internal/random"
)

// Request describes the password to build. It is a plain value; Compose never
// modifies it.
type Request struct {
	// Length is the total password length in runes.
	Length int
	// Classes selects the character classes the random fill draws from.
	Classes ClassSet
	// Prefix is placed at the start of the password.
	Prefix string
	// MustInclude appears once, contiguously, at a random position.
	MustInclude string
	// Exclude lists characters that may not appear in the random fill.
	Exclude string
}

// FillLength is the number of randomly drawn runes the request asks for. It
// is negative when the prefix and the required text do not fit.
func (r Request) FillLength() int {
	return r.Length - utf8.RuneCountInString(r.Prefix) - utf8.RuneCountInString(r.MustInclude)
}

// Result is a composed password together with how it was assembled.
type Result struct {
	Password string
	// Fill is the randomly drawn part.
	Fill string
	// InsertAt is the rune offset at which MustInclude was spliced into
	// Prefix+Fill. It is zero when there was nothing to splice.
	InsertAt int
	// Alphabet is the effective alphabet the fill was drawn from.
	Alphabet []rune
}

// Alphabet returns the effective alphabet for the given classes: the union
// of their characters in class order with every excluded rune removed.
func Alphabet(classes ClassSet, exclude string) []rune {
	excluded := runeSet(exclude)

	alphabet := make([]rune, 0, 94)
	for _, c := range AllClasses {
		if !classes.Has(c) {
			continue
		}
		for _, r := range c.Chars() {
			if _, skip := excluded[r]; !skip {
				alphabet = append(alphabet, r)
			}
		}
	}
	return alphabet
}

// Validate checks the request against every composition constraint and
// returns the first violation. The checks run in a fixed order: length,
// required text length, required text against exclusions, alphabet, prefix
// length, and finally the combined length budget.
func Validate(req Request) error {
	_, err := validate(req)
	return err
}

func validate(req Request) ([]rune, error) {
	if req.Length <= 0 {
		return nil, occurrence(ErrInvalidLength).WithContext("length", req.Length)
	}

	mustLen := utf8.RuneCountInString(req.MustInclude)
	if mustLen > req.Length {
		return nil, occurrence(ErrMustIncludeTooLong).
			WithContext("required", mustLen).
			WithContext("available", req.Length)
	}

	excluded := runeSet(req.Exclude)
	for _, r := range req.MustInclude {
		if _, bad := excluded[r]; bad {
			return nil, occurrence(ErrMustIncludeConflictsWithExclusion).
				WithContext("char", string(r))
		}
	}

	alphabet := Alphabet(req.Classes, req.Exclude)
	fill := req.FillLength()
	if fill > 0 && len(alphabet) == 0 {
		return nil, occurrence(ErrEmptyAlphabet).
			WithContext("fill_length", fill).
			WithContext("classes", req.Classes.String())
	}

	prefixLen := utf8.RuneCountInString(req.Prefix)
	if prefixLen > req.Length {
		return nil, occurrence(ErrPrefixTooLong).
			WithContext("required", prefixLen).
			WithContext("available", req.Length)
	}

	if fill < 0 {
		return nil, occurrence(ErrLengthBudgetExceeded).
			WithContext("required", prefixLen+mustLen).
			WithContext("available", req.Length)
	}

	return alphabet, nil
}

// Compose builds a password for req using src. On a validation failure no
// value is drawn from src and the returned Result is empty.
func Compose(req Request, src random.Source) (Result, error) {
	alphabet, err := validate(req)
	if err != nil {
		return Result{}, err
	}

	fill := make([]rune, req.FillLength())
	for i := range fill {
		fill[i] = src.Pick(alphabet)
	}

	base := append([]rune(req.Prefix), fill...)
	res := Result{
		Fill:     string(fill),
		Alphabet: alphabet,
	}

	if req.MustInclude == "" {
		res.Password = string(base)
		return res, nil
	}

	res.InsertAt = src.IntRange(0, len(base))

	must := []rune(req.MustInclude)
	out := make([]rune, 0, len(base)+len(must))
	out = append(out, base[:res.InsertAt]...)
	out = append(out, must...)
	out = append(out, base[res.InsertAt:]...)
	res.Password = string(out)

	return res, nil
}

// Password is Compose for callers that only need the string.
func Password(req Request, src random.Source) (string, error) {
	res, err := Compose(req, src)
	if err != nil {
		return "", err
	}
	return res.Password, nil
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

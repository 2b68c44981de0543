//go:build property

package composer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/passforge/internal/random"
)

func requestFrom(length, mask int, prefix, must, exclude string) Request {
	return Request{
		Length:      length,
		Classes:     ClassSet(mask),
		Prefix:      prefix,
		MustInclude: must,
		Exclude:     exclude,
	}
}

// requestGens produces requests of which a good share are valid.
func requestGens() []gopter.Gen {
	return []gopter.Gen{
		gen.IntRange(1, 48),
		gen.IntRange(0, 15),
		gen.RegexMatch(`^[a-z0-9]{0,6}$`),
		gen.RegexMatch(`^[A-Z!]{0,4}$`),
		gen.RegexMatch(`^[a-m0-4]{0,6}$`),
		gen.UInt64(),
	}
}

// TestComposeProperties checks the invariants every successful composition must hold.
func TestComposeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("output length equals requested length", prop.ForAll(
		func(length, mask int, prefix, must, exclude string, seed uint64) bool {
			req := requestFrom(length, mask, prefix, must, exclude)
			res, err := Compose(req, random.NewSeeded(seed))
			if err != nil {
				return true
			}
			return utf8.RuneCountInString(res.Password) == req.Length
		},
		requestGens()...,
	))

	properties.Property("removing must-include at its insertion point yields prefix plus fill", prop.ForAll(
		func(length, mask int, prefix, must, exclude string, seed uint64) bool {
			req := requestFrom(length, mask, prefix, must, exclude)
			res, err := Compose(req, random.NewSeeded(seed))
			if err != nil {
				return true
			}

			pw := []rune(res.Password)
			mustLen := utf8.RuneCountInString(must)
			if string(pw[res.InsertAt:res.InsertAt+mustLen]) != must {
				return false
			}
			rest := string(pw[:res.InsertAt]) + string(pw[res.InsertAt+mustLen:])
			return rest == prefix+res.Fill
		},
		requestGens()...,
	))

	properties.Property("must-include occurs contiguously", prop.ForAll(
		func(length, mask int, prefix, must, exclude string, seed uint64) bool {
			req := requestFrom(length, mask, prefix, must, exclude)
			res, err := Compose(req, random.NewSeeded(seed))
			if err != nil {
				return true
			}
			return strings.Contains(res.Password, must)
		},
		requestGens()...,
	))

	properties.Property("fill only uses enabled, non-excluded characters", prop.ForAll(
		func(length, mask int, prefix, must, exclude string, seed uint64) bool {
			req := requestFrom(length, mask, prefix, must, exclude)
			res, err := Compose(req, random.NewSeeded(seed))
			if err != nil {
				return true
			}
			for _, r := range res.Fill {
				if strings.ContainsRune(exclude, r) {
					return false
				}
				inClass := false
				for _, c := range AllClasses {
					if req.Classes.Has(c) && strings.ContainsRune(c.Chars(), r) {
						inClass = true
						break
					}
				}
				if !inClass {
					return false
				}
			}
			return true
		},
		requestGens()...,
	))

	properties.Property("same seed, same password", prop.ForAll(
		func(length, mask int, prefix, must, exclude string, seed uint64) bool {
			req := requestFrom(length, mask, prefix, must, exclude)
			a, errA := Password(req, random.NewSeeded(seed))
			b, errB := Password(req, random.NewSeeded(seed))
			return a == b && (errA == nil) == (errB == nil)
		},
		requestGens()...,
	))

	properties.Property("rejected requests draw no randomness", prop.ForAll(
		func(length, mask int, prefix, must, exclude string, _ uint64) bool {
			req := requestFrom(length, mask, prefix, must, exclude)
			src := &random.Sequence{}
			_, err := Compose(req, src)
			if err == nil {
				return true
			}
			return src.PickCalls == 0 && src.IntCalls == 0
		},
		requestGens()...,
	))

	properties.TestingRun(t)
}

// TestValidationProperties checks that acceptance matches the length budget.
func TestValidationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fill length zero always succeeds", prop.ForAll(
		func(prefix, must string, seed uint64) bool {
			length := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(must)
			if length == 0 {
				return true
			}
			res, err := Compose(Request{Length: length, Prefix: prefix, MustInclude: must}, random.NewSeeded(seed))
			return err == nil && res.Fill == ""
		},
		gen.RegexMatch(`^[a-z]{0,6}$`),
		gen.RegexMatch(`^[A-Z]{0,6}$`),
		gen.UInt64(),
	))

	properties.Property("over-budget requests are rejected", prop.ForAll(
		func(prefix, must string, short int) bool {
			length := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(must) - short
			_, err := Compose(Request{Length: length, Classes: Classes(Lower), Prefix: prefix, MustInclude: must}, &random.Sequence{})
			return err != nil
		},
		gen.RegexMatch(`^[a-z]{1,6}$`),
		gen.RegexMatch(`^[A-Z]{1,6}$`),
		gen.IntRange(1, 3),
	))

	properties.TestingRun(t)
}

package composer

import (
	"strings"

	perrors "github.com/conneroisu/passforge/internal/errors"
)

// Class is one of the character classes a password may draw from.
type Class uint8

// ClassSet is a set of Classes.
type ClassSet uint8

const (
	Upper Class = 1 << iota
	Lower
	Digit
	Symbol
)

// AllClasses lists every class in alphabet order.
var AllClasses = []Class{Upper, Lower, Digit, Symbol}

const (
	UpperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowerChars  = "abcdefghijklmnopqrstuvwxyz"
	DigitChars  = "0123456789"
	SymbolChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Chars returns the characters belonging to the class.
func (c Class) Chars() string {
	switch c {
	case Upper:
		return UpperChars
	case Lower:
		return LowerChars
	case Digit:
		return DigitChars
	case Symbol:
		return SymbolChars
	default:
		return ""
	}
}

// String returns the configuration name of the class.
func (c Class) String() string {
	switch c {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Classes builds a set from individual classes.
func Classes(cs ...Class) ClassSet {
	var s ClassSet
	for _, c := range cs {
		s |= ClassSet(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s ClassSet) Has(c Class) bool {
	return s&ClassSet(c) != 0
}

// With returns a copy of the set with c added.
func (s ClassSet) With(c Class) ClassSet {
	return s | ClassSet(c)
}

// Names returns the names of the classes in the set, in alphabet order.
func (s ClassSet) Names() []string {
	names := make([]string, 0, len(AllClasses))
	for _, c := range AllClasses {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	return names
}

// String renders the set as a comma separated list, or "none".
func (s ClassSet) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Names(), ",")
}

var classAliases = map[string]Class{
	"upper":     Upper,
	"uppercase": Upper,
	"lower":     Lower,
	"lowercase": Lower,
	"digit":     Digit,
	"digits":    Digit,
	"number":    Digit,
	"numbers":   Digit,
	"symbol":    Symbol,
	"symbols":   Symbol,
}

// ParseClass parses a single class name. Plural and long forms such as
// "digits" or "uppercase" are accepted.
func ParseClass(name string) (Class, error) {
	c, ok := classAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, perrors.NewValidationError(
			perrors.ErrCodeUnknownCharacterClass,
			"unknown character class: "+name,
		).WithContext("class", name)
	}
	return c, nil
}

// ParseClasses parses a list of class names. Each element may itself be a
// comma separated list, so both ["upper","lower"] and ["upper,lower"] work.
// "all" enables every class and "none" or an empty list enables nothing.
func ParseClasses(names []string) (ClassSet, error) {
	var set ClassSet
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			name = strings.TrimSpace(name)
			switch strings.ToLower(name) {
			case "":
				continue
			case "none":
				continue
			case "all":
				set = Classes(AllClasses...)
				continue
			}

			c, err := ParseClass(name)
			if err != nil {
				return 0, err
			}
			set = set.With(c)
		}
	}
	return set, nil
}

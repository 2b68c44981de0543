//go:build property

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPassforgeErrorProperties validates matching and wrapping properties
func TestPassforgeErrorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	codes := gen.OneConstOf(
		ErrCodeInvalidLength,
		ErrCodeMustIncludeTooLong,
		ErrCodeMustIncludeExcluded,
		ErrCodeEmptyAlphabet,
		ErrCodePrefixTooLong,
		ErrCodeLengthBudgetExceeded,
	)

	// Property: context never affects matching
	properties.Property("errors.Is ignores context and message", prop.ForAll(
		func(code string, message string, key string, value int) bool {
			sentinel := NewValidationError(code, "sentinel")
			occurrence := NewValidationError(code, message).WithContext(key, value)

			return errors.Is(occurrence, sentinel) && errors.Is(sentinel, occurrence)
		},
		codes,
		gen.AnyString(),
		gen.Identifier(),
		gen.Int(),
	))

	// Property: different types with the same code never match
	properties.Property("type is part of identity", prop.ForAll(
		func(code string) bool {
			return !errors.Is(NewSecurityError(code, "x"), NewValidationError(code, "x"))
		},
		codes,
	))

	// Property: wrapping keeps the code reachable and the cause intact
	properties.Property("wrap preserves cause", prop.ForAll(
		func(code string, depth int) bool {
			var err error = NewValidationError(code, "root")
			for i := 0; i < depth; i++ {
				err = fmt.Errorf("layer %d: %w", i, err)
			}

			wrapped := WrapIO(err, ErrCodeWriteFailed, "write")

			return CodeOf(wrapped) == ErrCodeWriteFailed &&
				errors.Is(wrapped, NewValidationError(code, "")) &&
				len(Suggestions(err)) > 0
		},
		codes,
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}

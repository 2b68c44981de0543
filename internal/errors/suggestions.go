package errors

import (
	"errors"
	"fmt"
)

var codeSuggestions = map[string][]string{
	ErrCodeInvalidLength: {
		"Choose a password length of at least 1",
	},
	ErrCodeMustIncludeTooLong: {
		"Shorten the required text or increase --length",
	},
	ErrCodeMustIncludeExcluded: {
		"Remove the conflicting character from --exclude or from --include",
	},
	ErrCodeEmptyAlphabet: {
		"Enable at least one character class (upper, lower, digit, symbol)",
		"Exclude fewer characters so something is left to draw from",
	},
	ErrCodePrefixTooLong: {
		"Shorten the prefix or increase --length",
	},
	ErrCodeLengthBudgetExceeded: {
		"The prefix and the required text must fit inside the password together",
		"Increase --length or shorten one of them",
	},
	ErrCodeUnknownCharacterClass: {
		"Valid classes are: upper, lower, digit, symbol",
	},
	ErrCodeUnknownFormat: {
		"Run with --help to list the supported formats",
	},
	ErrCodePathTraversal: {
		"Use a file name inside the current directory",
	},
}

// Suggestions returns human-readable hints for the first PassforgeError in
// the chain that has any registered. Context values such as the required and
// available lengths are folded into an extra hint when present.
func Suggestions(err error) []string {
	for err != nil {
		var pe *PassforgeError
		if !errors.As(err, &pe) {
			return nil
		}

		if hints, ok := codeSuggestions[pe.Code]; ok {
			out := append([]string(nil), hints...)
			if req, ok := pe.Context["required"]; ok {
				if avail, ok := pe.Context["available"]; ok {
					out = append(out, fmt.Sprintf("Needs %v characters but only %v are available", req, avail))
				}
			}
			return out
		}

		err = pe.Cause
	}

	return nil
}

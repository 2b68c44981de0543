package composer

import (
	perrors "github.com/conneroisu/passforge/internal/errors"
)

// Sentinels for the request validation failures. Compose never returns these
// values directly; it returns fresh errors carrying context that match them
// under errors.Is.
var (
	ErrInvalidLength = perrors.NewValidationError(
		perrors.ErrCodeInvalidLength, "password length must be positive")
	ErrMustIncludeTooLong = perrors.NewValidationError(
		perrors.ErrCodeMustIncludeTooLong, "required text is longer than the password")
	ErrMustIncludeConflictsWithExclusion = perrors.NewValidationError(
		perrors.ErrCodeMustIncludeExcluded, "required text contains an excluded character")
	ErrEmptyAlphabet = perrors.NewValidationError(
		perrors.ErrCodeEmptyAlphabet, "no characters are available for the random part")
	ErrPrefixTooLong = perrors.NewValidationError(
		perrors.ErrCodePrefixTooLong, "prefix is longer than the password")
	ErrLengthBudgetExceeded = perrors.NewValidationError(
		perrors.ErrCodeLengthBudgetExceeded, "prefix and required text do not fit in the password")
)

// occurrence copies a sentinel so context can be attached without touching
// the shared value.
func occurrence(sentinel *perrors.PassforgeError) *perrors.PassforgeError {
	return perrors.NewValidationError(sentinel.Code, sentinel.Message)
}

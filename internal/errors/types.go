package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeSecurity   ErrorType = "security"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// PassforgeError is a structured error type with context.
type PassforgeError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Recoverable bool
}

// Error implements the error interface.
func (e *PassforgeError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *PassforgeError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison. Two PassforgeErrors match when their type
// and code match, so sentinel values work with errors.Is regardless of the
// context attached to a particular occurrence.
func (e *PassforgeError) Is(target error) bool {
	var t *PassforgeError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *PassforgeError) WithContext(key string, value interface{}) *PassforgeError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// ContextString renders the context as sorted key=value pairs.
func (e *PassforgeError) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.Context[k]))
	}

	return strings.Join(pairs, " ")
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *PassforgeError {
	return &PassforgeError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewSecurityError creates a security error.
func NewSecurityError(code, message string) *PassforgeError {
	return &PassforgeError{
		Type:        ErrorTypeSecurity,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *PassforgeError {
	return &PassforgeError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *PassforgeError {
	return &PassforgeError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var te *PassforgeError
	if errors.As(err, &te) {
		return te.Recoverable
	}

	return false
}

// IsValidationError checks if an error is a caller-correctable input problem.
func IsValidationError(err error) bool {
	var te *PassforgeError
	if errors.As(err, &te) {
		return te.Type == ErrorTypeValidation
	}

	return false
}

// IsSecurityError checks if an error is security-related.
func IsSecurityError(err error) bool {
	var te *PassforgeError
	if errors.As(err, &te) {
		return te.Type == ErrorTypeSecurity
	}

	return false
}

// CodeOf returns the code of the outermost PassforgeError in the chain.
func CodeOf(err error) string {
	var te *PassforgeError
	if errors.As(err, &te) {
		return te.Code
	}

	return ""
}

// Common error codes.
const (
	ErrCodeInvalidPath      = "ERR_INVALID_PATH"
	ErrCodePathTraversal    = "ERR_PATH_TRAVERSAL"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeWriteFailed      = "ERR_WRITE_FAILED"
	ErrCodeClipboard        = "ERR_CLIPBOARD"
	ErrCodeUnknownFormat    = "ERR_UNKNOWN_FORMAT"
	ErrCodeInternalError    = "ERR_INTERNAL"
	ErrCodeValidationFailed = "ERR_VALIDATION_FAILED"

	ErrCodeInvalidLength         = "ERR_INVALID_LENGTH"
	ErrCodeMustIncludeTooLong    = "ERR_MUST_INCLUDE_TOO_LONG"
	ErrCodeMustIncludeExcluded   = "ERR_MUST_INCLUDE_EXCLUDED"
	ErrCodeEmptyAlphabet         = "ERR_EMPTY_ALPHABET"
	ErrCodePrefixTooLong         = "ERR_PREFIX_TOO_LONG"
	ErrCodeLengthBudgetExceeded  = "ERR_LENGTH_BUDGET_EXCEEDED"
	ErrCodeUnknownCharacterClass = "ERR_UNKNOWN_CHARACTER_CLASS"
)

// ValidationError interface for field-specific validation errors.
type ValidationError interface {
	error
	Field() string
	Value() interface{}
	Suggestions() []string
}

// FieldValidationError implements ValidationError for specific field errors.
type FieldValidationError struct {
	FieldName    string
	FieldValue   interface{}
	ErrorMessage string
	HelpText     []string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", fve.FieldName, fve.ErrorMessage)
}

// Field returns the field name that failed validation.
func (fve *FieldValidationError) Field() string {
	return fve.FieldName
}

// Value returns the invalid value.
func (fve *FieldValidationError) Value() interface{} {
	return fve.FieldValue
}

// Suggestions returns helpful suggestions for fixing the error.
func (fve *FieldValidationError) Suggestions() []string {
	return fve.HelpText
}

// NewFieldValidationError creates a new field validation error.
func NewFieldValidationError(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) *FieldValidationError {
	return &FieldValidationError{
		FieldName:    field,
		FieldValue:   value,
		ErrorMessage: message,
		HelpText:     suggestions,
	}
}

// ValidationErrorCollection represents a collection of validation errors.
type ValidationErrorCollection struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (vec *ValidationErrorCollection) Error() string {
	if len(vec.Errors) == 0 {
		return "no validation errors"
	}
	if len(vec.Errors) == 1 {
		return vec.Errors[0].Error()
	}

	return fmt.Sprintf("validation failed with %d errors", len(vec.Errors))
}

// Add adds a validation error to the collection.
func (vec *ValidationErrorCollection) Add(err ValidationError) {
	vec.Errors = append(vec.Errors, err)
}

// HasErrors returns true if there are any validation errors.
func (vec *ValidationErrorCollection) HasErrors() bool {
	return len(vec.Errors) > 0
}

// ToPassforgeError converts the validation collection to a PassforgeError.
func (vec *ValidationErrorCollection) ToPassforgeError() *PassforgeError {
	if !vec.HasErrors() {
		return nil
	}

	var messages []string
	context := make(map[string]interface{})

	for _, err := range vec.Errors {
		messages = append(messages, err.Error())
		context[err.Field()] = map[string]interface{}{
			"value":       err.Value(),
			"suggestions": err.Suggestions(),
		}
	}

	return &PassforgeError{
		Type:        ErrorTypeValidation,
		Code:        ErrCodeValidationFailed,
		Message:     strings.Join(messages, "; "),
		Context:     context,
		Recoverable: true,
	}
}

// Helper functions for common errors

// ErrInvalidPath creates a path validation error.
func ErrInvalidPath(path string) *PassforgeError {
	return NewValidationError(ErrCodeInvalidPath, "invalid path: "+path)
}

// ErrPathTraversal creates a path traversal security error.
func ErrPathTraversal(path string) *PassforgeError {
	return NewSecurityError(ErrCodePathTraversal, "path traversal attempt: "+path)
}

// ErrUnknownFormat creates an error for an unsupported output or save format.
func ErrUnknownFormat(format string, supported []string) *PassforgeError {
	return NewValidationError(
		ErrCodeUnknownFormat,
		fmt.Sprintf("unsupported format %q (supported: %s)", format, strings.Join(supported, ", ")),
	).WithContext("format", format)
}

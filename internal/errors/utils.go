package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context, creating a PassforgeError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *PassforgeError {
	if err == nil {
		return nil
	}

	// If it's already a PassforgeError, preserve its properties but update the message
	var pe *PassforgeError
	if errors.As(err, &pe) {
		return &PassforgeError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       pe,
			Context:     pe.Context,
			Recoverable: pe.Recoverable,
		}
	}

	return &PassforgeError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation,
	}
}

// WrapValidation wraps an error as a validation error
func WrapValidation(err error, code, message string) *PassforgeError {
	return Wrap(err, ErrorTypeValidation, code, message)
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *PassforgeError {
	pe := Wrap(err, ErrorTypeIO, code, message)
	if pe != nil {
		pe.Recoverable = false
	}
	return pe
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *PassforgeError {
	pe := Wrap(err, ErrorTypeConfig, code, message)
	if pe != nil {
		pe.Recoverable = false
	}
	return pe
}

// FormatError formats an error for user display
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var pe *PassforgeError
	if errors.As(err, &pe) {
		return pe.Error()
	}

	return err.Error()
}

// FormatErrorWithSuggestions formats an error followed by any hints known
// for it, either carried by a ValidationError or registered for its code.
func FormatErrorWithSuggestions(err error) string {
	if err == nil {
		return ""
	}

	result := FormatError(err)

	var hints []string
	var ve ValidationError
	if errors.As(err, &ve) {
		result = ve.Error()
		hints = ve.Suggestions()
	} else {
		hints = Suggestions(err)
	}

	if len(hints) > 0 {
		result += "\n\nSuggestions:"
		for _, hint := range hints {
			result += fmt.Sprintf("\n  • %s", hint)
		}
	}

	return result
}

// GetErrorContext extracts context information from a PassforgeError
func GetErrorContext(err error) map[string]interface{} {
	var pe *PassforgeError
	if errors.As(err, &pe) {
		context := make(map[string]interface{})
		for k, v := range pe.Context {
			context[k] = v
		}
		context["type"] = string(pe.Type)
		context["code"] = pe.Code
		context["recoverable"] = pe.Recoverable
		return context
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}

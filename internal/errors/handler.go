package errors

import (
	"context"
	"errors"
)

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs an error at a level matching its type. Validation problems are
// the caller's to fix and are logged as warnings; everything else is an error.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var pe *PassforgeError
	if !errors.As(err, &pe) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch pe.Type {
	case ErrorTypeValidation:
		h.logger.Warn(ctx, err, "Validation error occurred",
			"type", pe.Type,
			"code", pe.Code)
	case ErrorTypeSecurity:
		h.logger.Error(ctx, err, "Security error occurred",
			"type", pe.Type,
			"code", pe.Code)
	default:
		h.logger.Error(ctx, err, "Error occurred",
			"type", pe.Type,
			"code", pe.Code,
			"recoverable", pe.Recoverable,
			"context", pe.ContextString())
	}
}

// Package apperror defines the error taxonomy shared by the core and the
// presentation layers: validation failures rejected before any processing
// and upstream failures propagated from the platform data-access layer.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a request parameter rejected before processing.
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// FromValidator converts the first failed rule of a validator error into a
// ValidationError. Errors that did not come from the validator are returned as is.
func FromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "min":
		msg = "must be at least " + fe.Param()
	case "max":
		msg = "must be at most " + fe.Param()
	case "oneof":
		msg = "must be one of [" + strings.ReplaceAll(fe.Param(), " ", ", ") + "]"
	case "required":
		msg = "is required"
	default:
		msg = "failed rule " + fe.Tag()
	}

	return NewValidationError(fe.Field(), fe.Value(), msg)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// UpstreamError is a failure reported by the platform data-access layer.
// It carries the original failure context and is never retried by the core.
type UpstreamError struct {
	// Operation names the data-access call, e.g. "list deployments".
	Operation string `json:"operation"`
	// StatusCode is the HTTP status returned by the platform, 0 for transport failures.
	StatusCode int   `json:"status_code,omitempty"`
	Err        error `json:"-"`
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s failed (status %d): %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err as an UpstreamError for operation.
func NewUpstreamError(operation string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{Operation: operation, StatusCode: statusCode, Err: err}
}

// IsUpstream reports whether err is, or wraps, an UpstreamError.
func IsUpstream(err error) bool {
	var e *UpstreamError
	return errors.As(err, &e)
}

// StatusCode maps err onto the HTTP status the API answers with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by every layer. Handlers map them to HTTP statuses.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// FieldError is one invalid input field. Field uses the request's JSON name.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every field error found in one input, in the
// order the fields were checked.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	names := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		names[i] = fe.Field
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// CollectValidation returns nil when errs is empty, otherwise a ValidationError.
// Input structs call it at the end of Validate.
func CollectValidation(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// retryableConflict marks a conflict that a client can resolve by sending
// the same request again, such as two first votes racing on one definition.
type retryableConflict struct{ op string }

func (e retryableConflict) Error() string { return e.op + ": concurrent update, retry" }
func (e retryableConflict) Unwrap() error { return ErrConflict }

// RetryableConflict returns an ErrConflict that IsRetryable reports.
func RetryableConflict(op string) error { return retryableConflict{op: op} }

// IsRetryable reports whether err is a conflict worth retrying.
func IsRetryable(err error) bool {
	var rc retryableConflict
	return errors.As(err, &rc)
}

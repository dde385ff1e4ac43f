package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")

	// ErrNoAttachments is returned when ingestion is invoked with an
	// empty attachment set.
	ErrNoAttachments = errors.New("no attachments to process")

	// ErrRegistryConflict is returned when a decoder or builder is
	// registered twice for the same (format tag, document kind) key.
	ErrRegistryConflict = errors.New("registry conflict")

	// ErrLoaderAborted wraps I/O failures while reading attachment bytes.
	// It is never used for malformed content.
	ErrLoaderAborted = errors.New("loader aborted")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// RedirectToUserError marks a decoder failure that needs interactive
// resolution. The record filler re-raises it instead of swallowing it,
// so the caller can surface the message to the user.
type RedirectToUserError struct {
	Message string
	Err     error
}

func (e *RedirectToUserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RedirectToUserError) Unwrap() error { return e.Err }

// RedirectToUser wraps err so that per-file error isolation does not
// swallow it.
func RedirectToUser(message string, err error) error {
	return &RedirectToUserError{Message: message, Err: err}
}

// IsRedirectToUser reports whether err carries the redirect-to-user marker.
func IsRedirectToUser(err error) bool {
	var r *RedirectToUserError
	return errors.As(err, &r)
}

package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is usually carried by a *ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyContent is returned when required text is empty after trimming.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidFeedback is returned when a feedback kind is not recognised.
	ErrInvalidFeedback = errors.New("invalid feedback kind")
)

// ValidationError describes a rejected input field. Every ValidationError
// matches ErrValidation under errors.Is, whatever cause it wraps.
type ValidationError struct {
	Field   string // The field that failed validation (e.g., "question")
	Message string // Human readable reason
	Err     error  // Underlying cause
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, ErrValidation) {
		return fmt.Sprintf("validation failed on %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation as a match so callers can test the category
// without caring about the cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

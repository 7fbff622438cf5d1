package service

import (
	"fmt"
)

// StateStoreError is a custom error type for unexpected state store failures.
// Expected conditions are reported with domain and store sentinels instead.
type StateStoreError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for StateStoreError.
func (e *StateStoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("state store %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("state store %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StateStoreError) Unwrap() error {
	return e.Err
}

// NewStateStoreError creates a new StateStoreError.
func NewStateStoreError(operation, message string, err error) *StateStoreError {
	return &StateStoreError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

package persistence

import (
	"errors"
	"fmt"
)

// ErrInvalidGroupKey is returned when a mapping key is not a group ID in
// canonical decimal form.
var ErrInvalidGroupKey = errors.New("group key is not an integer")

// ReadError reports a stored blob that could not be read or decoded. Load
// recovers from it by seeding; it is only ever logged.
type ReadError struct {
	Key string
	Err error
}

// Error implements the error interface for ReadError.
func (e *ReadError) Error() string {
	return fmt.Sprintf("read persisted state %q: %v", e.Key, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ReadError) Unwrap() error {
	return e.Err
}

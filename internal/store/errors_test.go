package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrGroupNotFound",
			err:      fmt.Errorf("lookup: %w", ErrGroupNotFound),
			expected: true,
		},
		{
			name:     "ErrCardNotFound",
			err:      ErrCardNotFound,
			expected: true,
		},
		{
			name:     "StoreError wrapping ErrCardNotFound",
			err:      NewStoreError("card", "get", "missing", ErrCardNotFound),
			expected: true,
		},
		{
			name:     "ErrInvalidKey",
			err:      ErrInvalidKey,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStoreError("kv", "set", "write failed", cause)

	assert.Equal(t, "set operation on kv failed: write failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("kv", "get", "bad key", nil)
	assert.Equal(t, "get operation on kv failed: bad key", bare.Error())
}

package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	cause := errors.New("group not found")
	err := NewValidationError("group_id", "does not exist", cause)

	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "validation failed on group_id: does not exist: group not found", err.Error())

	plain := NewValidationError("name", "is required", ErrValidation)
	assert.Equal(t, "validation failed on name: is required", plain.Error())
}

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("title", "is required", "")
	assert.Equal(t, "validation error on field 'title': is required", err.Error())
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("position", "must be at least 0", "min", -1)

	assert.Equal(t, "position", err.Field)
	assert.Equal(t, "min", err.Rule)
	assert.Equal(t, -1, err.Value)
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())

	one := ValidationErrors{{Field: "title", Message: "is required"}}
	assert.Equal(t, "validation failed: title is required", one.Error())

	two := ValidationErrors{
		{Field: "title", Message: "is required"},
		{Field: "description", Message: "is required"},
	}
	assert.Equal(t, "validation failed: 2 field errors", two.Error())
}

func TestToValidationErrors_NonValidatorError(t *testing.T) {
	result := ToValidationErrors(errors.New("not a validator error"))
	assert.Empty(t, result)
}

func TestValidationErrors_AsTarget(t *testing.T) {
	var err error = ValidationErrors{{Field: "title", Message: "is required"}}

	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve, 1)
}

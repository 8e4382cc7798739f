package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	single := NewValidationError("quarter", "must be one of Q1, Q2, Q3, Q4")
	assert.Equal(t, "validation: quarter: must be one of Q1, Q2, Q3, Q4", single.Error())
	assert.True(t, errors.Is(single, ErrValidation))

	multi := &ValidationError{Errors: []FieldError{
		{Field: "year", Message: "out of range"},
		{Field: "full_name", Message: "required"},
	}}
	assert.Equal(t, "validation: 2 errors", multi.Error())
	assert.True(t, errors.Is(multi, ErrValidation))
}

func TestReferentialIntegrityError(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	err := NewReferentialIntegrityError(
		Violation{Reference: "disability_category", ID: id, Message: "does not exist"},
		Violation{Reference: "assistance_request", Message: "2 requests reference this record"},
	)

	require.True(t, errors.Is(err, ErrReferentialIntegrity))
	assert.Contains(t, err.Error(), "disability_category "+id.String())
	assert.Contains(t, err.Error(), "assistance_request: 2 requests reference this record")
}

package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrValidation           = errors.New("validation error")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrTransaction          = errors.New("transaction failure")
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

// Violation names one reference that failed an existence or membership check.
type Violation struct {
	Reference string
	ID        uuid.UUID
	Message   string
}

func (v Violation) String() string {
	if v.ID == uuid.Nil {
		return fmt.Sprintf("%s: %s", v.Reference, v.Message)
	}
	return fmt.Sprintf("%s %s: %s", v.Reference, v.ID, v.Message)
}

// ReferentialIntegrityError enumerates the offending references of a write
// that was rejected before touching the database.
type ReferentialIntegrityError struct {
	Violations []Violation
}

func (e *ReferentialIntegrityError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "referential integrity: " + strings.Join(parts, "; ")
}

func (e *ReferentialIntegrityError) Unwrap() error { return ErrReferentialIntegrity }

// NewReferentialIntegrityError creates the error from one or more violations.
func NewReferentialIntegrityError(violations ...Violation) *ReferentialIntegrityError {
	return &ReferentialIntegrityError{Violations: violations}
}

package assistance

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// CreateRequestInput holds the payload for a new assistance request. Amount
// arrives as a raw string because the outer layer does not parse money; an
// empty string means "no amount" and is normalized to null.
type CreateRequestInput struct {
	AssistanceTypeID uuid.UUID
	PWDID            uuid.UUID
	RequestedBy      uuid.UUID
	Description      string
	Amount           *string
}

// Validate checks the required fields of a request creation payload.
func (i CreateRequestInput) Validate() error {
	var errs []domain.FieldError

	if i.AssistanceTypeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assistance_type_id", Message: "required"})
	}
	if i.PWDID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "pwd_id", Message: "required"})
	}
	if i.RequestedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "requested_by", Message: "required"})
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if _, err := parseAmount(i.Amount); err != nil {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be a number"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateRequestInput holds a partial request update. A nil Amount leaves
// the stored value alone; an empty string clears it to null.
type UpdateRequestInput struct {
	ActorID          uuid.UUID
	AssistanceTypeID *uuid.UUID
	Description      *string
	Amount           *string
	ReviewNotes      *string
}

// Validate checks the present fields of a request update payload.
func (i UpdateRequestInput) Validate() error {
	var errs []domain.FieldError

	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if i.Description != nil && strings.TrimSpace(*i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if _, err := parseAmount(i.Amount); err != nil {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be a number"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateAssistanceInput holds the payload for a legacy assistance row.
type CreateAssistanceInput struct {
	PWDID            uuid.UUID
	AssistanceTypeID uuid.UUID
	RecordedBy       uuid.UUID
	Details          *string
}

// Validate checks the required fields of a legacy assistance payload.
func (i CreateAssistanceInput) Validate() error {
	var errs []domain.FieldError

	if i.PWDID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "pwd_id", Message: "required"})
	}
	if i.AssistanceTypeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assistance_type_id", Message: "required"})
	}
	if i.RecordedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "recorded_by", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// parseAmount normalizes a raw amount string. A nil or empty value yields
// nil (stored as NULL); anything else must parse as a decimal number.
func parseAmount(raw *string) (*float64, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

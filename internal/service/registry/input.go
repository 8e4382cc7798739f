package registry

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// GuardianInput is one guardian entry of an aggregate payload. A nil ID
// means "insert a new row"; a set ID means "update that row".
type GuardianInput struct {
	ID            *uuid.UUID
	FullName      string
	Relationship  *string
	ContactNumber *string
	Address       *string
}

// EducationInput is one education entry of an aggregate payload.
type EducationInput struct {
	ID         *uuid.UUID
	Level      string
	SchoolName *string
	Period     *string
	Notes      *string
}

// SupportNeedInput is one support-need entry of an aggregate payload.
type SupportNeedInput struct {
	ID    *uuid.UUID
	Need  string
	Notes *string
}

// CreateRecordInput holds the full nested payload for aggregate creation.
// A missing or empty child collection is a no-op.
type CreateRecordInput struct {
	RegisteredBy     uuid.UUID
	Quarter          domain.Quarter
	Year             int
	GenderID         uuid.UUID
	FullName         string
	Occupation       *string
	ContactNumber    *string
	BirthDate        *time.Time
	Age              *int
	CategoryID       uuid.UUID
	TypeID           uuid.UUID
	IDNumber         *string
	CommunityID      uuid.UUID
	AssistanceTypeID *uuid.UUID
	ProfileImagePath *string
	Documents        []domain.DocumentRef

	Guardians    []GuardianInput
	Education    []EducationInput
	SupportNeeds []SupportNeedInput
}

// Validate checks the required top-level fields of a creation payload.
func (i CreateRecordInput) Validate(minYear int) error {
	var errs []domain.FieldError

	if !i.Quarter.IsValid() {
		errs = append(errs, domain.FieldError{Field: "quarter", Message: "must be one of Q1, Q2, Q3, Q4"})
	}
	if maxYear := time.Now().Year() + 1; i.Year < minYear || i.Year > maxYear {
		errs = append(errs, domain.FieldError{Field: "year", Message: "out of accepted range"})
	}
	if strings.TrimSpace(i.FullName) == "" {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "required"})
	}
	if i.RegisteredBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "registered_by", Message: "required"})
	}
	if i.GenderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "gender_id", Message: "required"})
	}
	if i.CategoryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "category_id", Message: "required"})
	}
	if i.TypeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "type_id", Message: "required"})
	}
	if i.CommunityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "community_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateRecordInput holds a partial aggregate update. Parent carries only
// the fields being changed; a nil child collection means "leave that
// collection alone", never an implicit delete.
type UpdateRecordInput struct {
	ActorID uuid.UUID
	Parent  domain.BeneficiaryUpdateParams

	Guardians    []GuardianInput
	Education    []EducationInput
	SupportNeeds []SupportNeedInput
}

// Validate checks the present fields of an update payload.
func (i UpdateRecordInput) Validate(minYear int) error {
	var errs []domain.FieldError

	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	if i.Parent.Quarter != nil && !i.Parent.Quarter.IsValid() {
		errs = append(errs, domain.FieldError{Field: "quarter", Message: "must be one of Q1, Q2, Q3, Q4"})
	}
	if i.Parent.Year != nil {
		if maxYear := time.Now().Year() + 1; *i.Parent.Year < minYear || *i.Parent.Year > maxYear {
			errs = append(errs, domain.FieldError{Field: "year", Message: "out of accepted range"})
		}
	}
	if i.Parent.FullName != nil && strings.TrimSpace(*i.Parent.FullName) == "" {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "required"})
	}
	if i.Parent.Status != nil && !i.Parent.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be one of pending, approved, declined"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// hasChanges reports whether the payload touches anything at all.
func (i UpdateRecordInput) hasChanges() bool {
	return !i.Parent.IsEmpty() || i.Guardians != nil || i.Education != nil || i.SupportNeeds != nil
}

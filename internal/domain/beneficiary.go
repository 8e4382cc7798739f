package domain

import (
	"time"

	"github.com/google/uuid"
)

// Beneficiary is a PWD registry record, the aggregate root owning the
// guardian, education and support-need child collections.
type Beneficiary struct {
	ID               uuid.UUID
	RegisteredBy     uuid.UUID
	Quarter          Quarter
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
	Status           BeneficiaryStatus
	ProfileImagePath *string
	// Documents is the freeform list stored as JSONB on the record itself,
	// distinct from the polymorphic supporting_documents table.
	Documents []DocumentRef
	CreatedAt time.Time

	Guardians    []Guardian
	Education    []EducationRecord
	SupportNeeds []SupportNeed
}

// DocumentRef is one entry of the record's inline documents list.
type DocumentRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// BeneficiaryUpdateParams enumerates which parent fields a partial update
// carries. A nil field is left untouched.
type BeneficiaryUpdateParams struct {
	Quarter          *Quarter
	Year             *int
	GenderID         *uuid.UUID
	FullName         *string
	Occupation       *string
	ContactNumber    *string
	BirthDate        *time.Time
	Age              *int
	CategoryID       *uuid.UUID
	TypeID           *uuid.UUID
	IDNumber         *string
	CommunityID      *uuid.UUID
	AssistanceTypeID *uuid.UUID
	Status           *BeneficiaryStatus
	ProfileImagePath *string
	Documents        []DocumentRef
}

// IsEmpty reports whether no parent field is present.
func (p BeneficiaryUpdateParams) IsEmpty() bool {
	return p.Quarter == nil && p.Year == nil && p.GenderID == nil &&
		p.FullName == nil && p.Occupation == nil && p.ContactNumber == nil &&
		p.BirthDate == nil && p.Age == nil && p.CategoryID == nil &&
		p.TypeID == nil && p.IDNumber == nil && p.CommunityID == nil &&
		p.AssistanceTypeID == nil && p.Status == nil &&
		p.ProfileImagePath == nil && p.Documents == nil
}

// AgeFromBirthDate derives the whole-year age at `now`. It is used only
// when the age was not explicitly supplied.
func AgeFromBirthDate(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

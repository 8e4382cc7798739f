package domain

import (
	"time"

	"github.com/google/uuid"
)

// Guardian is a caretaker of a beneficiary. Owned exclusively by its parent
// record; a guardian row with no parent is invalid state.
type Guardian struct {
	ID            uuid.UUID  `db:"id"`
	PWDID         uuid.UUID  `db:"pwd_id"`
	FullName      string     `db:"full_name"`
	Relationship  *string    `db:"relationship"`
	ContactNumber *string    `db:"contact_number"`
	Address       *string    `db:"address"`
	CreatedAt     time.Time  `db:"created_at"`
}

// GuardianUpdateParams carries the fields of a partial guardian update.
type GuardianUpdateParams struct {
	FullName      *string
	Relationship  *string
	ContactNumber *string
	Address       *string
}

// EducationRecord is one entry of a beneficiary's education history.
type EducationRecord struct {
	ID         uuid.UUID `db:"id"`
	PWDID      uuid.UUID `db:"pwd_id"`
	Level      string    `db:"level"`
	SchoolName *string   `db:"school_name"`
	Period     *string   `db:"period"`
	Notes      *string   `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}

// EducationUpdateParams carries the fields of a partial education update.
type EducationUpdateParams struct {
	Level      *string
	SchoolName *string
	Period     *string
	Notes      *string
}

// SupportNeed is one support requirement recorded for a beneficiary.
type SupportNeed struct {
	ID        uuid.UUID `db:"id"`
	PWDID     uuid.UUID `db:"pwd_id"`
	Need      string    `db:"need"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}

// SupportNeedUpdateParams carries the fields of a partial support-need update.
type SupportNeedUpdateParams struct {
	Need  *string
	Notes *string
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssistanceRequest is a beneficiary's application for assistance.
type AssistanceRequest struct {
	ID               uuid.UUID     `db:"id"`
	AssistanceTypeID uuid.UUID     `db:"assistance_type_id"`
	PWDID            uuid.UUID     `db:"pwd_id"`
	RequestedBy      uuid.UUID     `db:"requested_by"`
	Description      string        `db:"description"`
	Amount           *float64      `db:"amount"`
	ReviewNotes      *string       `db:"review_notes"`
	Status           RequestStatus `db:"status"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

// AssistanceRequestUpdateParams carries the fields of a partial request
// update. Status changes go through the workflow engine, not here.
type AssistanceRequestUpdateParams struct {
	AssistanceTypeID *uuid.UUID
	Description      *string
	Amount           *float64
	ClearAmount      bool
	ReviewNotes      *string
}

// Assistance is the legacy distribution-tracking entity. It carries its own
// status vocabulary, distinct from AssistanceRequest.
type Assistance struct {
	ID               uuid.UUID        `db:"id"`
	PWDID            uuid.UUID        `db:"pwd_id"`
	AssistanceTypeID uuid.UUID        `db:"assistance_type_id"`
	Details          *string          `db:"details"`
	Status           AssistanceStatus `db:"status"`
	CreatedAt        time.Time        `db:"created_at"`
}

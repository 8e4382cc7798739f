package domain

import "github.com/google/uuid"

// Gender is a lookup row referenced by beneficiary records.
type Gender struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// DisabilityCategory is a top-level disability classification.
type DisabilityCategory struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// DisabilityType is a specific disability belonging to exactly one category.
type DisabilityType struct {
	ID         uuid.UUID `db:"id"`
	CategoryID uuid.UUID `db:"category_id"`
	Name       string    `db:"name"`
}

// Community is a geographic lookup row.
type Community struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// AssistanceType is a lookup row naming a kind of assistance.
type AssistanceType struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// User is a registry operator referenced by records and log entries.
type User struct {
	ID       uuid.UUID `db:"id"`
	FullName string    `db:"full_name"`
	Role     string    `db:"role"`
}

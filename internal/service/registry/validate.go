package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// ForeignKeyRefs carries the referenced ids present in a payload. A nil
// field means the payload did not carry that reference and it is skipped.
type ForeignKeyRefs struct {
	GenderID         *uuid.UUID
	CategoryID       *uuid.UUID
	TypeID           *uuid.UUID
	CommunityID      *uuid.UUID
	AssistanceTypeID *uuid.UUID
	UserID           *uuid.UUID
}

// ValidateForeignKeys checks every present reference against the lookup
// tables and returns the violations found. It never mutates anything; an
// error return means a lookup itself failed, not that a reference was bad.
// Callers must treat a non-empty violations list as "do not proceed".
func (s *Service) ValidateForeignKeys(ctx context.Context, refs ForeignKeyRefs) ([]domain.Violation, error) {
	var violations []domain.Violation

	check := func(id *uuid.UUID, name string, exists func(context.Context, uuid.UUID) (bool, error)) error {
		if id == nil {
			return nil
		}
		found, err := exists(ctx, *id)
		if err != nil {
			return fmt.Errorf("%s lookup: %w", name, err)
		}
		if !found {
			violations = append(violations, domain.Violation{
				Reference: name, ID: *id, Message: "does not exist",
			})
		}
		return nil
	}

	if err := check(refs.GenderID, "gender", s.refs.GenderExists); err != nil {
		return nil, err
	}
	if err := check(refs.CategoryID, "disability_category", s.refs.CategoryExists); err != nil {
		return nil, err
	}
	if err := check(refs.TypeID, "disability_type", s.refs.TypeExists); err != nil {
		return nil, err
	}
	if err := check(refs.CommunityID, "community", s.refs.CommunityExists); err != nil {
		return nil, err
	}
	if err := check(refs.AssistanceTypeID, "assistance_type", s.refs.AssistanceTypeExists); err != nil {
		return nil, err
	}
	if err := check(refs.UserID, "user", s.refs.UserExists); err != nil {
		return nil, err
	}

	// Category membership is checked only when both sides are present and
	// individually resolved; a dangling id is already reported above.
	if refs.CategoryID != nil && refs.TypeID != nil && len(violations) == 0 {
		belongs, err := s.refs.TypeBelongsToCategory(ctx, *refs.TypeID, *refs.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("type membership lookup: %w", err)
		}
		if !belongs {
			violations = append(violations, domain.Violation{
				Reference: "disability_type",
				ID:        *refs.TypeID,
				Message:   fmt.Sprintf("does not belong to category %s", *refs.CategoryID),
			})
		}
	}

	return violations, nil
}

package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// GetRecord returns the full aggregate: the parent row plus all three child
// collections. Empty collections come back as empty slices, never nil.
func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("registry.GetRecord: %w", err)
	}

	if record.Guardians, err = s.guardians.ListByParent(ctx, id); err != nil {
		return nil, fmt.Errorf("registry.GetRecord: guardians: %w", err)
	}
	if record.Education, err = s.education.ListByParent(ctx, id); err != nil {
		return nil, fmt.Errorf("registry.GetRecord: education: %w", err)
	}
	if record.SupportNeeds, err = s.supportNeeds.ListByParent(ctx, id); err != nil {
		return nil, fmt.Errorf("registry.GetRecord: support needs: %w", err)
	}

	return record, nil
}

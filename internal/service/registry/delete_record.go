package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// DeleteRecord removes a beneficiary and everything it owns in one
// transaction. Deletion is rejected while any assistance request still
// references the record, so those rows are never silently orphaned.
func (s *Service) DeleteRecord(ctx context.Context, id, actorID uuid.UUID) error {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("registry.DeleteRecord: %w", err)
	}

	inUse, err := s.requests.CountByBeneficiary(ctx, id)
	if err != nil {
		return fmt.Errorf("registry.DeleteRecord: count requests: %w", err)
	}
	if inUse > 0 {
		return domain.NewReferentialIntegrityError(domain.Violation{
			Reference: "assistance_request",
			ID:        id,
			Message:   fmt.Sprintf("beneficiary has %d assistance request(s)", inUse),
		})
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.guardians.DeleteAllByParent(txCtx, id); err != nil {
			return fmt.Errorf("delete guardians: %w", err)
		}
		if _, err := s.education.DeleteAllByParent(txCtx, id); err != nil {
			return fmt.Errorf("delete education records: %w", err)
		}
		if _, err := s.supportNeeds.DeleteAllByParent(txCtx, id); err != nil {
			return fmt.Errorf("delete support needs: %w", err)
		}
		if _, err := s.documents.DeleteAllByOwner(txCtx, domain.BeneficiaryOwner(id)); err != nil {
			return fmt.Errorf("delete documents: %w", err)
		}
		if err := s.records.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete record: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("registry.DeleteRecord: %w", err)
	}

	s.logActivity(ctx, actorID,
		fmt.Sprintf("deleted beneficiary record %q", record.FullName))

	s.log.InfoContext(ctx, "beneficiary record deleted",
		slog.String("record_id", id.String()))

	return nil
}

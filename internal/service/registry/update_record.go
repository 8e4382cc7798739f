package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// UpdateRecord applies a partial aggregate update. Parent fields absent
// from the payload stay untouched. Child entries carrying their own id are
// routed to update; entries without one are inserted with the parent id
// forced, so one request can mix edits of existing rows with new rows. Any
// single failure rolls back the whole update.
func (s *Service) UpdateRecord(ctx context.Context, id uuid.UUID, input UpdateRecordInput) (*domain.Beneficiary, error) {
	if err := input.Validate(s.minYear); err != nil {
		return nil, err
	}

	// Existence first, so an unknown id reports NotFound rather than a
	// zero-row update somewhere mid-transaction.
	existing, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("registry.UpdateRecord: %w", err)
	}

	violations, err := s.ValidateForeignKeys(ctx, ForeignKeyRefs{
		GenderID:         input.Parent.GenderID,
		CategoryID:       input.Parent.CategoryID,
		TypeID:           input.Parent.TypeID,
		CommunityID:      input.Parent.CommunityID,
		AssistanceTypeID: input.Parent.AssistanceTypeID,
		UserID:           &input.ActorID,
	})
	if err != nil {
		return nil, fmt.Errorf("registry.UpdateRecord: %w", err)
	}
	if len(violations) > 0 {
		return nil, domain.NewReferentialIntegrityError(violations...)
	}

	params := input.Parent
	if params.Age == nil && params.BirthDate != nil {
		derived := domain.AgeFromBirthDate(*params.BirthDate, time.Now().UTC())
		params.Age = &derived
	}

	if !input.hasChanges() {
		return s.GetRecord(ctx, id)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if !params.IsEmpty() {
			if err := s.records.Update(txCtx, id, params); err != nil {
				return fmt.Errorf("update record: %w", err)
			}
		}

		for _, in := range input.Guardians {
			if in.ID != nil {
				if _, err := s.guardians.Update(txCtx, *in.ID, domain.GuardianUpdateParams{
					FullName:      nonEmpty(in.FullName),
					Relationship:  in.Relationship,
					ContactNumber: in.ContactNumber,
					Address:       in.Address,
				}); err != nil {
					return fmt.Errorf("update guardian %s: %w", *in.ID, err)
				}
				continue
			}
			if _, err := s.guardians.Create(txCtx, &domain.Guardian{
				PWDID:         id,
				FullName:      in.FullName,
				Relationship:  in.Relationship,
				ContactNumber: in.ContactNumber,
				Address:       in.Address,
			}); err != nil {
				return fmt.Errorf("insert guardian: %w", err)
			}
		}

		for _, in := range input.Education {
			if in.ID != nil {
				if _, err := s.education.Update(txCtx, *in.ID, domain.EducationUpdateParams{
					Level:      nonEmpty(in.Level),
					SchoolName: in.SchoolName,
					Period:     in.Period,
					Notes:      in.Notes,
				}); err != nil {
					return fmt.Errorf("update education record %s: %w", *in.ID, err)
				}
				continue
			}
			if _, err := s.education.Create(txCtx, &domain.EducationRecord{
				PWDID:      id,
				Level:      in.Level,
				SchoolName: in.SchoolName,
				Period:     in.Period,
				Notes:      in.Notes,
			}); err != nil {
				return fmt.Errorf("insert education record: %w", err)
			}
		}

		for _, in := range input.SupportNeeds {
			if in.ID != nil {
				if _, err := s.supportNeeds.Update(txCtx, *in.ID, domain.SupportNeedUpdateParams{
					Need:  nonEmpty(in.Need),
					Notes: in.Notes,
				}); err != nil {
					return fmt.Errorf("update support need %s: %w", *in.ID, err)
				}
				continue
			}
			if _, err := s.supportNeeds.Create(txCtx, &domain.SupportNeed{
				PWDID: id,
				Need:  in.Need,
				Notes: in.Notes,
			}); err != nil {
				return fmt.Errorf("insert support need: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registry.UpdateRecord: %w", err)
	}

	s.logActivity(ctx, input.ActorID,
		fmt.Sprintf("updated beneficiary record %q", existing.FullName))

	s.log.InfoContext(ctx, "beneficiary record updated",
		slog.String("record_id", id.String()))

	return s.GetRecord(ctx, id)
}

// nonEmpty lifts a required string into an update param only when it is
// actually set, so an omitted field cannot blank out the stored value.
func nonEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// CreateRecord creates a beneficiary together with its child collections as
// one atomic unit. On success the full aggregate is re-read after commit so
// the response reflects durable state.
func (s *Service) CreateRecord(ctx context.Context, input CreateRecordInput) (*domain.Beneficiary, error) {
	if err := input.Validate(s.minYear); err != nil {
		return nil, err
	}

	violations, err := s.ValidateForeignKeys(ctx, ForeignKeyRefs{
		GenderID:         &input.GenderID,
		CategoryID:       &input.CategoryID,
		TypeID:           &input.TypeID,
		CommunityID:      &input.CommunityID,
		AssistanceTypeID: input.AssistanceTypeID,
		UserID:           &input.RegisteredBy,
	})
	if err != nil {
		return nil, fmt.Errorf("registry.CreateRecord: %w", err)
	}
	if len(violations) > 0 {
		return nil, domain.NewReferentialIntegrityError(violations...)
	}

	age := input.Age
	if age == nil && input.BirthDate != nil {
		derived := domain.AgeFromBirthDate(*input.BirthDate, time.Now().UTC())
		age = &derived
	}

	var recordID uuid.UUID
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		parent, err := s.records.Create(txCtx, &domain.Beneficiary{
			RegisteredBy:     input.RegisteredBy,
			Quarter:          input.Quarter,
			Year:             input.Year,
			GenderID:         input.GenderID,
			FullName:         input.FullName,
			Occupation:       input.Occupation,
			ContactNumber:    input.ContactNumber,
			BirthDate:        input.BirthDate,
			Age:              age,
			CategoryID:       input.CategoryID,
			TypeID:           input.TypeID,
			IDNumber:         input.IDNumber,
			CommunityID:      input.CommunityID,
			AssistanceTypeID: input.AssistanceTypeID,
			ProfileImagePath: input.ProfileImagePath,
			Documents:        input.Documents,
		})
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		recordID = parent.ID

		for _, in := range input.Guardians {
			if _, err := s.guardians.Create(txCtx, &domain.Guardian{
				PWDID:         parent.ID,
				FullName:      in.FullName,
				Relationship:  in.Relationship,
				ContactNumber: in.ContactNumber,
				Address:       in.Address,
			}); err != nil {
				return fmt.Errorf("insert guardian: %w", err)
			}
		}
		for _, in := range input.Education {
			if _, err := s.education.Create(txCtx, &domain.EducationRecord{
				PWDID:      parent.ID,
				Level:      in.Level,
				SchoolName: in.SchoolName,
				Period:     in.Period,
				Notes:      in.Notes,
			}); err != nil {
				return fmt.Errorf("insert education record: %w", err)
			}
		}
		for _, in := range input.SupportNeeds {
			if _, err := s.supportNeeds.Create(txCtx, &domain.SupportNeed{
				PWDID: parent.ID,
				Need:  in.Need,
				Notes: in.Notes,
			}); err != nil {
				return fmt.Errorf("insert support need: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registry.CreateRecord: %w", err)
	}

	s.logActivity(ctx, input.RegisteredBy,
		fmt.Sprintf("created beneficiary record %q", input.FullName))

	s.log.InfoContext(ctx, "beneficiary record created",
		slog.String("record_id", recordID.String()),
		slog.Int("guardians", len(input.Guardians)),
		slog.Int("education", len(input.Education)),
		slog.Int("support_needs", len(input.SupportNeeds)))

	return s.GetRecord(ctx, recordID)
}

// Package assistance implements assistance-request and legacy
// assistance-distribution operations. Status changes are not handled here;
// they go through the workflow engine.
package assistance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// requestRepo defines the request store interface needed by the service.
type requestRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AssistanceRequest, error)
	ListByBeneficiary(ctx context.Context, pwdID uuid.UUID) ([]domain.AssistanceRequest, error)
	Create(ctx context.Context, req *domain.AssistanceRequest) (*domain.AssistanceRequest, error)
	Update(ctx context.Context, id uuid.UUID, params domain.AssistanceRequestUpdateParams) (*domain.AssistanceRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// legacyRepo defines the legacy assistance store interface needed by the service.
type legacyRepo interface {
	ListByBeneficiary(ctx context.Context, pwdID uuid.UUID) ([]domain.Assistance, error)
	Create(ctx context.Context, a *domain.Assistance) (*domain.Assistance, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// beneficiaryGetter resolves beneficiary existence for FK validation.
type beneficiaryGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error)
}

// referenceRepo defines the lookup checks needed by the service.
type referenceRepo interface {
	AssistanceTypeExists(ctx context.Context, id uuid.UUID) (bool, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// activityLog defines the audit sink interface needed by the service.
type activityLog interface {
	Record(ctx context.Context, entry *domain.ActivityEntry) error
}

// Service implements assistance-request operations.
type Service struct {
	log      *slog.Logger
	requests requestRepo
	legacy   legacyRepo
	records  beneficiaryGetter
	refs     referenceRepo
	activity activityLog
}

// NewService creates a new assistance service instance.
func NewService(
	logger *slog.Logger,
	requests requestRepo,
	legacy legacyRepo,
	records beneficiaryGetter,
	refs referenceRepo,
	activity activityLog,
) *Service {
	return &Service{
		log:      logger.With("service", "assistance"),
		requests: requests,
		legacy:   legacy,
		records:  records,
		refs:     refs,
		activity: activity,
	}
}

// validateRefs checks the request's references and returns the violations.
func (s *Service) validateRefs(ctx context.Context, typeID *uuid.UUID, pwdID *uuid.UUID, userID *uuid.UUID) ([]domain.Violation, error) {
	var violations []domain.Violation

	if typeID != nil {
		found, err := s.refs.AssistanceTypeExists(ctx, *typeID)
		if err != nil {
			return nil, fmt.Errorf("assistance type lookup: %w", err)
		}
		if !found {
			violations = append(violations, domain.Violation{
				Reference: "assistance_type", ID: *typeID, Message: "does not exist",
			})
		}
	}
	if pwdID != nil {
		if _, err := s.records.GetByID(ctx, *pwdID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("beneficiary lookup: %w", err)
			}
			violations = append(violations, domain.Violation{
				Reference: "beneficiary", ID: *pwdID, Message: "does not exist",
			})
		}
	}
	if userID != nil {
		found, err := s.refs.UserExists(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("user lookup: %w", err)
		}
		if !found {
			violations = append(violations, domain.Violation{
				Reference: "user", ID: *userID, Message: "does not exist",
			})
		}
	}

	return violations, nil
}

func (s *Service) logActivity(ctx context.Context, userID uuid.UUID, text string) {
	err := s.activity.Record(ctx, &domain.ActivityEntry{UserID: userID, Activity: text})
	if err != nil {
		s.log.WarnContext(ctx, "activity log write failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}

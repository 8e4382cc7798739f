// Package registry implements the aggregate record coordinator: a
// beneficiary and its guardian, education and support-need collections are
// written as one atomic unit, with insert-vs-update decided per child row.
package registry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// beneficiaryRepo defines the parent-row store interface needed by the coordinator.
type beneficiaryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error)
	Create(ctx context.Context, b *domain.Beneficiary) (*domain.Beneficiary, error)
	Update(ctx context.Context, id uuid.UUID, params domain.BeneficiaryUpdateParams) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// guardianRepo defines the guardian child-store interface needed by the coordinator.
type guardianRepo interface {
	ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.Guardian, error)
	Create(ctx context.Context, g *domain.Guardian) (*domain.Guardian, error)
	Update(ctx context.Context, id uuid.UUID, params domain.GuardianUpdateParams) (*domain.Guardian, error)
	DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error)
}

// educationRepo defines the education child-store interface needed by the coordinator.
type educationRepo interface {
	ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.EducationRecord, error)
	Create(ctx context.Context, rec *domain.EducationRecord) (*domain.EducationRecord, error)
	Update(ctx context.Context, id uuid.UUID, params domain.EducationUpdateParams) (*domain.EducationRecord, error)
	DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error)
}

// supportNeedRepo defines the support-need child-store interface needed by the coordinator.
type supportNeedRepo interface {
	ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.SupportNeed, error)
	Create(ctx context.Context, n *domain.SupportNeed) (*domain.SupportNeed, error)
	Update(ctx context.Context, id uuid.UUID, params domain.SupportNeedUpdateParams) (*domain.SupportNeed, error)
	DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error)
}

// documentRepo defines the polymorphic document-store interface needed by the coordinator.
type documentRepo interface {
	DeleteAllByOwner(ctx context.Context, owner domain.DocumentOwner) (int64, error)
}

// requestCounter reports how many assistance requests reference a beneficiary.
type requestCounter interface {
	CountByBeneficiary(ctx context.Context, pwdID uuid.UUID) (int, error)
}

// referenceRepo defines the lookup existence checks needed by the validator.
type referenceRepo interface {
	GenderExists(ctx context.Context, id uuid.UUID) (bool, error)
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	TypeExists(ctx context.Context, id uuid.UUID) (bool, error)
	TypeBelongsToCategory(ctx context.Context, typeID, categoryID uuid.UUID) (bool, error)
	CommunityExists(ctx context.Context, id uuid.UUID) (bool, error)
	AssistanceTypeExists(ctx context.Context, id uuid.UUID) (bool, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// activityLog defines the audit sink interface needed by the coordinator.
type activityLog interface {
	Record(ctx context.Context, entry *domain.ActivityEntry) error
}

// txManager defines the transaction manager interface needed by the coordinator.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the aggregate record operations.
type Service struct {
	log          *slog.Logger
	minYear      int
	records      beneficiaryRepo
	guardians    guardianRepo
	education    educationRepo
	supportNeeds supportNeedRepo
	documents    documentRepo
	requests     requestCounter
	refs         referenceRepo
	activity     activityLog
	tx           txManager
}

// NewService creates a new registry service instance. minYear is the lowest
// registration year the registry accepts.
func NewService(
	logger *slog.Logger,
	minYear int,
	records beneficiaryRepo,
	guardians guardianRepo,
	education educationRepo,
	supportNeeds supportNeedRepo,
	documents documentRepo,
	requests requestCounter,
	refs referenceRepo,
	activity activityLog,
	tx txManager,
) *Service {
	return &Service{
		log:          logger.With("service", "registry"),
		minYear:      minYear,
		records:      records,
		guardians:    guardians,
		education:    education,
		supportNeeds: supportNeeds,
		documents:    documents,
		requests:     requests,
		refs:         refs,
		activity:     activity,
		tx:           tx,
	}
}

// logActivity appends one audit entry after a successful commit. Failures
// are swallowed: audit-trail unavailability must not fail the operation it
// records.
func (s *Service) logActivity(ctx context.Context, userID uuid.UUID, text string) {
	err := s.activity.Record(ctx, &domain.ActivityEntry{UserID: userID, Activity: text})
	if err != nil {
		s.log.WarnContext(ctx, "activity log write failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}

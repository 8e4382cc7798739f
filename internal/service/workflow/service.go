// Package workflow implements the status state machines for beneficiaries,
// assistance requests and legacy assistance rows. Both machines are set
// membership only: any listed state is reachable from any other, there is
// no enforced ordering.
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// beneficiaryRepo defines the record store interface needed by the workflow engine.
type beneficiaryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Beneficiary, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.BeneficiaryStatus) error
}

// requestRepo defines the assistance-request store interface needed by the workflow engine.
type requestRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AssistanceRequest, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, notes *string) error
}

// assistanceRepo defines the legacy assistance store interface needed by the workflow engine.
type assistanceRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assistance, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.AssistanceStatus) error
}

// activityLog defines the audit sink interface needed by the workflow engine.
type activityLog interface {
	Record(ctx context.Context, entry *domain.ActivityEntry) error
}

// Service applies status transitions and records them in the audit trail.
type Service struct {
	log         *slog.Logger
	records     beneficiaryRepo
	requests    requestRepo
	assistances assistanceRepo
	activity    activityLog
}

// NewService creates a new workflow service instance.
func NewService(
	logger *slog.Logger,
	records beneficiaryRepo,
	requests requestRepo,
	assistances assistanceRepo,
	activity activityLog,
) *Service {
	return &Service{
		log:         logger.With("service", "workflow"),
		records:     records,
		requests:    requests,
		assistances: assistances,
		activity:    activity,
	}
}

// SetBeneficiaryStatus applies a beneficiary status. The value must be a
// member of the legal set; an illegal value leaves the row untouched.
func (s *Service) SetBeneficiaryStatus(ctx context.Context, id uuid.UUID, status domain.BeneficiaryStatus, actorID uuid.UUID) (*domain.Beneficiary, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be one of pending, approved, declined")
	}

	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workflow.SetBeneficiaryStatus: %w", err)
	}

	if err := s.records.SetStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("workflow.SetBeneficiaryStatus: %w", err)
	}

	s.logActivity(ctx, actorID,
		fmt.Sprintf("set status of beneficiary %q to %s", record.FullName, status))

	record.Status = status
	return record, nil
}

// SetRequestStatus applies an assistance-request status and, when notes are
// given, the review notes in the same statement.
func (s *Service) SetRequestStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, notes *string, actorID uuid.UUID) (*domain.AssistanceRequest, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status",
			"must be one of pending, review, ready_to_access, assessed, declined")
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workflow.SetRequestStatus: %w", err)
	}

	if err := s.requests.SetStatus(ctx, id, status, notes); err != nil {
		return nil, fmt.Errorf("workflow.SetRequestStatus: %w", err)
	}

	// The audit line names the beneficiary the request belongs to when the
	// record is still readable; the transition itself never depends on it.
	subject := fmt.Sprintf("request %s", id)
	if record, err := s.records.GetByID(ctx, req.PWDID); err == nil {
		subject = fmt.Sprintf("request %s of %q", id, record.FullName)
	}
	s.logActivity(ctx, actorID, fmt.Sprintf("set status of assistance %s to %s", subject, status))

	req.Status = status
	if notes != nil {
		req.ReviewNotes = notes
	}
	return req, nil
}

// SetAssistanceStatus applies a legacy assistance status.
func (s *Service) SetAssistanceStatus(ctx context.Context, id uuid.UUID, status domain.AssistanceStatus, actorID uuid.UUID) (*domain.Assistance, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be one of pending, approved, disapproved")
	}

	a, err := s.assistances.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("workflow.SetAssistanceStatus: %w", err)
	}

	if err := s.assistances.SetStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("workflow.SetAssistanceStatus: %w", err)
	}

	s.logActivity(ctx, actorID, fmt.Sprintf("set status of assistance %s to %s", id, status))

	a.Status = status
	return a, nil
}

func (s *Service) logActivity(ctx context.Context, userID uuid.UUID, text string) {
	err := s.activity.Record(ctx, &domain.ActivityEntry{UserID: userID, Activity: text})
	if err != nil {
		s.log.WarnContext(ctx, "activity log write failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}

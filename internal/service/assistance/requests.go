package assistance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pwdcare/registry-backend/internal/domain"
)

// CreateRequest validates references and inserts a new assistance request.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*domain.AssistanceRequest, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	violations, err := s.validateRefs(ctx, &input.AssistanceTypeID, &input.PWDID, &input.RequestedBy)
	if err != nil {
		return nil, fmt.Errorf("assistance.CreateRequest: %w", err)
	}
	if len(violations) > 0 {
		return nil, domain.NewReferentialIntegrityError(violations...)
	}

	amount, _ := parseAmount(input.Amount)

	req, err := s.requests.Create(ctx, &domain.AssistanceRequest{
		AssistanceTypeID: input.AssistanceTypeID,
		PWDID:            input.PWDID,
		RequestedBy:      input.RequestedBy,
		Description:      input.Description,
		Amount:           amount,
	})
	if err != nil {
		return nil, fmt.Errorf("assistance.CreateRequest: %w", err)
	}

	s.logActivity(ctx, input.RequestedBy,
		fmt.Sprintf("created assistance request %s", req.ID))
	s.log.InfoContext(ctx, "assistance request created",
		slog.String("request_id", req.ID.String()),
		slog.String("pwd_id", input.PWDID.String()))

	return req, nil
}

// GetRequest returns a request by id.
func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*domain.AssistanceRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("assistance.GetRequest: %w", err)
	}
	return req, nil
}

// ListRequests returns a beneficiary's requests.
func (s *Service) ListRequests(ctx context.Context, pwdID uuid.UUID) ([]domain.AssistanceRequest, error) {
	reqs, err := s.requests.ListByBeneficiary(ctx, pwdID)
	if err != nil {
		return nil, fmt.Errorf("assistance.ListRequests: %w", err)
	}
	return reqs, nil
}

// UpdateRequest applies a partial update to a request. The amount string is
// normalized: empty clears the stored value to null, nil leaves it alone.
func (s *Service) UpdateRequest(ctx context.Context, id uuid.UUID, input UpdateRequestInput) (*domain.AssistanceRequest, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	violations, err := s.validateRefs(ctx, input.AssistanceTypeID, nil, &input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("assistance.UpdateRequest: %w", err)
	}
	if len(violations) > 0 {
		return nil, domain.NewReferentialIntegrityError(violations...)
	}

	params := domain.AssistanceRequestUpdateParams{
		AssistanceTypeID: input.AssistanceTypeID,
		Description:      input.Description,
		ReviewNotes:      input.ReviewNotes,
	}
	if input.Amount != nil {
		amount, _ := parseAmount(input.Amount)
		if amount == nil {
			params.ClearAmount = true
		} else {
			params.Amount = amount
		}
	}

	req, err := s.requests.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("assistance.UpdateRequest: %w", err)
	}

	s.logActivity(ctx, input.ActorID,
		fmt.Sprintf("updated assistance request %s", id))

	return req, nil
}

// DeleteRequest removes a request.
func (s *Service) DeleteRequest(ctx context.Context, id, actorID uuid.UUID) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("assistance.DeleteRequest: %w", err)
	}

	s.logActivity(ctx, actorID, fmt.Sprintf("deleted assistance request %s", id))
	return nil
}

// CreateAssistance inserts a legacy assistance-distribution row.
func (s *Service) CreateAssistance(ctx context.Context, input CreateAssistanceInput) (*domain.Assistance, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	violations, err := s.validateRefs(ctx, &input.AssistanceTypeID, &input.PWDID, &input.RecordedBy)
	if err != nil {
		return nil, fmt.Errorf("assistance.CreateAssistance: %w", err)
	}
	if len(violations) > 0 {
		return nil, domain.NewReferentialIntegrityError(violations...)
	}

	a, err := s.legacy.Create(ctx, &domain.Assistance{
		PWDID:            input.PWDID,
		AssistanceTypeID: input.AssistanceTypeID,
		Details:          input.Details,
	})
	if err != nil {
		return nil, fmt.Errorf("assistance.CreateAssistance: %w", err)
	}

	s.logActivity(ctx, input.RecordedBy,
		fmt.Sprintf("recorded assistance %s", a.ID))

	return a, nil
}

// ListAssistances returns a beneficiary's legacy assistance rows.
func (s *Service) ListAssistances(ctx context.Context, pwdID uuid.UUID) ([]domain.Assistance, error) {
	rows, err := s.legacy.ListByBeneficiary(ctx, pwdID)
	if err != nil {
		return nil, fmt.Errorf("assistance.ListAssistances: %w", err)
	}
	return rows, nil
}

// DeleteAssistance removes a legacy assistance row.
func (s *Service) DeleteAssistance(ctx context.Context, id, actorID uuid.UUID) error {
	if err := s.legacy.Delete(ctx, id); err != nil {
		return fmt.Errorf("assistance.DeleteAssistance: %w", err)
	}

	s.logActivity(ctx, actorID, fmt.Sprintf("deleted assistance %s", id))
	return nil
}

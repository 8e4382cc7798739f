// Package assistrequest implements the assistance-request store using
// PostgreSQL.
package assistrequest

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/pwdcare/registry-backend/internal/adapter/postgres"
	"github.com/pwdcare/registry-backend/internal/domain"
)

const table = "assistance_requests"

var columns = []string{
	"id", "assistance_type_id", "pwd_id", "requested_by", "description",
	"amount", "review_notes", "status", "created_at", "updated_at",
}

// Repo provides assistance-request persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new assistance-request repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a request by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AssistanceRequest, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query: %w", err)
	}

	var req domain.AssistanceRequest
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &req, query, args...); err != nil {
		return nil, postgres.MapError(err, "assistance_request", id)
	}

	return &req, nil
}

// ListByBeneficiary returns a beneficiary's requests, newest first.
func (r *Repo) ListByBeneficiary(ctx context.Context, pwdID uuid.UUID) ([]domain.AssistanceRequest, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"pwd_id": pwdID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query: %w", err)
	}

	reqs := make([]domain.AssistanceRequest, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &reqs, query, args...); err != nil {
		return nil, fmt.Errorf("list assistance requests: %w", err)
	}

	return reqs, nil
}

// CountByBeneficiary returns how many requests reference a beneficiary.
// The coordinator uses this to refuse deleting a record that would orphan
// its requests.
func (r *Repo) CountByBeneficiary(ctx context.Context, pwdID uuid.UUID) (int, error) {
	const query = `SELECT count(*) FROM assistance_requests WHERE pwd_id = $1`

	var count int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, pwdID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count assistance requests: %w", err)
	}

	return count, nil
}

// Create inserts a new request. Description is mandatory; the amount must
// already be normalized (never an empty string, the domain carries *float64).
func (r *Repo) Create(ctx context.Context, req *domain.AssistanceRequest) (*domain.AssistanceRequest, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, domain.NewValidationError("description", "required")
	}

	req.ID = uuid.New()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}

	query, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(
			req.ID, req.AssistanceTypeID, req.PWDID, req.RequestedBy,
			req.Description, req.Amount, req.ReviewNotes, req.Status,
			req.CreatedAt, req.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert request query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "assistance_request", req.ID)
	}

	return req, nil
}

// Update applies the present fields of params. ClearAmount sets the amount
// to NULL explicitly, since a nil Amount only means "leave unchanged".
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.AssistanceRequestUpdateParams) (*domain.AssistanceRequest, error) {
	set := map[string]any{}
	if params.AssistanceTypeID != nil {
		set["assistance_type_id"] = *params.AssistanceTypeID
	}
	if params.Description != nil {
		if strings.TrimSpace(*params.Description) == "" {
			return nil, domain.NewValidationError("description", "required")
		}
		set["description"] = *params.Description
	}
	if params.ClearAmount {
		set["amount"] = nil
	} else if params.Amount != nil {
		set["amount"] = *params.Amount
	}
	if params.ReviewNotes != nil {
		set["review_notes"] = *params.ReviewNotes
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set["updated_at"] = time.Now().UTC()

	query, args, err := postgres.Builder().Update(table).SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update request query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "assistance_request", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("assistance_request %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// SetStatus applies a status and, when notes are provided, the review notes
// in the same statement.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, notes *string) error {
	set := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if notes != nil {
		set["review_notes"] = *notes
	}

	query, args, err := postgres.Builder().Update(table).SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "assistance_request", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assistance_request %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a request. Returns domain.ErrNotFound if missing.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete request query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "assistance_request", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assistance_request %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

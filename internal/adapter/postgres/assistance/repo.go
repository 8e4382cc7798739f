// Package assistance implements the legacy assistance-distribution store
// using PostgreSQL. It carries its own status vocabulary (pending,
// approved, disapproved), distinct from assistance requests.
package assistance

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/pwdcare/registry-backend/internal/adapter/postgres"
	"github.com/pwdcare/registry-backend/internal/domain"
)

const table = "assistances"

var columns = []string{"id", "pwd_id", "assistance_type_id", "details", "status", "created_at"}

// Repo provides legacy assistance persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new assistance repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns an assistance row by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assistance, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get assistance query: %w", err)
	}

	var a domain.Assistance
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &a, query, args...); err != nil {
		return nil, postgres.MapError(err, "assistance", id)
	}

	return &a, nil
}

// ListByBeneficiary returns a beneficiary's assistance rows, newest first.
func (r *Repo) ListByBeneficiary(ctx context.Context, pwdID uuid.UUID) ([]domain.Assistance, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"pwd_id": pwdID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list assistances query: %w", err)
	}

	rows := make([]domain.Assistance, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list assistances: %w", err)
	}

	return rows, nil
}

// Create inserts a new assistance row.
func (r *Repo) Create(ctx context.Context, a *domain.Assistance) (*domain.Assistance, error) {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	if a.Status == "" {
		a.Status = domain.AssistanceStatusPending
	}

	query, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(a.ID, a.PWDID, a.AssistanceTypeID, a.Details, a.Status, a.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert assistance query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "assistance", a.ID)
	}

	return a, nil
}

// SetStatus applies a status value.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.AssistanceStatus) error {
	query, args, err := postgres.Builder().Update(table).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "assistance", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assistance %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an assistance row. Returns domain.ErrNotFound if missing.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete assistance query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "assistance", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assistance %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

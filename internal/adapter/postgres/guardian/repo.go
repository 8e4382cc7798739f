// Package guardian implements the guardian child store using PostgreSQL.
// All statements go through the caller's transaction when one is active.
package guardian

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

const table = "guardians"

var columns = []string{"id", "pwd_id", "full_name", "relationship", "contact_number", "address", "created_at"}

// Repo provides guardian persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new guardian repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListByParent returns all guardians of a beneficiary, oldest first.
// Returns an empty slice (not nil) when the record has no guardians.
func (r *Repo) ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.Guardian, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"pwd_id": pwdID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list guardians query: %w", err)
	}

	guardians := make([]domain.Guardian, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &guardians, query, args...); err != nil {
		return nil, fmt.Errorf("list guardians: %w", err)
	}

	return guardians, nil
}

// GetByID returns a guardian by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Guardian, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get guardian query: %w", err)
	}

	var g domain.Guardian
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &g, query, args...); err != nil {
		return nil, postgres.MapError(err, "guardian", id)
	}

	return &g, nil
}

// Create inserts a new guardian. The full name is mandatory.
func (r *Repo) Create(ctx context.Context, g *domain.Guardian) (*domain.Guardian, error) {
	if strings.TrimSpace(g.FullName) == "" {
		return nil, domain.NewValidationError("full_name", "required")
	}
	if g.PWDID == uuid.Nil {
		return nil, domain.NewValidationError("pwd_id", "required")
	}

	g.ID = uuid.New()
	g.CreatedAt = time.Now().UTC()

	query, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(g.ID, g.PWDID, g.FullName, g.Relationship, g.ContactNumber, g.Address, g.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert guardian query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "guardian", g.ID)
	}

	return g, nil
}

// Update applies the present fields of params to an existing guardian.
// Returns domain.ErrNotFound if the id does not resolve.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.GuardianUpdateParams) (*domain.Guardian, error) {
	set := map[string]any{}
	if params.FullName != nil {
		if strings.TrimSpace(*params.FullName) == "" {
			return nil, domain.NewValidationError("full_name", "required")
		}
		set["full_name"] = *params.FullName
	}
	if params.Relationship != nil {
		set["relationship"] = *params.Relationship
	}
	if params.ContactNumber != nil {
		set["contact_number"] = *params.ContactNumber
	}
	if params.Address != nil {
		set["address"] = *params.Address
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := postgres.Builder().Update(table).SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update guardian query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "guardian", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("guardian %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a guardian. Returns domain.ErrNotFound if the id does not resolve.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete guardian query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "guardian", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("guardian %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAllByParent removes every guardian of a beneficiary and returns the
// number of rows deleted. Zero rows is not an error.
func (r *Repo) DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error) {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"pwd_id": pwdID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete guardians query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "guardian", pwdID)
	}

	return tag.RowsAffected(), nil
}

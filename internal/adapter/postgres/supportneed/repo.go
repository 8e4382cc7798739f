// Package supportneed implements the support-need child store using
// PostgreSQL. All statements go through the caller's transaction when one
// is active.
package supportneed

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

const table = "support_needs"

var columns = []string{"id", "pwd_id", "need", "notes", "created_at"}

// Repo provides support-need persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new support-need repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListByParent returns a beneficiary's support needs, oldest first.
func (r *Repo) ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.SupportNeed, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"pwd_id": pwdID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list support needs query: %w", err)
	}

	needs := make([]domain.SupportNeed, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &needs, query, args...); err != nil {
		return nil, fmt.Errorf("list support needs: %w", err)
	}

	return needs, nil
}

// GetByID returns a support need by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupportNeed, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get support need query: %w", err)
	}

	var n domain.SupportNeed
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &n, query, args...); err != nil {
		return nil, postgres.MapError(err, "support_need", id)
	}

	return &n, nil
}

// Create inserts a new support need. The need text is mandatory.
func (r *Repo) Create(ctx context.Context, n *domain.SupportNeed) (*domain.SupportNeed, error) {
	if strings.TrimSpace(n.Need) == "" {
		return nil, domain.NewValidationError("need", "required")
	}
	if n.PWDID == uuid.Nil {
		return nil, domain.NewValidationError("pwd_id", "required")
	}

	n.ID = uuid.New()
	n.CreatedAt = time.Now().UTC()

	query, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(n.ID, n.PWDID, n.Need, n.Notes, n.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert support need query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "support_need", n.ID)
	}

	return n, nil
}

// Update applies the present fields of params to an existing support need.
// Returns domain.ErrNotFound if the id does not resolve.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.SupportNeedUpdateParams) (*domain.SupportNeed, error) {
	set := map[string]any{}
	if params.Need != nil {
		if strings.TrimSpace(*params.Need) == "" {
			return nil, domain.NewValidationError("need", "required")
		}
		set["need"] = *params.Need
	}
	if params.Notes != nil {
		set["notes"] = *params.Notes
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := postgres.Builder().Update(table).SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update support need query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "support_need", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("support_need %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a support need. Returns domain.ErrNotFound if missing.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete support need query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "support_need", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("support_need %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAllByParent removes every support need of a beneficiary.
func (r *Repo) DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error) {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"pwd_id": pwdID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete support needs query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "support_need", pwdID)
	}

	return tag.RowsAffected(), nil
}

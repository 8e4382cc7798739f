// Package education implements the education-history child store using
// PostgreSQL. All statements go through the caller's transaction when one
// is active.
package education

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

const table = "education_records"

var columns = []string{"id", "pwd_id", "level", "school_name", "period", "notes", "created_at"}

// Repo provides education-record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new education repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListByParent returns a beneficiary's education history, oldest first.
func (r *Repo) ListByParent(ctx context.Context, pwdID uuid.UUID) ([]domain.EducationRecord, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"pwd_id": pwdID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list education query: %w", err)
	}

	records := make([]domain.EducationRecord, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &records, query, args...); err != nil {
		return nil, fmt.Errorf("list education records: %w", err)
	}

	return records, nil
}

// GetByID returns an education record by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.EducationRecord, error) {
	query, args, err := postgres.Builder().Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get education query: %w", err)
	}

	var rec domain.EducationRecord
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rec, query, args...); err != nil {
		return nil, postgres.MapError(err, "education_record", id)
	}

	return &rec, nil
}

// Create inserts a new education record. The level is mandatory.
func (r *Repo) Create(ctx context.Context, rec *domain.EducationRecord) (*domain.EducationRecord, error) {
	if strings.TrimSpace(rec.Level) == "" {
		return nil, domain.NewValidationError("level", "required")
	}
	if rec.PWDID == uuid.Nil {
		return nil, domain.NewValidationError("pwd_id", "required")
	}

	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()

	query, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.PWDID, rec.Level, rec.SchoolName, rec.Period, rec.Notes, rec.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert education query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "education_record", rec.ID)
	}

	return rec, nil
}

// Update applies the present fields of params to an existing record.
// Returns domain.ErrNotFound if the id does not resolve.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.EducationUpdateParams) (*domain.EducationRecord, error) {
	set := map[string]any{}
	if params.Level != nil {
		if strings.TrimSpace(*params.Level) == "" {
			return nil, domain.NewValidationError("level", "required")
		}
		set["level"] = *params.Level
	}
	if params.SchoolName != nil {
		set["school_name"] = *params.SchoolName
	}
	if params.Period != nil {
		set["period"] = *params.Period
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
		return nil, fmt.Errorf("build update education query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "education_record", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("education_record %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes an education record. Returns domain.ErrNotFound if missing.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete education query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "education_record", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("education_record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteAllByParent removes a beneficiary's entire education history.
func (r *Repo) DeleteAllByParent(ctx context.Context, pwdID uuid.UUID) (int64, error) {
	query, args, err := postgres.Builder().Delete(table).
		Where(sq.Eq{"pwd_id": pwdID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete education query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "education_record", pwdID)
	}

	return tag.RowsAffected(), nil
}

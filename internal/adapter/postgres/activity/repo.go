// Package activity implements the append-only activity log store.
package activity

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

// MinRetentionDays is the floor below which retention cleanup never reaches.
// Entries younger than this are kept no matter what retention is configured.
const MinRetentionDays = 30

// ClampRetention raises a configured retention period to the minimum floor.
func ClampRetention(days int) int {
	if days < MinRetentionDays {
		return MinRetentionDays
	}
	return days
}

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new activity log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Record appends a log entry. Entries are immutable once written.
func (r *Repo) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	if entry.Activity == "" {
		return domain.NewValidationError("activity", "must not be empty")
	}

	entry.ID = uuid.New()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query, args, err := postgres.Builder().Insert("activity_logs").
		Columns("id", "user_id", "activity", "created_at").
		Values(entry.ID, entry.UserID, entry.Activity, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build record activity query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "activity_entry", entry.ID)
	}
	return nil
}

// ListByUser returns a user's entries, most recent first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ActivityEntry, error) {
	builder := postgres.Builder().Select("id", "user_id", "activity", "created_at").
		From("activity_logs").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list activity query: %w", err)
	}

	entries := make([]domain.ActivityEntry, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list activity for user %s: %w", userID, err)
	}
	return entries, nil
}

// ListRecent returns the newest entries across all users.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query, args, err := postgres.Builder().Select("id", "user_id", "activity", "created_at").
		From("activity_logs").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list recent activity query: %w", err)
	}

	entries := make([]domain.ActivityEntry, 0)
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	return entries, nil
}

// DeleteOlderThan removes entries older than the given retention period and
// returns the number removed. The period is clamped to MinRetentionDays, so
// recent history can never be purged by a misconfigured retention value.
func (r *Repo) DeleteOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -ClampRetention(retentionDays))

	query, args, err := postgres.Builder().Delete("activity_logs").
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete old activity query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete activity older than %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return tag.RowsAffected(), nil
}

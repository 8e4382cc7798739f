// Package stats implements the read-only grouped-count queries over
// committed registry data.
package stats

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/pwdcare/registry-backend/internal/adapter/postgres"
	"github.com/pwdcare/registry-backend/internal/domain"
)

// StatusCount is one status bucket within a quarter or year.
type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}

// GenderCount is one gender bucket within a quarter or year.
type GenderCount struct {
	Gender string `db:"gender"`
	Count  int64  `db:"count"`
}

// QuarterBreakdown is the per-quarter rollup for a single year.
type QuarterBreakdown struct {
	Quarter  domain.Quarter
	Total    int64
	ByStatus []StatusCount
	ByGender []GenderCount
}

// YearSummary is the per-year rollup across the whole registry.
type YearSummary struct {
	Year            int   `db:"year"`
	Registered      int64 `db:"registered"`
	Assisted        int64 `db:"assisted"`
	PendingRequests int64 `db:"pending_requests"`
}

// Repo runs aggregate count queries against PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new statistics repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const countByQuarterStatusQuery = `
SELECT status, COUNT(*) AS count
FROM beneficiaries
WHERE year = $1 AND quarter = $2
GROUP BY status
ORDER BY status`

const countByQuarterGenderQuery = `
SELECT g.name AS gender, COUNT(*) AS count
FROM beneficiaries b
JOIN genders g ON g.id = b.gender_id
WHERE b.year = $1 AND b.quarter = $2
GROUP BY g.name
ORDER BY g.name`

const countRegisteredByYearQuery = `
SELECT COUNT(*) FROM beneficiaries WHERE year = $1`

// Accepted request states mark a beneficiary as actually assisted.
const countAssistedByYearQuery = `
SELECT COUNT(DISTINCT ar.pwd_id)
FROM assistance_requests ar
JOIN beneficiaries b ON b.id = ar.pwd_id
WHERE b.year = $1 AND ar.status IN ('ready_to_access', 'assessed')`

const countPendingRequestsByYearQuery = `
SELECT COUNT(*)
FROM assistance_requests ar
JOIN beneficiaries b ON b.id = ar.pwd_id
WHERE b.year = $1 AND ar.status = 'pending'`

const yearsWithRecordsQuery = `
SELECT DISTINCT year FROM beneficiaries ORDER BY year`

// QuarterBreakdown returns totals plus status and gender buckets for one
// quarter of one year. Quarters with no records come back with zero totals
// and empty buckets.
func (r *Repo) QuarterBreakdown(ctx context.Context, year int, quarter domain.Quarter) (*QuarterBreakdown, error) {
	db := postgres.QuerierFromCtx(ctx, r.db)

	byStatus := make([]StatusCount, 0)
	if err := pgxscan.Select(ctx, db, &byStatus, countByQuarterStatusQuery, year, quarter); err != nil {
		return nil, fmt.Errorf("count %d %s by status: %w", year, quarter, err)
	}

	byGender := make([]GenderCount, 0)
	if err := pgxscan.Select(ctx, db, &byGender, countByQuarterGenderQuery, year, quarter); err != nil {
		return nil, fmt.Errorf("count %d %s by gender: %w", year, quarter, err)
	}

	var total int64
	for _, s := range byStatus {
		total += s.Count
	}

	return &QuarterBreakdown{
		Quarter:  quarter,
		Total:    total,
		ByStatus: byStatus,
		ByGender: byGender,
	}, nil
}

// YearSummary returns the per-year registration, assisted and pending counts.
func (r *Repo) YearSummary(ctx context.Context, year int) (*YearSummary, error) {
	db := postgres.QuerierFromCtx(ctx, r.db)
	summary := YearSummary{Year: year}

	if err := db.QueryRow(ctx, countRegisteredByYearQuery, year).Scan(&summary.Registered); err != nil {
		return nil, fmt.Errorf("count registered for %d: %w", year, err)
	}
	if err := db.QueryRow(ctx, countAssistedByYearQuery, year).Scan(&summary.Assisted); err != nil {
		return nil, fmt.Errorf("count assisted for %d: %w", year, err)
	}
	if err := db.QueryRow(ctx, countPendingRequestsByYearQuery, year).Scan(&summary.PendingRequests); err != nil {
		return nil, fmt.Errorf("count pending requests for %d: %w", year, err)
	}
	return &summary, nil
}

// YearsWithRecords returns every year that has at least one beneficiary,
// ascending. Multi-year rollups iterate over this set.
func (r *Repo) YearsWithRecords(ctx context.Context) ([]int, error) {
	years := make([]int, 0)
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &years, yearsWithRecordsQuery)
	if err != nil {
		return nil, fmt.Errorf("list years with records: %w", err)
	}
	return years, nil
}

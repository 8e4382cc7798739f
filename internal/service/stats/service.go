// Package stats assembles registry rollups: per-quarter breakdowns within a
// year and multi-year summaries built from the set of years that actually
// hold records.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	statsrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/stats"
	"github.com/pwdcare/registry-backend/internal/domain"
)

// statsRepo defines the aggregate-query interface needed by the service.
type statsRepo interface {
	QuarterBreakdown(ctx context.Context, year int, quarter domain.Quarter) (*statsrepo.QuarterBreakdown, error)
	YearSummary(ctx context.Context, year int) (*statsrepo.YearSummary, error)
	YearsWithRecords(ctx context.Context) ([]int, error)
}

// YearReport bundles the four quarter breakdowns of one year with its summary.
type YearReport struct {
	Year     int
	Summary  statsrepo.YearSummary
	Quarters []statsrepo.QuarterBreakdown
}

// Service implements statistics operations.
type Service struct {
	log     *slog.Logger
	minYear int
	repo    statsRepo
}

// NewService creates a new statistics service instance.
func NewService(logger *slog.Logger, minYear int, repo statsRepo) *Service {
	return &Service{
		log:     logger.With("service", "stats"),
		minYear: minYear,
		repo:    repo,
	}
}

// QuarterBreakdown returns the status and gender counts of one quarter.
func (s *Service) QuarterBreakdown(ctx context.Context, year int, quarter domain.Quarter) (*statsrepo.QuarterBreakdown, error) {
	if !quarter.IsValid() {
		return nil, domain.NewValidationError("quarter", fmt.Sprintf("must be one of %v", domain.Quarters()))
	}
	if year < s.minYear {
		return nil, domain.NewValidationError("year", fmt.Sprintf("must not be before %d", s.minYear))
	}

	breakdown, err := s.repo.QuarterBreakdown(ctx, year, quarter)
	if err != nil {
		return nil, fmt.Errorf("stats.QuarterBreakdown: %w", err)
	}
	return breakdown, nil
}

// YearReport returns all four quarters of a year plus its summary counts.
func (s *Service) YearReport(ctx context.Context, year int) (*YearReport, error) {
	if year < s.minYear {
		return nil, domain.NewValidationError("year", fmt.Sprintf("must not be before %d", s.minYear))
	}

	summary, err := s.repo.YearSummary(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("stats.YearReport: %w", err)
	}

	report := &YearReport{Year: year, Summary: *summary}
	for _, q := range domain.Quarters() {
		breakdown, err := s.repo.QuarterBreakdown(ctx, year, q)
		if err != nil {
			return nil, fmt.Errorf("stats.YearReport: quarter %s: %w", q, err)
		}
		report.Quarters = append(report.Quarters, *breakdown)
	}
	return report, nil
}

// AllYearSummaries returns one summary per year that holds records, oldest
// first. Years with no records are skipped rather than reported as zeros.
func (s *Service) AllYearSummaries(ctx context.Context) ([]statsrepo.YearSummary, error) {
	years, err := s.repo.YearsWithRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats.AllYearSummaries: %w", err)
	}

	summaries := make([]statsrepo.YearSummary, 0, len(years))
	for _, year := range years {
		summary, err := s.repo.YearSummary(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("stats.AllYearSummaries: year %d: %w", year, err)
		}
		summaries = append(summaries, *summary)
	}

	s.log.DebugContext(ctx, "assembled year summaries", "years", len(summaries))
	return summaries, nil
}

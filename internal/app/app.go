package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pwdcare/registry-backend/internal/adapter/postgres"
	activityrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/activity"
	assistancerepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/assistance"
	requestrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/assistrequest"
	beneficiaryrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/beneficiary"
	documentrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/document"
	educationrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/education"
	guardianrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/guardian"
	referencerepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/reference"
	statsrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/stats"
	supportneedrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/supportneed"
	"github.com/pwdcare/registry-backend/internal/config"
	"github.com/pwdcare/registry-backend/internal/service/assistance"
	"github.com/pwdcare/registry-backend/internal/service/refdata"
	"github.com/pwdcare/registry-backend/internal/service/registry"
	"github.com/pwdcare/registry-backend/internal/service/stats"
	"github.com/pwdcare/registry-backend/internal/service/workflow"
	"github.com/pwdcare/registry-backend/internal/storage"
)

// Services bundles every constructed service. Transport layers are handed
// this struct instead of the individual constructors.
type Services struct {
	Registry   *registry.Service
	Workflow   *workflow.Service
	Assistance *assistance.Service
	Refdata    *refdata.Service
	Stats      *stats.Service
	Files      *storage.LocalStore
}

// Run is the application entry point. It loads configuration, initializes
// the logger and the database pool, applies migrations when configured to,
// constructs the service graph, and blocks until the context is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting registry",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if _, err := BuildServices(logger, cfg, pool); err != nil {
		return err
	}

	logger.Info("registry ready")

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// BuildServices wires repositories and services on top of an open pool.
func BuildServices(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool) (*Services, error) {
	files, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		return nil, err
	}

	records := beneficiaryrepo.New(pool)
	guardians := guardianrepo.New(pool)
	education := educationrepo.New(pool)
	supportNeeds := supportneedrepo.New(pool)
	documents := documentrepo.New(pool)
	requests := requestrepo.New(pool)
	legacy := assistancerepo.New(pool)
	refs := referencerepo.New(pool)
	activity := activityrepo.New(pool)
	aggregates := statsrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	return &Services{
		Registry: registry.NewService(
			logger,
			cfg.Registry.MinRecordYear,
			records,
			guardians,
			education,
			supportNeeds,
			documents,
			requests,
			refs,
			activity,
			tx,
		),
		Workflow:   workflow.NewService(logger, records, requests, legacy, activity),
		Assistance: assistance.NewService(logger, requests, legacy, records, refs, activity),
		Refdata:    refdata.NewService(logger, refs),
		Stats:      stats.NewService(logger, cfg.Registry.MinRecordYear, aggregates),
		Files:      files,
	}, nil
}

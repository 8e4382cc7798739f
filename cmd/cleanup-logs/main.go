// Command cleanup-logs deletes activity log entries older than the
// configured retention period. Retention below the 30-day audit floor is
// clamped up, never down.
//
// Usage:
//
//	cleanup-logs
//
// Requires DATABASE_DSN. REGISTRY_ACTIVITY_RETENTION_DAYS overrides the
// default retention of 180 days.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	activityrepo "github.com/pwdcare/registry-backend/internal/adapter/postgres/activity"
)

const defaultRetentionDays = 180

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	retention := defaultRetentionDays
	if raw := os.Getenv("REGISTRY_ACTIVITY_RETENTION_DAYS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("parse REGISTRY_ACTIVITY_RETENTION_DAYS: %v", err)
		}
		retention = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	deleted, err := activityrepo.New(pool).DeleteOlderThan(ctx, retention)
	if err != nil {
		log.Fatalf("cleanup activity logs: %v", err)
	}

	fmt.Printf("Deleted %d activity log entries older than %d days.\n",
		deleted, activityrepo.ClampRetention(retention))
}

package config

import (
	"fmt"
	"strings"
)

// Validate checks cross-field constraints the struct tags cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	if c.Registry.MinRecordYear < 1900 {
		return fmt.Errorf("registry.min_record_year %d is implausibly low", c.Registry.MinRecordYear)
	}
	if c.Registry.ActivityRetentionDays < 1 {
		return fmt.Errorf("registry.activity_retention_days must be positive")
	}

	if strings.TrimSpace(c.Storage.UploadDir) == "" {
		return fmt.Errorf("storage.upload_dir is required")
	}

	return nil
}

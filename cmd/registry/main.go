// Command registry runs the PWD registry backend.
//
// Configuration comes from CONFIG_PATH (YAML) or environment variables;
// DATABASE_DSN is required.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pwdcare/registry-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("registry: %v", err)
	}
}

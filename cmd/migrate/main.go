// Command migrate applies the embedded goose migrations.
//
// Usage:
//
//	migrate [up|down|status]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/pkg/database"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
)

func main() {
	command := database.MigrateUp
	if len(os.Args) > 1 {
		command = database.MigrationCommand(os.Args[1])
	}

	switch command {
	case database.MigrateUp, database.MigrateDown, database.MigrateStatus:
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [up|down|status]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, cfg.Postgres.DSN(), command); err != nil {
		logger.Log.Fatal("migration failed", zap.String("command", string(command)), zap.Error(err))
	}
}

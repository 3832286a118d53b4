package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/pkg/database"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
	"github.com/motopecasjacare/erp/internal/repository/objectstore"
	pgrepo "github.com/motopecasjacare/erp/internal/repository/postgres"
	"github.com/motopecasjacare/erp/internal/service"
	"github.com/motopecasjacare/erp/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Log
	defer func() { _ = logger.Sync() }()

	log.Info("starting worker service")

	deps, cleanup, err := initWorkerDependencies(cfg)
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer cleanup()

	workerServer := worker.NewServer(log, cfg, deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- workerServer.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("shutting down worker...")
		workerServer.Stop()
	case err := <-errCh:
		if err != nil {
			log.Error("worker server error", zap.Error(err))
		}
	}

	log.Info("worker stopped")
}

// initWorkerDependencies opens the reporting handle and the export bucket.
// The worker never writes through the pgx pool.
func initWorkerDependencies(cfg *config.Config) (*worker.Dependencies, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reporting, err := database.NewReportingDB(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize reporting handle: %w", err)
	}

	minioClient, err := database.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		_ = reporting.Close()
		return nil, nil, fmt.Errorf("failed to initialize MinIO: %w", err)
	}

	reports := pgrepo.NewReportRepository(reporting)
	deps := &worker.Dependencies{
		Rows:    reports,
		Exports: objectstore.NewExportStore(minioClient, cfg.MinIO.Bucket, cfg.MinIO.URLExpiry),
		Reports: service.NewReportService(reports),
	}

	cleanup := func() {
		_ = reporting.Close()
	}
	return deps, cleanup, nil
}

package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/pkg/database"
	"github.com/motopecasjacare/erp/internal/worker"
)

// Databases holds all external connections
type Databases struct {
	Postgres    *database.PostgresDB
	Reporting   *sqlx.DB
	Redis       *database.RedisDB
	Minio       *minio.Client
	AsynqClient *asynq.Client
}

// initDatabases initializes all connections, applying migrations first when
// auto migration is enabled
func initDatabases(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Databases, error) {
	dbs := &Databases{}

	if cfg.Postgres.AutoMigrate {
		if err := database.ApplyMigrations(ctx, cfg.Postgres.DSN()); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	pgDB, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	dbs.Postgres = pgDB

	reporting, err := database.NewReportingDB(ctx, cfg.Postgres)
	if err != nil {
		dbs.Close()
		return nil, fmt.Errorf("failed to initialize reporting handle: %w", err)
	}
	dbs.Reporting = reporting

	redisDB, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		dbs.Close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	dbs.Redis = redisDB

	minioClient, err := database.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		dbs.Close()
		return nil, fmt.Errorf("failed to initialize MinIO: %w", err)
	}
	dbs.Minio = minioClient

	dbs.AsynqClient = asynq.NewClient(worker.RedisOpt(cfg.Redis))

	logger.Info("connections ready")
	return dbs, nil
}

// Close closes all connections
func (d *Databases) Close() {
	if d.Postgres != nil {
		d.Postgres.Close()
	}
	if d.Reporting != nil {
		_ = d.Reporting.Close()
	}
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if d.AsynqClient != nil {
		_ = d.AsynqClient.Close()
	}
}

package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/middleware"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	DBs      *Databases
	Repos    *Repositories
	Services *Services
	Handlers *Handlers

	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// initDependencies initializes all dependencies
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	dbs, err := initDatabases(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	repos := initRepositories(cfg, dbs)

	svcs, err := initServices(cfg, dbs, repos)
	if err != nil {
		dbs.Close()
		return nil, err
	}

	created, err := svcs.Auth.EnsureAdmin(ctx)
	if err != nil {
		dbs.Close()
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	if created {
		logger.Info("bootstrap admin created", zap.String("username", cfg.Bootstrap.AdminUsername))
	}

	return &Dependencies{
		Config:         cfg,
		Logger:         logger,
		DBs:            dbs,
		Repos:          repos,
		Services:       svcs,
		Handlers:       initHandlers(dbs, repos, svcs, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(svcs.Auth),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(dbs.Redis.Client, middleware.RateLimitConfig{
			Max:    cfg.RateLimit.RequestsPerMinute,
			Window: time.Minute,
		}),
	}, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() {
	if d.DBs != nil {
		d.DBs.Close()
	}
}

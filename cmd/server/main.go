package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/handler"
	"github.com/motopecasjacare/erp/internal/middleware"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
)

const appVersion = "1.0.0"

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

	sentryEnabled := cfg.Sentry.Enabled()
	if err := middleware.InitSentry(cfg.Sentry, cfg.Server.Env, "jacare-erp@"+appVersion); err != nil {
		log.Error("failed to initialize Sentry", zap.Error(err))
		sentryEnabled = false
	}
	if sentryEnabled {
		log.Info("Sentry initialized", zap.String("environment", cfg.Server.Env))
		defer middleware.FlushSentry(5 * time.Second)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	deps, err := initDependencies(startCtx, cfg, log)
	cancelStart()
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer deps.Close()

	app := fiber.New(fiber.Config{
		AppName:               "Moto Peças Jacaré ERP",
		ReadTimeout:           30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          handler.ErrorHandler(log, sentryEnabled),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover(middleware.RecoverConfig{Logger: log, SentryEnabled: sentryEnabled}))
	app.Use(middleware.Logger(middleware.DefaultLoggerConfig(log)))
	app.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
	app.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowOrigins)))

	registerRoutes(app, deps)

	go func() {
		log.Info("starting server", zap.String("addr", cfg.Server.Addr()))
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

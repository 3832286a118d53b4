package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/config"
)

// Server is the worker server
type Server struct {
	logger    *zap.Logger
	config    *config.Config
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
}

// Dependencies holds what the task handlers need
type Dependencies struct {
	Rows    RowSource
	Exports interface {
		ExportWriter
		ExportPruner
	}
	Reports StockReporter
}

// RedisOpt builds the asynq connection from the Redis settings
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewServer creates a new worker server
func NewServer(logger *zap.Logger, cfg *config.Config, deps *Dependencies) *Server {
	redisOpt := RedisOpt(cfg.Redis)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				cfg.Worker.QueueCritical: 6,
				cfg.Worker.QueueDefault:  3,
				cfg.Worker.QueueLow:      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task processing failed",
					zap.String("type", task.Type()),
					zap.Error(err),
				)
			}),
			Logger: &asynqLogger{logger: logger},
		},
	)

	return &Server{
		logger:    logger,
		config:    cfg,
		server:    server,
		mux:       NewMux(logger, deps),
		scheduler: asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Logger: &asynqLogger{logger: logger}}),
	}
}

// NewMux registers every task handler
func NewMux(logger *zap.Logger, deps *Dependencies) *asynq.ServeMux {
	exportWorker := NewExportWorker(logger, deps.Rows, deps.Exports)
	cleanupWorker := NewCleanupWorker(logger, deps.Exports)
	scanWorker := NewScanWorker(logger, deps.Reports)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeDatasetExport, exportWorker.ProcessTask)
	mux.HandleFunc(TypeExportCleanup, cleanupWorker.ProcessTask)
	mux.HandleFunc(TypeLowStockScan, scanWorker.ProcessLowStockScan)
	mux.HandleFunc(TypeOverdueExpenseScan, scanWorker.ProcessOverdueExpenseScan)
	return mux
}

// Start starts the scheduler and blocks running the worker server
func (s *Server) Start() error {
	if err := s.registerScheduledTasks(); err != nil {
		return fmt.Errorf("failed to register scheduled tasks: %w", err)
	}

	go func() {
		if err := s.scheduler.Run(); err != nil {
			s.logger.Error("scheduler stopped", zap.Error(err))
		}
	}()

	s.logger.Info("starting worker server",
		zap.Int("concurrency", s.config.Worker.Concurrency),
	)

	return s.server.Run(s.mux)
}

// Stop stops the worker server
func (s *Server) Stop() {
	s.server.Shutdown()
	s.scheduler.Shutdown()
}

// registerScheduledTasks registers periodic tasks with the scheduler
func (s *Server) registerScheduledTasks() error {
	cfg := s.config.Worker

	if _, err := s.scheduler.Register(cfg.StockScanCron, NewLowStockScanTask(), asynq.Queue(cfg.QueueDefault)); err != nil {
		return fmt.Errorf("failed to register low stock scan: %w", err)
	}

	if _, err := s.scheduler.Register(cfg.ExpenseScanCron, NewOverdueExpenseScanTask(), asynq.Queue(cfg.QueueDefault)); err != nil {
		return fmt.Errorf("failed to register overdue expense scan: %w", err)
	}

	if cfg.ExportRetention > 0 {
		task, err := NewExportCleanupTask(&ExportCleanupPayload{Keep: cfg.ExportRetention})
		if err != nil {
			return err
		}
		// Daily at 3 AM UTC
		if _, err := s.scheduler.Register("0 3 * * *", task, asynq.Queue(cfg.QueueLow)); err != nil {
			return fmt.Errorf("failed to register export cleanup: %w", err)
		}
	}

	return nil
}

// asynqLogger adapts zap.Logger to asynq.Logger
type asynqLogger struct {
	logger *zap.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(fmt.Sprint(args...))
}

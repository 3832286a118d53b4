package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/logger"
)

// ExportQueue enqueues background exports
type ExportQueue interface {
	EnqueueExport(ctx context.Context, dataset domain.ExportDataset) (string, error)
}

// ExportStore lists exported files
type ExportStore interface {
	ListExports(ctx context.Context, dataset string) ([]domain.ExportFile, error)
}

// ExportService schedules CSV exports and lists the finished ones
type ExportService struct {
	queue ExportQueue
	store ExportStore
}

// NewExportService creates a new export service
func NewExportService(queue ExportQueue, store ExportStore) *ExportService {
	return &ExportService{queue: queue, store: store}
}

// Request enqueues the export of a dataset
func (s *ExportService) Request(ctx context.Context, dataset domain.ExportDataset) (*domain.ExportJob, error) {
	if !dataset.IsValid() {
		return nil, apperrors.Validation("unknown dataset").WithDetail("dataset", string(dataset))
	}

	taskID, err := s.queue.EnqueueExport(ctx, dataset)
	if err != nil {
		return nil, apperrors.Internal("failed to enqueue export").WithError(err)
	}

	logger.Info("export enqueued",
		zap.String("dataset", string(dataset)),
		zap.String("task_id", taskID),
	)
	return &domain.ExportJob{TaskID: taskID, Dataset: dataset}, nil
}

// List returns the exported files of a dataset, or of all datasets when empty
func (s *ExportService) List(ctx context.Context, dataset string) ([]domain.ExportFile, error) {
	if dataset != "" && !domain.ExportDataset(dataset).IsValid() {
		return nil, apperrors.Validation("unknown dataset").WithDetail("dataset", dataset)
	}
	return s.store.ListExports(ctx, dataset)
}

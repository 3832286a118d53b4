package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
)

// ExportPruner removes old exports of a dataset
type ExportPruner interface {
	Prune(ctx context.Context, dataset domain.ExportDataset, keep int) (int, error)
}

var exportDatasets = []domain.ExportDataset{
	domain.ExportDatasetCustomers,
	domain.ExportDatasetSuppliers,
	domain.ExportDatasetProducts,
	domain.ExportDatasetPurchases,
	domain.ExportDatasetOrders,
	domain.ExportDatasetExpenses,
}

// CleanupWorker keeps the export bucket bounded
type CleanupWorker struct {
	logger *zap.Logger
	store  ExportPruner
}

// NewCleanupWorker creates a new cleanup worker
func NewCleanupWorker(logger *zap.Logger, store ExportPruner) *CleanupWorker {
	return &CleanupWorker{logger: logger, store: store}
}

// ProcessTask prunes every dataset down to the newest payload.Keep exports.
// A failing dataset does not stop the others.
func (w *CleanupWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ExportCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if payload.Keep < 1 {
		return fmt.Errorf("keep must be at least 1, got %d: %w", payload.Keep, asynq.SkipRetry)
	}

	var firstErr error
	total := 0
	for _, dataset := range exportDatasets {
		removed, err := w.store.Prune(ctx, dataset, payload.Keep)
		total += removed
		if err != nil {
			w.logger.Error("failed to prune exports",
				zap.String("dataset", string(dataset)),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	w.logger.Info("export cleanup finished",
		zap.Int("keep", payload.Keep),
		zap.Int("removed", total),
	)
	return firstErr
}

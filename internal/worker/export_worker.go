package worker

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/metrics"
)

// RowSource streams the rows of a dataset
type RowSource interface {
	ExportRows(ctx context.Context, dataset domain.ExportDataset, header func([]string) error, fn func([]string) error) error
}

// ExportWriter stores finished exports
type ExportWriter interface {
	PutExport(ctx context.Context, dataset domain.ExportDataset, at time.Time, body []byte) (string, error)
}

// ExportWorker writes datasets to CSV files in object storage
type ExportWorker struct {
	logger *zap.Logger
	rows   RowSource
	store  ExportWriter
	now    func() time.Time
}

// NewExportWorker creates a new export worker
func NewExportWorker(logger *zap.Logger, rows RowSource, store ExportWriter) *ExportWorker {
	return &ExportWorker{
		logger: logger,
		rows:   rows,
		store:  store,
		now:    time.Now,
	}
}

// ProcessTask processes a dataset export task
func (w *ExportWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload DatasetExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if !payload.Dataset.IsValid() {
		return fmt.Errorf("unknown dataset %q: %w", payload.Dataset, asynq.SkipRetry)
	}

	w.logger.Info("processing dataset export", zap.String("dataset", string(payload.Dataset)))

	body, rows, err := w.render(ctx, payload.Dataset)
	if err != nil {
		return err
	}

	key, err := w.store.PutExport(ctx, payload.Dataset, w.now(), body)
	if err != nil {
		return err
	}

	metrics.RecordExportWritten(string(payload.Dataset))
	w.logger.Info("dataset export written",
		zap.String("dataset", string(payload.Dataset)),
		zap.String("key", key),
		zap.Int("rows", rows),
		zap.Int("bytes", len(body)),
	)
	return nil
}

func (w *ExportWorker) render(ctx context.Context, dataset domain.ExportDataset) ([]byte, int, error) {
	var buf bytes.Buffer
	out := csv.NewWriter(&buf)
	rows := 0

	err := w.rows.ExportRows(ctx, dataset,
		func(header []string) error { return out.Write(header) },
		func(record []string) error {
			rows++
			return out.Write(record)
		},
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to export %s: %w", dataset, err)
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return nil, 0, fmt.Errorf("failed to write %s csv: %w", dataset, err)
	}
	return buf.Bytes(), rows, nil
}

package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/metrics"
)

// StockReporter lists the alerts the scans look at
type StockReporter interface {
	LowStock(ctx context.Context) ([]domain.LowStockRow, error)
	OverdueExpenses(ctx context.Context) ([]domain.OverdueExpenseRow, error)
}

// ScanWorker runs the periodic low stock and overdue expense scans. Results
// are published as gauges and logged for the counter staff.
type ScanWorker struct {
	logger  *zap.Logger
	reports StockReporter
}

// NewScanWorker creates a new scan worker
func NewScanWorker(logger *zap.Logger, reports StockReporter) *ScanWorker {
	return &ScanWorker{logger: logger, reports: reports}
}

// ProcessLowStockScan updates the low stock gauge
func (w *ScanWorker) ProcessLowStockScan(ctx context.Context, _ *asynq.Task) error {
	rows, err := w.reports.LowStock(ctx)
	if err != nil {
		return err
	}

	metrics.SetLowStockProducts(len(rows))
	for _, row := range rows {
		w.logger.Warn("product at or below minimum stock",
			zap.String("sku", row.SKU),
			zap.String("description", row.Description),
			zap.Int("stock_current", row.StockCurrent),
			zap.Int("stock_minimum", row.StockMinimum),
			zap.String("supplier", row.Supplier),
		)
	}
	w.logger.Info("low stock scan finished", zap.Int("products", len(rows)))
	return nil
}

// ProcessOverdueExpenseScan updates the overdue expenses gauge
func (w *ScanWorker) ProcessOverdueExpenseScan(ctx context.Context, _ *asynq.Task) error {
	rows, err := w.reports.OverdueExpenses(ctx)
	if err != nil {
		return err
	}

	metrics.SetOverdueExpenses(len(rows))
	for _, row := range rows {
		w.logger.Warn("expense overdue",
			zap.Int64("expense_id", row.ID),
			zap.String("description", row.Description),
			zap.String("amount", row.Amount.StringFixed(2)),
			zap.Time("due_on", row.DueOn),
		)
	}
	w.logger.Info("overdue expense scan finished", zap.Int("expenses", len(rows)))
	return nil
}

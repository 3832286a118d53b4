package worker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/motopecasjacare/erp/internal/domain"
)

const (
	// TypeDatasetExport is the task type for a CSV export of one dataset
	TypeDatasetExport = "export:dataset"
	// TypeExportCleanup is the task type for pruning old exports
	TypeExportCleanup = "export:cleanup"
	// TypeLowStockScan is the task type for the periodic low stock scan
	TypeLowStockScan = "stock:low-scan"
	// TypeOverdueExpenseScan is the task type for the periodic overdue expense scan
	TypeOverdueExpenseScan = "expenses:overdue-scan"
)

// DatasetExportPayload is the payload for dataset export tasks
type DatasetExportPayload struct {
	Dataset     domain.ExportDataset `json:"dataset"`
	RequestedAt time.Time            `json:"requested_at"`
}

// NewDatasetExportTask creates a dataset export task
func NewDatasetExportTask(payload *DatasetExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dataset export payload: %w", err)
	}
	return asynq.NewTask(TypeDatasetExport, data, asynq.MaxRetry(3), asynq.Timeout(10*time.Minute)), nil
}

// ExportCleanupPayload is the payload for export cleanup tasks
type ExportCleanupPayload struct {
	// Keep is how many exports to keep per dataset
	Keep int `json:"keep"`
}

// NewExportCleanupTask creates an export cleanup task
func NewExportCleanupTask(payload *ExportCleanupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export cleanup payload: %w", err)
	}
	return asynq.NewTask(TypeExportCleanup, data, asynq.MaxRetry(1), asynq.Timeout(5*time.Minute)), nil
}

// NewLowStockScanTask creates a low stock scan task
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TypeLowStockScan, nil, asynq.MaxRetry(1), asynq.Timeout(time.Minute))
}

// NewOverdueExpenseScanTask creates an overdue expense scan task
func NewOverdueExpenseScanTask() *asynq.Task {
	return asynq.NewTask(TypeOverdueExpenseScan, nil, asynq.MaxRetry(1), asynq.Timeout(time.Minute))
}

package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"

	"github.com/motopecasjacare/erp/internal/domain"
)

type MockTaskEnqueuer struct {
	mock.Mock
}

func (m *MockTaskEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

// fakeRows serves fixed records for any dataset
type fakeRows struct {
	header  []string
	records [][]string
	err     error
}

func (f *fakeRows) ExportRows(_ context.Context, _ domain.ExportDataset, header func([]string) error, fn func([]string) error) error {
	if f.err != nil {
		return f.err
	}
	if err := header(f.header); err != nil {
		return err
	}
	for _, r := range f.records {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

type MockExportStore struct {
	mock.Mock
}

func (m *MockExportStore) PutExport(ctx context.Context, dataset domain.ExportDataset, at time.Time, body []byte) (string, error) {
	args := m.Called(ctx, dataset, at, body)
	return args.String(0), args.Error(1)
}

func (m *MockExportStore) Prune(ctx context.Context, dataset domain.ExportDataset, keep int) (int, error) {
	args := m.Called(ctx, dataset, keep)
	return args.Int(0), args.Error(1)
}

type MockStockReporter struct {
	mock.Mock
}

func (m *MockStockReporter) LowStock(ctx context.Context) ([]domain.LowStockRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LowStockRow), args.Error(1)
}

func (m *MockStockReporter) OverdueExpenses(ctx context.Context) ([]domain.OverdueExpenseRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueExpenseRow), args.Error(1)
}

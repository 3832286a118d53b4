package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/motopecasjacare/erp/internal/domain"
)

// TaskEnqueuer is the part of asynq.Client used to enqueue tasks
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer puts export tasks on the queue for the worker process
type Enqueuer struct {
	client TaskEnqueuer
	queue  string
	now    func() time.Time
}

// NewEnqueuer creates an enqueuer that uses queue for exports
func NewEnqueuer(client TaskEnqueuer, queue string) *Enqueuer {
	if queue == "" {
		queue = "low"
	}
	return &Enqueuer{client: client, queue: queue, now: time.Now}
}

// EnqueueExport enqueues the export of a dataset and returns the task ID
func (e *Enqueuer) EnqueueExport(ctx context.Context, dataset domain.ExportDataset) (string, error) {
	task, err := NewDatasetExportTask(&DatasetExportPayload{
		Dataset:     dataset,
		RequestedAt: e.now().UTC(),
	})
	if err != nil {
		return "", err
	}

	info, err := e.client.EnqueueContext(ctx, task, asynq.Queue(e.queue))
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s export: %w", dataset, err)
	}
	return info.ID, nil
}

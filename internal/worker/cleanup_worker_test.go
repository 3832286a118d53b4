package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCleanupWorker_ProcessTask(t *testing.T) {
	store := new(MockExportStore)
	for _, dataset := range exportDatasets {
		store.On("Prune", mock.Anything, dataset, 5).Return(1, nil).Once()
	}
	w := NewCleanupWorker(zap.NewNop(), store)

	task, err := NewExportCleanupTask(&ExportCleanupPayload{Keep: 5})
	require.NoError(t, err)

	require.NoError(t, w.ProcessTask(context.Background(), task))
	store.AssertExpectations(t)
}

func TestCleanupWorker_ProcessTask_ContinuesAfterFailure(t *testing.T) {
	store := new(MockExportStore)
	store.On("Prune", mock.Anything, exportDatasets[0], 2).Return(0, errors.New("access denied"))
	for _, dataset := range exportDatasets[1:] {
		store.On("Prune", mock.Anything, dataset, 2).Return(0, nil)
	}
	w := NewCleanupWorker(zap.NewNop(), store)

	task, err := NewExportCleanupTask(&ExportCleanupPayload{Keep: 2})
	require.NoError(t, err)

	err = w.ProcessTask(context.Background(), task)
	assert.EqualError(t, err, "access denied")
	store.AssertNumberOfCalls(t, "Prune", len(exportDatasets))
}

func TestCleanupWorker_ProcessTask_InvalidKeep(t *testing.T) {
	store := new(MockExportStore)
	w := NewCleanupWorker(zap.NewNop(), store)

	err := w.ProcessTask(context.Background(), asynq.NewTask(TypeExportCleanup, []byte(`{"keep":0}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	store.AssertNotCalled(t, "Prune", mock.Anything, mock.Anything, mock.Anything)
}

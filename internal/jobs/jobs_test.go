package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
)

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) CheckIntegrity(ctx context.Context) (*domain.IntegrityReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}

func TestNewIntegrityCheckTask(t *testing.T) {
	task, err := NewIntegrityCheckTask("cron")
	require.NoError(t, err)
	assert.Equal(t, TaskLedgerIntegrityCheck, task.Type())

	var payload IntegrityCheckPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "cron", payload.Trigger)
}

func TestIntegrityCheckJob_Clean(t *testing.T) {
	reporting := new(MockReportingService)
	reporting.On("CheckIntegrity", mock.Anything).
		Return(&domain.IntegrityReport{JournalEntriesChecked: 3, InvoicesChecked: 2}, nil).Once()

	task, err := NewIntegrityCheckTask("manual")
	require.NoError(t, err)

	job := NewIntegrityCheckJob(reporting, nil)
	assert.NoError(t, job.Handle(context.Background(), task))
	reporting.AssertExpectations(t)
}

func TestIntegrityCheckJob_IssuesSkipRetry(t *testing.T) {
	reporting := new(MockReportingService)
	reporting.On("CheckIntegrity", mock.Anything).Return(&domain.IntegrityReport{
		InvoicesChecked: 1,
		Issues:          []domain.IntegrityIssue{{Subject: "invoice", ID: "inv-1", Problem: "status mismatch"}},
	}, nil).Once()

	task, err := NewIntegrityCheckTask("cron")
	require.NoError(t, err)

	err = NewIntegrityCheckJob(reporting, nil).Handle(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntegrityViolation)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestIntegrityCheckJob_ScanErrorIsRetried(t *testing.T) {
	boom := errors.New("database unavailable")
	reporting := new(MockReportingService)
	reporting.On("CheckIntegrity", mock.Anything).Return(nil, boom).Once()

	task, err := NewIntegrityCheckTask("cron")
	require.NoError(t, err)

	err = NewIntegrityCheckJob(reporting, nil).Handle(context.Background(), task)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestIntegrityCheckJob_BadPayload(t *testing.T) {
	reporting := new(MockReportingService)
	task := asynq.NewTask(TaskLedgerIntegrityCheck, []byte("{not json"))

	err := NewIntegrityCheckJob(reporting, nil).Handle(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	reporting.AssertNotCalled(t, "CheckIntegrity", mock.Anything)
}

func TestNewWorker_RegistersCron(t *testing.T) {
	mr := miniredis.RunT(t)
	task, err := NewIntegrityCheckTask("cron")
	require.NoError(t, err)

	w, err := NewWorker(WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: mr.Addr()},
		Handlers:  []TaskHandler{{Type: TaskLedgerIntegrityCheck, Handler: NewIntegrityCheckJob(new(MockReportingService), nil).Handle}},
		Cron:      []CronRegistration{{Spec: "@every 1h", Task: task}},
	})
	require.NoError(t, err)
	assert.NotNil(t, w.scheduler)

	_, err = NewWorker(WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: mr.Addr()},
		Cron:      []CronRegistration{{Spec: "not a cron spec", Task: task}},
	})
	assert.Error(t, err)
}

func TestClient_EnqueueIntegrityCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer client.Close()

	info, err := client.EnqueueIntegrityCheck(context.Background(), "manual")
	require.NoError(t, err)
	assert.Equal(t, TaskLedgerIntegrityCheck, info.Type)
	assert.Equal(t, QueueDefault, info.Queue)
}

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
)

// ErrIntegrityViolation marks a scan that completed but found inconsistencies.
var ErrIntegrityViolation = errors.New("ledger integrity violation")

// IntegrityCheckJob runs the ledger integrity scan as an asynq handler.
type IntegrityCheckJob struct {
	Reporting portssvc.ReportingService
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewIntegrityCheckJob initialises the integrity check handler.
func NewIntegrityCheckJob(reporting portssvc.ReportingService, logger *slog.Logger) *IntegrityCheckJob {
	return &IntegrityCheckJob{
		Reporting: reporting,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the scan. Violations are not retried: the same ledger would fail again.
func (j *IntegrityCheckJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reporting == nil {
		return errors.New("integrity check: handler not configured")
	}
	var payload IntegrityCheckPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("integrity check payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	start := j.clock()
	logger := j.logger().With(slog.String("trigger", payload.Trigger))
	logger.Info("starting ledger integrity check")

	report, err := j.Reporting.CheckIntegrity(ctx)
	if err != nil {
		logger.Error("integrity check failed", slog.Any("error", err))
		return err
	}

	for _, issue := range report.Issues {
		logger.Error("ledger inconsistency detected",
			slog.String("subject", issue.Subject),
			slog.String("id", issue.ID),
			slog.String("problem", issue.Problem),
		)
	}

	logger.Info("ledger integrity check finished",
		slog.Int("journal_entries", report.JournalEntriesChecked),
		slog.Int("invoices", report.InvoicesChecked),
		slog.Int("issues", len(report.Issues)),
		slog.Duration("duration", j.clock().Sub(start)),
	)

	if !report.OK() {
		return fmt.Errorf("%w: %d issue(s): %w", ErrIntegrityViolation, len(report.Issues), asynq.SkipRetry)
	}
	return nil
}

func (j *IntegrityCheckJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

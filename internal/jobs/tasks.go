package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue every ledger task runs on.
	QueueDefault = "default"

	// TaskLedgerIntegrityCheck re-derives invoice balances and entry totals and logs disagreements.
	TaskLedgerIntegrityCheck = "ledger:integrity_check"
)

// IntegrityCheckPayload parameterises the integrity check task.
type IntegrityCheckPayload struct {
	// Trigger records who scheduled the run, e.g. "cron" or "manual".
	Trigger string `json:"trigger"`
}

// NewIntegrityCheckTask builds the asynq task for a ledger integrity scan.
func NewIntegrityCheckTask(trigger string) (*asynq.Task, error) {
	payload, err := json.Marshal(IntegrityCheckPayload{Trigger: trigger})
	if err != nil {
		return nil, fmt.Errorf("marshal integrity check payload: %w", err)
	}
	return asynq.NewTask(TaskLedgerIntegrityCheck, payload, asynq.Queue(QueueDefault)), nil
}

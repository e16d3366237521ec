package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPaymentsDueScan flags sales carrying overdue installments.
	TaskPaymentsDueScan = "payments:due_scan"
	// TaskNotificationsPrune drops feed entries past their retention.
	TaskNotificationsPrune = "notifications:prune"
)

// DueScanPayload parameterises an overdue installment scan. AsOf overrides
// the reference date (ISO format) and is empty for the scheduled runs.
type DueScanPayload struct {
	AsOf string `json:"asOf"`
}

// NewDueScanTask constructs an Asynq task for the overdue scan.
func NewDueScanTask(payload DueScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentsDueScan, data), nil
}

// PrunePayload parameterises a notification retention pass.
type PrunePayload struct {
	MaxAgeHours int `json:"maxAgeHours"`
}

// NewPruneTask constructs an Asynq task for the retention pass.
func NewPruneTask(payload PrunePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationsPrune, data), nil
}

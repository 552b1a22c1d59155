package jobs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue every cargodesk task runs on.
	QueueDefault = "default"
	// TaskFXRefresh refreshes the cached exchange rates.
	TaskFXRefresh = "fx:refresh"
	// TaskAuditPrune removes old audit log entries.
	TaskAuditPrune = "audit:prune"
)

// FXRefreshPayload selects the base currency to refresh. Empty means the
// configured base.
type FXRefreshPayload struct {
	Base string `json:"base,omitempty"`
}

// NewFXRefreshTask builds an fx:refresh task.
func NewFXRefreshTask(base string) (*asynq.Task, error) {
	data, err := json.Marshal(FXRefreshPayload{Base: strings.ToUpper(base)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFXRefresh, data, asynq.MaxRetry(2)), nil
}

// AuditPrunePayload configures how many days of audit history to keep.
type AuditPrunePayload struct {
	RetainDays int `json:"retain_days"`
}

// NewAuditPruneTask builds an audit:prune task.
func NewAuditPruneTask(retainDays int) (*asynq.Task, error) {
	if retainDays <= 0 {
		return nil, fmt.Errorf("jobs: retain days must be positive, got %d", retainDays)
	}
	data, err := json.Marshal(AuditPrunePayload{RetainDays: retainDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditPrune, data, asynq.MaxRetry(1)), nil
}

// NewTask builds a task by name with its default payload.
func NewTask(name string) (*asynq.Task, error) {
	switch name {
	case TaskFXRefresh:
		return NewFXRefreshTask("")
	case TaskAuditPrune:
		return NewAuditPruneTask(DefaultAuditRetainDays)
	default:
		return nil, fmt.Errorf("jobs: unsupported task %q", name)
	}
}

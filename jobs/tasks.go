// Package jobs holds the background work the gateway runs off the request
// path: periodic report snapshots and expired-session cleanup.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportSnapshot captures the backend report views into Postgres.
	TaskReportSnapshot = "report:snapshot"
	// TaskSessionSweep deletes expired rows from the session registry.
	TaskSessionSweep = "session:sweep"
	// TaskSnapshotPrune trims report snapshots past their retention window.
	TaskSnapshotPrune = "report:prune"
)

// ReportSnapshotPayload configures a snapshot run.
type ReportSnapshotPayload struct {
	Reason string `json:"reason"`
}

// NewReportSnapshotTask constructs an Asynq task.
func NewReportSnapshotTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(ReportSnapshotPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportSnapshot, data), nil
}

// SessionSweepPayload configures a sweep run.
type SessionSweepPayload struct {
	Before time.Time `json:"before"`
}

// NewSessionSweepTask constructs an Asynq task. A zero before means "now at
// execution time".
func NewSessionSweepTask(before time.Time) (*asynq.Task, error) {
	data, err := json.Marshal(SessionSweepPayload{Before: before})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionSweep, data), nil
}

// SnapshotPrunePayload configures a prune run.
type SnapshotPrunePayload struct {
	Retention time.Duration `json:"retention"`
}

// NewSnapshotPruneTask constructs an Asynq task.
func NewSnapshotPruneTask(retention time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(SnapshotPrunePayload{Retention: retention})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotPrune, data), nil
}

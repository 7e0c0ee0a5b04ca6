package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/marina-hms/marina/internal/reports"
)

// ReportSnapshotJob captures the backend report views into Postgres so the
// gateway can serve stale-but-present numbers when the backend is down.
type ReportSnapshotJob struct {
	service *reports.Service
	logger  *slog.Logger
}

// NewReportSnapshotJob constructs the job.
func NewReportSnapshotJob(service *reports.Service, logger *slog.Logger) *ReportSnapshotJob {
	return &ReportSnapshotJob{service: service, logger: logger}
}

// Handle processes TaskReportSnapshot tasks.
func (j *ReportSnapshotJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ReportSnapshotPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := j.service.TakeSnapshots(ctx); err != nil {
		j.logger.Error("report snapshot failed",
			slog.String("reason", payload.Reason),
			slog.Any("error", err))
		return err
	}
	j.logger.Info("report snapshot complete", slog.String("reason", payload.Reason))
	return nil
}

// SnapshotPruneJob trims report snapshots past their retention window.
type SnapshotPruneJob struct {
	service *reports.Service
	logger  *slog.Logger
}

// NewSnapshotPruneJob constructs the job.
func NewSnapshotPruneJob(service *reports.Service, logger *slog.Logger) *SnapshotPruneJob {
	return &SnapshotPruneJob{service: service, logger: logger}
}

// Handle processes TaskSnapshotPrune tasks.
func (j *SnapshotPruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SnapshotPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Retention <= 0 {
		return asynq.SkipRetry
	}
	removed, err := j.service.PruneSnapshots(ctx, payload.Retention)
	if err != nil {
		j.logger.Error("snapshot prune failed", slog.Any("error", err))
		return err
	}
	j.logger.Info("snapshot prune complete", slog.Int64("removed", removed))
	return nil
}

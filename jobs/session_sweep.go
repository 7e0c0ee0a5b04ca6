package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/marina-hms/marina/internal/auth"
)

// SessionSweepJob deletes expired rows from the session registry. Redis
// entries expire on their own TTL; the Postgres registry needs an explicit
// sweep.
type SessionSweepJob struct {
	repo   auth.Repository
	logger *slog.Logger
}

// NewSessionSweepJob constructs the job.
func NewSessionSweepJob(repo auth.Repository, logger *slog.Logger) *SessionSweepJob {
	return &SessionSweepJob{repo: repo, logger: logger}
}

// Handle processes TaskSessionSweep tasks.
func (j *SessionSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SessionSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	before := payload.Before
	if before.IsZero() {
		before = time.Now()
	}
	removed, err := j.repo.DeleteExpiredSessions(ctx, before)
	if err != nil {
		j.logger.Error("session sweep failed", slog.Any("error", err))
		return err
	}
	if removed > 0 {
		j.logger.Info("session sweep complete", slog.Int64("removed", removed))
	}
	return nil
}

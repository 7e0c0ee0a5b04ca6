package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRepo struct {
	before  time.Time
	removed int64
	err     error
}

func (r *recordingRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return nil
}

func (r *recordingRepo) DeleteSession(ctx context.Context, id string) error { return nil }

func (r *recordingRepo) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	r.before = before
	return r.removed, r.err
}

func TestSessionSweepUsesPayloadCutoff(t *testing.T) {
	repo := &recordingRepo{removed: 3}
	job := NewSessionSweepJob(repo, slog.New(slog.DiscardHandler))

	cutoff := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)
	task, err := NewSessionSweepTask(cutoff)
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.True(t, repo.before.Equal(cutoff))
}

func TestSessionSweepZeroCutoffMeansNow(t *testing.T) {
	repo := &recordingRepo{}
	job := NewSessionSweepJob(repo, slog.New(slog.DiscardHandler))

	task, err := NewSessionSweepTask(time.Time{})
	require.NoError(t, err)

	before := time.Now()
	require.NoError(t, job.Handle(context.Background(), task))
	assert.False(t, repo.before.Before(before), "zero cutoff should resolve to execution time")
}

func TestSessionSweepBadPayloadSkipsRetry(t *testing.T) {
	job := NewSessionSweepJob(&recordingRepo{}, slog.New(slog.DiscardHandler))

	err := job.Handle(context.Background(), asynq.NewTask(TaskSessionSweep, []byte("{bozuk")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestSessionSweepPropagatesRepoError(t *testing.T) {
	repo := &recordingRepo{err: errors.New("postgres down")}
	job := NewSessionSweepJob(repo, slog.New(slog.DiscardHandler))

	task, err := NewSessionSweepTask(time.Now())
	require.NoError(t, err)
	assert.Error(t, job.Handle(context.Background(), task))
}

package dashboard

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marina-hms/marina/internal/platform/cache"
)

type stubRepo struct {
	statsCalls  atomic.Int32
	statsErr    error
	eventsDelay time.Duration
}

func (s *stubRepo) Stats(ctx context.Context) (*Stats, error) {
	s.statsCalls.Add(1)
	if s.statsErr != nil {
		return nil, s.statsErr
	}
	return &Stats{TotalRooms: 20, OccupiedRooms: 12, AvailableRooms: 8, OccupancyRate: 60}, nil
}

func (s *stubRepo) ActiveReservations(ctx context.Context) ([]ActiveReservation, error) {
	return []ActiveReservation{{ID: 1, CustomerName: "Işıl Yılmaz", Room: "101", Status: "aktif"}}, nil
}

func (s *stubRepo) TodaysEvents(ctx context.Context) ([]Event, error) {
	if s.eventsDelay > 0 {
		select {
		case <-time.After(s.eventsDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, nil
}

func TestGetSummaryCombinesBlocks(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil)

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 60.0, summary.Stats.OccupancyRate)
	require.Len(t, summary.ActiveReservations, 1)
	assert.NotNil(t, summary.TodaysEvents, "nil slices must serialize as empty arrays")
}

func TestGetSummaryPropagatesFailure(t *testing.T) {
	repo := &stubRepo{statsErr: fmt.Errorf("dashboard: backend refused stats")}
	svc := NewService(repo, nil)

	_, err := svc.GetSummary(context.Background())
	assert.Error(t, err)
}

func TestGetSummaryUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &stubRepo{}
	svc := NewService(repo, cache.NewJSONCache(client, time.Minute))

	_, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	_, err = svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), repo.statsCalls.Load(), "second summary should come from cache")
}

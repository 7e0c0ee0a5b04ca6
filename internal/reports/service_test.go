package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/platform/upstream"
)

type stubRepo struct {
	monthly      []MonthlyRow
	reservations []ReservationRow
	err          error
}

func (s stubRepo) Monthly(ctx context.Context) ([]MonthlyRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.monthly, nil
}

func (s stubRepo) Reservations(ctx context.Context) ([]ReservationRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reservations, nil
}

type memoryStore struct {
	snapshots map[string][]Snapshot
	nextID    int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: make(map[string][]Snapshot), nextID: 1}
}

func (m *memoryStore) Save(ctx context.Context, kind string, payload []byte) (int64, error) {
	id := m.nextID
	m.nextID++
	m.snapshots[kind] = append(m.snapshots[kind], Snapshot{
		ID:      id,
		Kind:    kind,
		Payload: json.RawMessage(payload),
		TakenAt: time.Now(),
	})
	return id, nil
}

func (m *memoryStore) Latest(ctx context.Context, kind string) (*Snapshot, error) {
	snaps := m.snapshots[kind]
	if len(snaps) == 0 {
		return nil, httpx.ErrNotFound
	}
	latest := snaps[len(snaps)-1]
	return &latest, nil
}

func (m *memoryStore) ListSince(ctx context.Context, kind string, cutoff time.Time) ([]Snapshot, error) {
	var out []Snapshot
	for _, snap := range m.snapshots[kind] {
		if snap.TakenAt.After(cutoff) {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (m *memoryStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	var pruned int64
	for kind, snaps := range m.snapshots {
		kept := snaps[:0]
		for _, snap := range snaps {
			if snap.TakenAt.Before(cutoff) {
				pruned++
				continue
			}
			kept = append(kept, snap)
		}
		m.snapshots[kind] = kept
	}
	return pruned, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func unreachable() error {
	return fmt.Errorf("%w: connection refused", httpx.ErrUnavailable)
}

func TestMonthlyReportLive(t *testing.T) {
	repo := stubRepo{monthly: []MonthlyRow{{Period: "2026-07", TotalRevenue: 42000, TxCount: 17, Method: "Nakit"}}}
	svc := NewService(discardLogger(), repo, newMemoryStore())

	rows, err := svc.MonthlyReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-07", rows[0].Period)
}

func TestMonthlyReportFallsBackToSnapshot(t *testing.T) {
	store := newMemoryStore()
	live := stubRepo{monthly: []MonthlyRow{{Period: "2026-07", TotalRevenue: 42000, TxCount: 17}}}
	svc := NewService(discardLogger(), live, store)
	require.NoError(t, svc.TakeSnapshots(context.Background()))

	down := NewService(discardLogger(), stubRepo{err: unreachable()}, store)
	rows, err := down.MonthlyReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 42000.0, rows[0].TotalRevenue)
}

func TestMonthlyReportNoSnapshotSurfacesOutage(t *testing.T) {
	svc := NewService(discardLogger(), stubRepo{err: unreachable()}, newMemoryStore())
	_, err := svc.MonthlyReport(context.Background())
	assert.True(t, upstream.IsUnreachable(err))
}

func TestMonthlyReportBackendErrorIsNotMasked(t *testing.T) {
	store := newMemoryStore()
	live := stubRepo{monthly: []MonthlyRow{{Period: "2026-07"}}}
	require.NoError(t, NewService(discardLogger(), live, store).TakeSnapshots(context.Background()))

	denied := fmt.Errorf("%w: yetkiniz yok", httpx.ErrForbidden)
	svc := NewService(discardLogger(), stubRepo{err: denied}, store)
	_, err := svc.MonthlyReport(context.Background())
	assert.True(t, errors.Is(err, httpx.ErrForbidden), "non-transport errors must not serve stale data")
}

func TestReservationReportFallsBackToSnapshot(t *testing.T) {
	store := newMemoryStore()
	live := stubRepo{reservations: []ReservationRow{{ReservationID: 1, RoomNumber: "101", TotalPrice: 600}}}
	require.NoError(t, NewService(discardLogger(), live, store).TakeSnapshots(context.Background()))

	down := NewService(discardLogger(), stubRepo{err: unreachable()}, store)
	rows, err := down.ReservationReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "101", rows[0].RoomNumber)
}

func TestSnapshotHistoryValidatesKind(t *testing.T) {
	svc := NewService(discardLogger(), stubRepo{}, newMemoryStore())
	_, err := svc.SnapshotHistory(context.Background(), "weekly", time.Hour, 1, 20)
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	result, err := svc.SnapshotHistory(context.Background(), KindMonthly, time.Hour, 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Equal(t, 0, result.Pagination.Total)
}

func TestSnapshotHistoryPaginates(t *testing.T) {
	store := newMemoryStore()
	live := stubRepo{monthly: []MonthlyRow{{Period: "2026-07"}}}
	svc := NewService(discardLogger(), live, store)
	for i := 0; i < 3; i++ {
		_, err := store.Save(context.Background(), KindMonthly, []byte(`[]`))
		require.NoError(t, err)
	}

	first, err := svc.SnapshotHistory(context.Background(), KindMonthly, time.Hour, 1, 2)
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, 3, first.Pagination.Total)
	assert.Equal(t, 2, first.Pagination.TotalPages)

	second, err := svc.SnapshotHistory(context.Background(), KindMonthly, time.Hour, 2, 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
	assert.Equal(t, 2, second.Pagination.Page)

	// pages past the end are empty, not an error
	beyond, err := svc.SnapshotHistory(context.Background(), KindMonthly, time.Hour, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
}

func TestPruneSnapshots(t *testing.T) {
	store := newMemoryStore()
	live := stubRepo{monthly: []MonthlyRow{{Period: "2026-07"}}}
	svc := NewService(discardLogger(), live, store)
	require.NoError(t, svc.TakeSnapshots(context.Background()))

	pruned, err := svc.PruneSnapshots(context.Background(), -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)
}

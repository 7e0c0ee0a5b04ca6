package reports

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for report views.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// Monthly fetches the monthly revenue view.
func (r *Repository) Monthly(ctx context.Context) ([]MonthlyRow, error) {
	var rows []MonthlyRow
	if err := r.api.Get(ctx, "/reports/monthly", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Reservations fetches the reservation detail view.
func (r *Repository) Reservations(ctx context.Context) ([]ReservationRow, error) {
	var rows []ReservationRow
	if err := r.api.Get(ctx, "/reports/reservations", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SnapshotStore persists report copies in Postgres.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

// NewSnapshotStore constructs a snapshot store.
func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Save stores one report payload under its kind.
func (s *SnapshotStore) Save(ctx context.Context, kind string, payload []byte) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO report_snapshots (kind, payload, taken_at) VALUES ($1, $2, NOW()) RETURNING snapshot_id`,
		kind, payload).Scan(&id)
	return id, err
}

// Latest returns the most recent snapshot of a kind.
func (s *SnapshotStore) Latest(ctx context.Context, kind string) (*Snapshot, error) {
	var snap Snapshot
	err := s.pool.QueryRow(ctx,
		`SELECT snapshot_id, kind, payload, taken_at FROM report_snapshots WHERE kind = $1 ORDER BY taken_at DESC LIMIT 1`,
		kind).Scan(&snap.ID, &snap.Kind, &snap.Payload, &snap.TakenAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListSince returns snapshots of a kind taken after the cutoff, newest first.
func (s *SnapshotStore) ListSince(ctx context.Context, kind string, cutoff time.Time) ([]Snapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT snapshot_id, kind, payload, taken_at FROM report_snapshots WHERE kind = $1 AND taken_at >= $2 ORDER BY taken_at DESC`,
		kind, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Kind, &snap.Payload, &snap.TakenAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Prune removes snapshots older than the cutoff and reports how many rows
// went away.
func (s *SnapshotStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM report_snapshots WHERE taken_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/platform/upstream"
	"github.com/marina-hms/marina/internal/shared"
)

// RepositoryPort defines backend access for report views.
type RepositoryPort interface {
	Monthly(ctx context.Context) ([]MonthlyRow, error)
	Reservations(ctx context.Context) ([]ReservationRow, error)
}

// SnapshotPort defines snapshot persistence.
type SnapshotPort interface {
	Save(ctx context.Context, kind string, payload []byte) (int64, error)
	Latest(ctx context.Context, kind string) (*Snapshot, error)
	ListSince(ctx context.Context, kind string, cutoff time.Time) ([]Snapshot, error)
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service handles report retrieval and snapshotting.
type Service struct {
	logger *slog.Logger
	repo   RepositoryPort
	store  SnapshotPort
}

// NewService builds Service instance.
func NewService(logger *slog.Logger, repo RepositoryPort, store SnapshotPort) *Service {
	return &Service{logger: logger, repo: repo, store: store}
}

// MonthlyReport fetches the live monthly revenue view. If the backend is
// unreachable the latest stored snapshot stands in, flagged stale by its
// taken_at timestamp.
func (s *Service) MonthlyReport(ctx context.Context) ([]MonthlyRow, error) {
	rows, err := s.repo.Monthly(ctx)
	if err == nil {
		return rows, nil
	}
	if !upstream.IsUnreachable(err) || s.store == nil {
		return nil, err
	}
	snap, snapErr := s.store.Latest(ctx, KindMonthly)
	if snapErr != nil {
		return nil, err
	}
	s.logger.Warn("serving monthly report from snapshot",
		slog.Time("taken_at", snap.TakenAt))
	var stale []MonthlyRow
	if unmarshalErr := json.Unmarshal(snap.Payload, &stale); unmarshalErr != nil {
		return nil, err
	}
	return stale, nil
}

// ReservationReport fetches the live reservation detail view with the same
// snapshot fallback as the monthly report.
func (s *Service) ReservationReport(ctx context.Context) ([]ReservationRow, error) {
	rows, err := s.repo.Reservations(ctx)
	if err == nil {
		return rows, nil
	}
	if !upstream.IsUnreachable(err) || s.store == nil {
		return nil, err
	}
	snap, snapErr := s.store.Latest(ctx, KindReservations)
	if snapErr != nil {
		return nil, err
	}
	s.logger.Warn("serving reservation report from snapshot",
		slog.Time("taken_at", snap.TakenAt))
	var stale []ReservationRow
	if unmarshalErr := json.Unmarshal(snap.Payload, &stale); unmarshalErr != nil {
		return nil, err
	}
	return stale, nil
}

// TakeSnapshots captures both report views into Postgres. Called by the
// scheduled snapshot job and by the manual snapshot endpoint.
func (s *Service) TakeSnapshots(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("reports: snapshot store not configured")
	}
	monthly, err := s.repo.Monthly(ctx)
	if err != nil {
		return fmt.Errorf("reports: fetch monthly: %w", err)
	}
	payload, err := json.Marshal(monthly)
	if err != nil {
		return err
	}
	if _, err := s.store.Save(ctx, KindMonthly, payload); err != nil {
		return fmt.Errorf("reports: save monthly snapshot: %w", err)
	}

	reservations, err := s.repo.Reservations(ctx)
	if err != nil {
		return fmt.Errorf("reports: fetch reservations: %w", err)
	}
	payload, err = json.Marshal(reservations)
	if err != nil {
		return err
	}
	if _, err := s.store.Save(ctx, KindReservations, payload); err != nil {
		return fmt.Errorf("reports: save reservation snapshot: %w", err)
	}

	s.logger.Info("report snapshots captured",
		slog.Int("monthly_rows", len(monthly)),
		slog.Int("reservation_rows", len(reservations)))
	return nil
}

// SnapshotHistory lists stored snapshots of a kind from the past duration,
// one page at a time.
func (s *Service) SnapshotHistory(ctx context.Context, kind string, since time.Duration, page, perPage int) (SnapshotPage, error) {
	if kind != KindMonthly && kind != KindReservations {
		return SnapshotPage{}, fmt.Errorf("%w: bilinmeyen rapor türü: %s", httpx.ErrValidation, kind)
	}
	if s.store == nil {
		return SnapshotPage{}, httpx.ErrNotFound
	}
	snaps, err := s.store.ListSince(ctx, kind, time.Now().Add(-since))
	if err != nil {
		return SnapshotPage{}, err
	}
	if snaps == nil {
		snaps = []Snapshot{}
	}

	meta := shared.NewPagination(page, perPage, len(snaps))
	start := (meta.Page - 1) * meta.PerPage
	if start > len(snaps) {
		start = len(snaps)
	}
	end := start + meta.PerPage
	if end > len(snaps) {
		end = len(snaps)
	}
	return SnapshotPage{Items: snaps[start:end], Pagination: meta}, nil
}

// PruneSnapshots deletes snapshots older than the retention window.
func (s *Service) PruneSnapshots(ctx context.Context, retention time.Duration) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	return s.store.Prune(ctx, time.Now().Add(-retention))
}

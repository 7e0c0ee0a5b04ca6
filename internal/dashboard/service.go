package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marina-hms/marina/internal/platform/cache"
)

const summaryCacheKey = "dashboard:summary"

// RepositoryPort defines backend access for dashboard aggregates.
type RepositoryPort interface {
	Stats(ctx context.Context) (*Stats, error)
	ActiveReservations(ctx context.Context) ([]ActiveReservation, error)
	TodaysEvents(ctx context.Context) ([]Event, error)
}

// Service handles dashboard aggregation.
type Service struct {
	repo  RepositoryPort
	cache *cache.JSONCache
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, summaryCache *cache.JSONCache) *Service {
	return &Service{repo: repo, cache: summaryCache}
}

// GetStats returns the headline occupancy block.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

// GetActiveReservations returns the pending/active booking list.
func (s *Service) GetActiveReservations(ctx context.Context) ([]ActiveReservation, error) {
	reservations, err := s.repo.ActiveReservations(ctx)
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []ActiveReservation{}
	}
	return reservations, nil
}

// GetTodaysEvents returns today's check-in/check-out events.
func (s *Service) GetTodaysEvents(ctx context.Context) ([]Event, error) {
	events, err := s.repo.TodaysEvents(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

// GetSummary fans the three dashboard calls out concurrently and combines
// them. A short cache keeps the landing page from hammering the backend when
// several staff monitors sit on it.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	var summary Summary
	err := s.cache.FetchJSON(ctx, summaryCacheKey, &summary, func(ctx context.Context) (any, error) {
		return s.buildSummary(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Service) buildSummary(ctx context.Context) (*Summary, error) {
	var summary Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.repo.Stats(gctx)
		if err != nil {
			return err
		}
		summary.Stats = *stats
		return nil
	})
	g.Go(func() error {
		reservations, err := s.repo.ActiveReservations(gctx)
		if err != nil {
			return err
		}
		if reservations == nil {
			reservations = []ActiveReservation{}
		}
		summary.ActiveReservations = reservations
		return nil
	})
	g.Go(func() error {
		events, err := s.repo.TodaysEvents(gctx)
		if err != nil {
			return err
		}
		if events == nil {
			events = []Event{}
		}
		summary.TodaysEvents = events
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

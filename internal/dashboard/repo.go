package dashboard

import (
	"context"
	"fmt"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for dashboard aggregates.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// Stats fetches the headline occupancy block.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var resp envelope[Stats]
	if err := r.api.Get(ctx, "/dashboard/stats", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("dashboard: backend refused stats: %s", resp.Error)
	}
	return &resp.Data, nil
}

// ActiveReservations fetches the pending/active booking list.
func (r *Repository) ActiveReservations(ctx context.Context) ([]ActiveReservation, error) {
	var resp envelope[[]ActiveReservation]
	if err := r.api.Get(ctx, "/dashboard/active-reservations", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("dashboard: backend refused active reservations: %s", resp.Error)
	}
	return resp.Data, nil
}

// TodaysEvents fetches today's check-in/check-out events.
func (r *Repository) TodaysEvents(ctx context.Context) ([]Event, error) {
	var resp envelope[[]Event]
	if err := r.api.Get(ctx, "/dashboard/todays-events", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("dashboard: backend refused todays events: %s", resp.Error)
	}
	return resp.Data, nil
}

package reservations

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for reservations.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// List returns all reservations, newest first.
func (r *Repository) List(ctx context.Context) ([]Reservation, error) {
	var reservations []Reservation
	if err := r.api.Get(ctx, "/reservations/", nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetByID fetches a single reservation.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	var reservation Reservation
	if err := r.api.Get(ctx, fmt.Sprintf("/reservations/%d/", id), nil, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Create books a reservation.
func (r *Repository) Create(ctx context.Context, input ReservationInput) (*Reservation, error) {
	var reservation Reservation
	if err := r.api.Post(ctx, "/reservations/", input, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Update replaces a reservation record.
func (r *Repository) Update(ctx context.Context, id int64, input ReservationInput) (*Reservation, error) {
	var reservation Reservation
	if err := r.api.Put(ctx, fmt.Sprintf("/reservations/%d/", id), input, &reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Delete removes a reservation.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/reservations/%d/", id), nil)
}

// Options returns the selectable status enums.
func (r *Repository) Options(ctx context.Context) (*Options, error) {
	var opts Options
	if err := r.api.Get(ctx, "/reservations/options", nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// CheckAvailability asks the backend whether the room is free for the date
// range. excludeID skips an existing reservation when editing; pass 0 for a
// new booking.
func (r *Repository) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut string, excludeID int64) (*Availability, error) {
	query := url.Values{}
	query.Set("oda_id", strconv.FormatInt(roomID, 10))
	query.Set("giris_tarihi", checkIn)
	query.Set("cikis_tarihi", checkOut)
	if excludeID > 0 {
		query.Set("exclude_id", strconv.FormatInt(excludeID, 10))
	}
	var availability Availability
	if err := r.api.Get(ctx, "/reservations/check-availability", query, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

// Review fetches the stay review for a reservation.
func (r *Repository) Review(ctx context.Context, id int64) (*Review, error) {
	var review Review
	if err := r.api.Get(ctx, fmt.Sprintf("/reservations/%d/degerlendirme", id), nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// CreateReview attaches a stay review to a reservation.
func (r *Repository) CreateReview(ctx context.Context, id int64, input ReviewInput) (*Review, error) {
	var review Review
	if err := r.api.Post(ctx, fmt.Sprintf("/reservations/%d/degerlendirme", id), input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateReview replaces the stay review of a reservation.
func (r *Repository) UpdateReview(ctx context.Context, id int64, input ReviewInput) (*Review, error) {
	var review Review
	if err := r.api.Put(ctx, fmt.Sprintf("/reservations/%d/degerlendirme", id), input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

package rooms

import (
	"context"
	"fmt"
	"net/url"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for rooms. One method per REST
// endpoint, nothing else.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// List returns all rooms.
func (r *Repository) List(ctx context.Context) ([]Room, error) {
	var rooms []Room
	if err := r.api.Get(ctx, "/rooms/", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetByID fetches a single room.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Room, error) {
	var room Room
	if err := r.api.Get(ctx, fmt.Sprintf("/rooms/%d/", id), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Create adds a room.
func (r *Repository) Create(ctx context.Context, input RoomInput) (*Room, error) {
	var room Room
	if err := r.api.Post(ctx, "/rooms/", input, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Update replaces a room record.
func (r *Repository) Update(ctx context.Context, id int64, input RoomInput) (*Room, error) {
	var room Room
	if err := r.api.Put(ctx, fmt.Sprintf("/rooms/%d/", id), input, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Delete removes a room.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/rooms/%d/", id), nil)
}

// UpdateStatus changes only the room state.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.api.Put(ctx, fmt.Sprintf("/rooms/%d/status/", id), map[string]string{"durum": status}, nil)
}

// Options returns the selectable type and status enums.
func (r *Repository) Options(ctx context.Context) (*Options, error) {
	var opts Options
	if err := r.api.Get(ctx, "/rooms/options", nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Available lists rooms free for a date range.
func (r *Repository) Available(ctx context.Context, checkIn, checkOut string) ([]Room, error) {
	query := url.Values{}
	if checkIn != "" {
		query.Set("giris_tarihi", checkIn)
	}
	if checkOut != "" {
		query.Set("cikis_tarihi", checkOut)
	}
	var rooms []Room
	if err := r.api.Get(ctx, "/rooms/available/", query, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Features lists room amenities.
func (r *Repository) Features(ctx context.Context, id int64) ([]Feature, error) {
	var features []Feature
	if err := r.api.Get(ctx, fmt.Sprintf("/odalar/%d/ozellikler", id), nil, &features); err != nil {
		return nil, err
	}
	return features, nil
}

// Images lists room photos.
func (r *Repository) Images(ctx context.Context, id int64) ([]Image, error) {
	var images []Image
	if err := r.api.Get(ctx, fmt.Sprintf("/odalar/%d/resimler", id), nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

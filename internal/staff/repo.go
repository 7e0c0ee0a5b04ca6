package staff

import (
	"context"
	"fmt"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for personnel.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// List returns all personnel.
func (r *Repository) List(ctx context.Context) ([]Staff, error) {
	var staff []Staff
	if err := r.api.Get(ctx, "/personel/", nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// GetByID fetches a single personnel record.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Staff, error) {
	var member Staff
	if err := r.api.Get(ctx, fmt.Sprintf("/personel/%d", id), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Create adds a personnel record.
func (r *Repository) Create(ctx context.Context, input StaffInput) (*Staff, error) {
	var member Staff
	if err := r.api.Post(ctx, "/personel/", input, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Update replaces a personnel record.
func (r *Repository) Update(ctx context.Context, id int64, input StaffInput) (*Staff, error) {
	var member Staff
	if err := r.api.Put(ctx, fmt.Sprintf("/personel/%d", id), input, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Delete removes a personnel record.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/personel/%d", id), nil)
}

package stock

import (
	"context"
	"fmt"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for warehouse stock.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// List returns all stock items, ordered by name.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := r.api.Get(ctx, "/stock/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID fetches a single stock item.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Item, error) {
	var item Item
	if err := r.api.Get(ctx, fmt.Sprintf("/stock/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create adds a stock item.
func (r *Repository) Create(ctx context.Context, input ItemInput) (*Item, error) {
	var item Item
	if err := r.api.Post(ctx, "/stock/", input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces a stock item.
func (r *Repository) Update(ctx context.Context, id int64, input ItemInput) (*Item, error) {
	var item Item
	if err := r.api.Put(ctx, fmt.Sprintf("/stock/%d", id), input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a stock item.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/stock/%d", id), nil)
}

// Increase adds quantity to an item.
func (r *Repository) Increase(ctx context.Context, adj Adjustment) (*AdjustmentResult, error) {
	var result AdjustmentResult
	if err := r.api.Post(ctx, "/stock/increase", adj, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Decrease removes quantity from an item. The backend rejects moves that
// would take the level below zero.
func (r *Repository) Decrease(ctx context.Context, adj Adjustment) (*AdjustmentResult, error) {
	var result AdjustmentResult
	if err := r.api.Post(ctx, "/stock/decrease", adj, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

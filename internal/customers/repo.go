package customers

import (
	"context"
	"fmt"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for customers.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// List returns all customers.
func (r *Repository) List(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := r.api.Get(ctx, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetByID fetches a single customer.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	if err := r.api.Get(ctx, fmt.Sprintf("/customers/%d", id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create adds a customer.
func (r *Repository) Create(ctx context.Context, input CustomerInput) (*Customer, error) {
	var customer Customer
	if err := r.api.Post(ctx, "/customers", input, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update replaces a customer record.
func (r *Repository) Update(ctx context.Context, id int64, input CustomerInput) (*Customer, error) {
	var customer Customer
	if err := r.api.Put(ctx, fmt.Sprintf("/customers/%d", id), input, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Delete removes a customer.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/customers/%d", id), nil)
}

// Expenses lists service charges across the customer's reservations.
func (r *Repository) Expenses(ctx context.Context, id int64) (*ExpenseSummary, error) {
	var summary ExpenseSummary
	if err := r.api.Get(ctx, fmt.Sprintf("/customers/%d/harcamalar", id), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Reviews lists stay reviews across the customer's reservations.
func (r *Repository) Reviews(ctx context.Context, id int64) (*ReviewSummary, error) {
	var summary ReviewSummary
	if err := r.api.Get(ctx, fmt.Sprintf("/customers/%d/degerlendirme", id), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

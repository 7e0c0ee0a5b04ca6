package services

import (
	"context"
	"fmt"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for extra services.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// List returns all extra services.
func (r *Repository) List(ctx context.Context) ([]Service, error) {
	var services []Service
	if err := r.api.Get(ctx, "/hizmet/", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetByID fetches a single service.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Service, error) {
	var service Service
	if err := r.api.Get(ctx, fmt.Sprintf("/hizmet/%d", id), nil, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// Create adds a service.
func (r *Repository) Create(ctx context.Context, input ServiceInput) (*Service, error) {
	var service Service
	if err := r.api.Post(ctx, "/hizmet/", input, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// Update replaces a service record.
func (r *Repository) Update(ctx context.Context, id int64, input ServiceInput) (*Service, error) {
	var service Service
	if err := r.api.Put(ctx, fmt.Sprintf("/hizmet/%d", id), input, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// Delete removes a service. The backend rejects deletion while orders
// reference it.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/hizmet/%d", id), nil)
}

// Orders lists all service orders.
func (r *Repository) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.api.Get(ctx, "/hizmet/harcama", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder charges a service against a reservation.
func (r *Repository) CreateOrder(ctx context.Context, input OrderInput) (*Order, error) {
	var order Order
	if err := r.api.Post(ctx, "/hizmet/harcama", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to a new fulfilment state.
func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*Order, error) {
	var order Order
	if err := r.api.Put(ctx, fmt.Sprintf("/hizmet/harcama/%d/durum", orderID), map[string]string{"durum": status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// StockLinks lists warehouse items tied to services.
func (r *Repository) StockLinks(ctx context.Context) ([]StockLink, error) {
	var links []StockLink
	if err := r.api.Get(ctx, "/hizmet/stok", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

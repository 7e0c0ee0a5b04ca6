package payments

import (
	"context"
	"fmt"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository is the backend resource wrapper for payments.
type Repository struct {
	api *upstream.Client
}

// NewRepository constructs a repository.
func NewRepository(api *upstream.Client) *Repository {
	return &Repository{api: api}
}

// List returns all payments.
func (r *Repository) List(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	if err := r.api.Get(ctx, "/odeme/", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// GetByID fetches a single payment.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	var payment Payment
	if err := r.api.Get(ctx, fmt.Sprintf("/odeme/%d", id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create records a payment against a reservation.
func (r *Repository) Create(ctx context.Context, input PaymentInput) (*Payment, error) {
	var payment Payment
	if err := r.api.Post(ctx, "/odeme/", input, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update replaces a payment record.
func (r *Repository) Update(ctx context.Context, id int64, input PaymentInput) (*Payment, error) {
	var payment Payment
	if err := r.api.Put(ctx, fmt.Sprintf("/odeme/%d", id), input, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Delete removes a payment.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/odeme/%d", id), nil)
}

// ByCustomer lists payments across a customer's reservations.
func (r *Repository) ByCustomer(ctx context.Context, customerID int64) ([]Payment, error) {
	var payments []Payment
	if err := r.api.Get(ctx, fmt.Sprintf("/odeme/customer/%d", customerID), nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ByReservation lists payments for a single reservation.
func (r *Repository) ByReservation(ctx context.Context, reservationID int64) ([]Payment, error) {
	var payments []Payment
	if err := r.api.Get(ctx, fmt.Sprintf("/odeme/reservation/%d", reservationID), nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

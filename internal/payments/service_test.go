package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marina-hms/marina/internal/platform/httpx"
)

type stubRepo struct {
	payments []Payment
}

func (s *stubRepo) List(ctx context.Context) ([]Payment, error) { return s.payments, nil }

func (s *stubRepo) GetByID(ctx context.Context, id int64) (*Payment, error) {
	for _, p := range s.payments {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, input PaymentInput) (*Payment, error) {
	p := Payment{ID: int64(len(s.payments) + 1), ReservationID: input.ReservationID, Amount: input.Amount, Method: input.Method}
	s.payments = append(s.payments, p)
	return &p, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, input PaymentInput) (*Payment, error) {
	return &Payment{ID: id, ReservationID: input.ReservationID, Amount: input.Amount, Method: input.Method}, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error { return nil }

func (s *stubRepo) ByCustomer(ctx context.Context, customerID int64) ([]Payment, error) {
	return s.payments, nil
}

func (s *stubRepo) ByReservation(ctx context.Context, reservationID int64) ([]Payment, error) {
	var out []Payment
	for _, p := range s.payments {
		if p.ReservationID == reservationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestValidMethod(t *testing.T) {
	for _, method := range []string{MethodCash, MethodCreditCard, MethodTransfer, MethodVirtualPOS} {
		assert.True(t, ValidMethod(method), method)
	}
	assert.False(t, ValidMethod("Çek"))
	assert.False(t, ValidMethod(""))
}

func TestCreatePaymentValidatesMethod(t *testing.T) {
	svc := NewService(&stubRepo{}, nil)

	_, err := svc.CreatePayment(context.Background(), PaymentInput{ReservationID: 1, Amount: 100, Method: "Takas"}, 1)
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	payment, err := svc.CreatePayment(context.Background(), PaymentInput{ReservationID: 1, Amount: 100, Method: MethodCash}, 1)
	require.NoError(t, err)
	assert.Equal(t, MethodCash, payment.Method)
}

func TestListPaymentsFilter(t *testing.T) {
	repo := &stubRepo{payments: []Payment{
		{ID: 1, ReservationID: 10, Amount: 600, Method: MethodCash},
		{ID: 2, ReservationID: 11, Amount: 450, Method: MethodCreditCard},
	}}
	svc := NewService(repo, nil)

	cash, err := svc.ListPayments(context.Background(), ListFilter{Method: MethodCash})
	require.NoError(t, err)
	require.Len(t, cash, 1)
	assert.Equal(t, int64(1), cash[0].ID)

	byReservation, err := svc.ListPayments(context.Background(), ListFilter{ReservationID: 11})
	require.NoError(t, err)
	require.Len(t, byReservation, 1)
	assert.Equal(t, MethodCreditCard, byReservation[0].Method)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marina-hms/marina/internal/platform/httpx"
)

type stubRepo struct {
	services    []Service
	orders      map[int64]*Order
	statusMoves []string
	stockLinks  []StockLink
	nextOrderID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: make(map[int64]*Order), nextOrderID: 1}
}

func (s *stubRepo) List(ctx context.Context) ([]Service, error) { return s.services, nil }

func (s *stubRepo) GetByID(ctx context.Context, id int64) (*Service, error) {
	for _, svc := range s.services {
		if svc.ID == id {
			copied := svc
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, input ServiceInput) (*Service, error) {
	svc := Service{ID: int64(len(s.services) + 1), Name: input.Name, UnitPrice: input.UnitPrice, Category: input.Category}
	s.services = append(s.services, svc)
	return &svc, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, input ServiceInput) (*Service, error) {
	return &Service{ID: id, Name: input.Name, UnitPrice: input.UnitPrice, Category: input.Category}, nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error { return nil }

func (s *stubRepo) Orders(ctx context.Context) ([]Order, error) {
	out := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubRepo) CreateOrder(ctx context.Context, input OrderInput) (*Order, error) {
	o := &Order{ID: s.nextOrderID, ReservationID: input.ReservationID, ServiceID: input.ServiceID, Quantity: input.Quantity, Status: OrderPending}
	s.orders[o.ID] = o
	s.nextOrderID++
	return o, nil
}

func (s *stubRepo) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	s.statusMoves = append(s.statusMoves, status)
	o.Status = status
	return o, nil
}

func (s *stubRepo) StockLinks(ctx context.Context) ([]StockLink, error) { return s.stockLinks, nil }

func TestListServicesFilters(t *testing.T) {
	repo := newStubRepo()
	repo.services = []Service{
		{ID: 1, Name: "Çamaşırhane", UnitPrice: 50, Category: "Temizlik"},
		{ID: 2, Name: "Spa Masajı", UnitPrice: 400, Category: "Spa"},
	}
	catalog := NewCatalog(repo, nil)

	spa, err := catalog.ListServices(context.Background(), ListFilter{Category: "Spa"})
	require.NoError(t, err)
	require.Len(t, spa, 1)
	assert.Equal(t, int64(2), spa[0].ID)

	byName, err := catalog.ListServices(context.Background(), ListFilter{Search: "ÇAMAŞIR"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Çamaşırhane", byName[0].Name)
}

func TestUpdateOrderStatusValidates(t *testing.T) {
	repo := newStubRepo()
	catalog := NewCatalog(repo, nil)

	order, err := catalog.PlaceOrder(context.Background(), OrderInput{ReservationID: 1, ServiceID: 2, Quantity: 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, OrderPending, order.Status)

	_, err = catalog.UpdateOrderStatus(context.Background(), order.ID, "kargoda", 1)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
	assert.Empty(t, repo.statusMoves)

	updated, err := catalog.UpdateOrderStatus(context.Background(), order.ID, OrderCompleted, 1)
	require.NoError(t, err)
	assert.Equal(t, OrderCompleted, updated.Status)
}

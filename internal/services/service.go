package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

// RepositoryPort defines backend access for extra services.
type RepositoryPort interface {
	List(ctx context.Context) ([]Service, error)
	GetByID(ctx context.Context, id int64) (*Service, error)
	Create(ctx context.Context, input ServiceInput) (*Service, error)
	Update(ctx context.Context, id int64, input ServiceInput) (*Service, error)
	Delete(ctx context.Context, id int64) error
	Orders(ctx context.Context) ([]Order, error)
	CreateOrder(ctx context.Context, input OrderInput) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*Order, error)
	StockLinks(ctx context.Context) ([]StockLink, error)
}

// Catalog handles extra-service business logic.
type Catalog struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewCatalog builds Catalog instance.
func NewCatalog(repo RepositoryPort, audit *shared.AuditLogger) *Catalog {
	return &Catalog{repo: repo, audit: audit}
}

// ListServices returns services matching the filter.
func (c *Catalog) ListServices(ctx context.Context, filter ListFilter) ([]Service, error) {
	services, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" && filter.Category == "" {
		return services, nil
	}
	filtered := make([]Service, 0, len(services))
	for _, service := range services {
		if filter.Category != "" && service.Category != filter.Category {
			continue
		}
		if !shared.MatchesTurkish(service.Name+" "+service.Category, filter.Search) {
			continue
		}
		filtered = append(filtered, service)
	}
	return filtered, nil
}

// GetService fetches a single service.
func (c *Catalog) GetService(ctx context.Context, id int64) (*Service, error) {
	return c.repo.GetByID(ctx, id)
}

// CreateService adds a service and audits the mutation.
func (c *Catalog) CreateService(ctx context.Context, input ServiceInput, actorID int64) (*Service, error) {
	service, err := c.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	c.record(ctx, actorID, "service.create", service.ID, map[string]any{"hizmet_adi": service.Name})
	return service, nil
}

// UpdateService replaces a service record.
func (c *Catalog) UpdateService(ctx context.Context, id int64, input ServiceInput, actorID int64) (*Service, error) {
	service, err := c.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	c.record(ctx, actorID, "service.update", id, nil)
	return service, nil
}

// DeleteService removes a service. A service still referenced by orders
// comes back from the backend as a conflict.
func (c *Catalog) DeleteService(ctx context.Context, id int64, actorID int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.record(ctx, actorID, "service.delete", id, nil)
	return nil
}

// ListOrders returns all service orders.
func (c *Catalog) ListOrders(ctx context.Context) ([]Order, error) {
	return c.repo.Orders(ctx)
}

// PlaceOrder charges a service against a reservation.
func (c *Catalog) PlaceOrder(ctx context.Context, input OrderInput, actorID int64) (*Order, error) {
	order, err := c.repo.CreateOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	c.record(ctx, actorID, "service.order", order.ID, map[string]any{
		"rezervasyon_id": input.ReservationID,
		"hizmet_id":      input.ServiceID,
		"adet":           input.Quantity,
	})
	return order, nil
}

// UpdateOrderStatus moves an order to a new fulfilment state.
func (c *Catalog) UpdateOrderStatus(ctx context.Context, orderID int64, status string, actorID int64) (*Order, error) {
	if !ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: geçersiz sipariş durumu: %s", httpx.ErrValidation, status)
	}
	order, err := c.repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	c.record(ctx, actorID, "service.order.status", orderID, map[string]any{"durum": status})
	return order, nil
}

// ListStockLinks returns warehouse items tied to services.
func (c *Catalog) ListStockLinks(ctx context.Context) ([]StockLink, error) {
	return c.repo.StockLinks(ctx)
}

func (c *Catalog) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if c.audit == nil {
		return
	}
	_ = c.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "service",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
}

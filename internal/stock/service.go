package stock

import (
	"context"
	"fmt"
	"strconv"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

// RepositoryPort defines backend access for warehouse stock.
type RepositoryPort interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, input ItemInput) (*Item, error)
	Update(ctx context.Context, id int64, input ItemInput) (*Item, error)
	Delete(ctx context.Context, id int64) error
	Increase(ctx context.Context, adj Adjustment) (*AdjustmentResult, error)
	Decrease(ctx context.Context, adj Adjustment) (*AdjustmentResult, error)
}

// Service handles warehouse business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// ListItems returns stock items matching the filter.
func (s *Service) ListItems(ctx context.Context, filter ListFilter) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" && filter.ServiceID == 0 {
		return items, nil
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if filter.ServiceID != 0 && item.ServiceID != filter.ServiceID {
			continue
		}
		if !shared.MatchesTurkish(item.Name, filter.Search) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered, nil
}

// GetItem fetches a single stock item.
func (s *Service) GetItem(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateItem adds a stock item and audits the mutation.
func (s *Service) CreateItem(ctx context.Context, input ItemInput, actorID int64) (*Item, error) {
	item, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "stock.create", item.ID, map[string]any{"urun_adi": item.Name})
	return item, nil
}

// UpdateItem replaces a stock item.
func (s *Service) UpdateItem(ctx context.Context, id int64, input ItemInput, actorID int64) (*Item, error) {
	item, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "stock.update", id, nil)
	return item, nil
}

// DeleteItem removes a stock item.
func (s *Service) DeleteItem(ctx context.Context, id int64, actorID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "stock.delete", id, nil)
	return nil
}

// IncreaseItem adds quantity to an item. Only positive moves are accepted.
func (s *Service) IncreaseItem(ctx context.Context, adj Adjustment, actorID int64) (*AdjustmentResult, error) {
	if adj.Quantity <= 0 {
		return nil, fmt.Errorf("%w: miktar 0'dan büyük olmalıdır", httpx.ErrValidation)
	}
	result, err := s.repo.Increase(ctx, adj)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "stock.increase", adj.ItemID, map[string]any{"miktar": adj.Quantity})
	return result, nil
}

// DecreaseItem removes quantity from an item. The backend guards against
// going below zero; an insufficient level comes back as a validation error.
func (s *Service) DecreaseItem(ctx context.Context, adj Adjustment, actorID int64) (*AdjustmentResult, error) {
	if adj.Quantity <= 0 {
		return nil, fmt.Errorf("%w: miktar 0'dan büyük olmalıdır", httpx.ErrValidation)
	}
	result, err := s.repo.Decrease(ctx, adj)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "stock.decrease", adj.ItemID, map[string]any{"miktar": adj.Quantity})
	return result, nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "stock",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
}

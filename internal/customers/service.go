package customers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

// RepositoryPort defines backend access for customers.
type RepositoryPort interface {
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, input CustomerInput) (*Customer, error)
	Update(ctx context.Context, id int64, input CustomerInput) (*Customer, error)
	Delete(ctx context.Context, id int64) error
	Expenses(ctx context.Context, id int64) (*ExpenseSummary, error)
	Reviews(ctx context.Context, id int64) (*ReviewSummary, error)
}

// Service handles customer business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// ListCustomers returns guests matching the filter. Search compares name,
// national ID and phone with Turkish case folding.
func (s *Service) ListCustomers(ctx context.Context, filter ListFilter) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" && filter.Gender == "" {
		return customers, nil
	}
	filtered := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		if filter.Gender != "" && customer.Gender != filter.Gender {
			continue
		}
		if !shared.MatchesTurkish(customer.FullName()+" "+customer.NationalID+" "+customer.Phone, filter.Search) {
			continue
		}
		filtered = append(filtered, customer)
	}
	return filtered, nil
}

// GetCustomer fetches a single guest.
func (s *Service) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCustomer adds a guest and audits the mutation.
func (s *Service) CreateCustomer(ctx context.Context, input CustomerInput, actorID int64) (*Customer, error) {
	if input.Gender != "" && !ValidGender(input.Gender) {
		return nil, fmt.Errorf("%w: geçersiz cinsiyet değeri: %s", httpx.ErrValidation, input.Gender)
	}
	customer, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "customer.create", customer.ID, map[string]any{"ad_soyad": customer.FullName()})
	return customer, nil
}

// UpdateCustomer replaces a guest record.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, input CustomerInput, actorID int64) (*Customer, error) {
	if input.Gender != "" && !ValidGender(input.Gender) {
		return nil, fmt.Errorf("%w: geçersiz cinsiyet değeri: %s", httpx.ErrValidation, input.Gender)
	}
	customer, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "customer.update", id, nil)
	return customer, nil
}

// DeleteCustomer removes a guest.
func (s *Service) DeleteCustomer(ctx context.Context, id int64, actorID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "customer.delete", id, nil)
	return nil
}

// CustomerExpenses returns all service charges for a guest.
func (s *Service) CustomerExpenses(ctx context.Context, id int64) (*ExpenseSummary, error) {
	summary, err := s.repo.Expenses(ctx, id)
	if err != nil {
		return nil, err
	}
	if summary.Expenses == nil {
		summary.Expenses = []Expense{}
	}
	return summary, nil
}

// CustomerReviews returns all stay reviews for a guest. A guest with no
// review rows is a normal state, not an error, so a missing subresource
// collapses to the empty summary.
func (s *Service) CustomerReviews(ctx context.Context, id int64) (*ReviewSummary, error) {
	summary, err := s.repo.Reviews(ctx, id)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			if _, lookupErr := s.repo.GetByID(ctx, id); lookupErr != nil {
				return nil, lookupErr
			}
			return &ReviewSummary{CustomerID: id, Reviews: []Review{}}, nil
		}
		return nil, err
	}
	if summary.Reviews == nil {
		summary.Reviews = []Review{}
	}
	return summary, nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "customer",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
}

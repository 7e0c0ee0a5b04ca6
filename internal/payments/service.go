package payments

import (
	"context"
	"fmt"
	"strconv"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

// RepositoryPort defines backend access for payments.
type RepositoryPort interface {
	List(ctx context.Context) ([]Payment, error)
	GetByID(ctx context.Context, id int64) (*Payment, error)
	Create(ctx context.Context, input PaymentInput) (*Payment, error)
	Update(ctx context.Context, id int64, input PaymentInput) (*Payment, error)
	Delete(ctx context.Context, id int64) error
	ByCustomer(ctx context.Context, customerID int64) ([]Payment, error)
	ByReservation(ctx context.Context, reservationID int64) ([]Payment, error)
}

// Service handles payment business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// ListPayments returns payments matching the filter.
func (s *Service) ListPayments(ctx context.Context, filter ListFilter) ([]Payment, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Method == "" && filter.ReservationID == 0 {
		return payments, nil
	}
	filtered := make([]Payment, 0, len(payments))
	for _, payment := range payments {
		if filter.Method != "" && payment.Method != filter.Method {
			continue
		}
		if filter.ReservationID != 0 && payment.ReservationID != filter.ReservationID {
			continue
		}
		filtered = append(filtered, payment)
	}
	return filtered, nil
}

// GetPayment fetches a single payment.
func (s *Service) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	return s.repo.GetByID(ctx, id)
}

// CreatePayment records a payment and audits the mutation.
func (s *Service) CreatePayment(ctx context.Context, input PaymentInput, actorID int64) (*Payment, error) {
	if !ValidMethod(input.Method) {
		return nil, fmt.Errorf("%w: geçersiz ödeme türü: %s", httpx.ErrValidation, input.Method)
	}
	payment, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "payment.create", payment.ID, map[string]any{
		"rezervasyon_id": input.ReservationID,
		"tutar":          input.Amount,
		"odeme_turu":     input.Method,
	})
	return payment, nil
}

// UpdatePayment replaces a payment record.
func (s *Service) UpdatePayment(ctx context.Context, id int64, input PaymentInput, actorID int64) (*Payment, error) {
	if !ValidMethod(input.Method) {
		return nil, fmt.Errorf("%w: geçersiz ödeme türü: %s", httpx.ErrValidation, input.Method)
	}
	payment, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "payment.update", id, nil)
	return payment, nil
}

// DeletePayment removes a payment.
func (s *Service) DeletePayment(ctx context.Context, id int64, actorID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "payment.delete", id, nil)
	return nil
}

// PaymentsByCustomer lists payments across a customer's reservations.
func (s *Service) PaymentsByCustomer(ctx context.Context, customerID int64) ([]Payment, error) {
	return s.repo.ByCustomer(ctx, customerID)
}

// PaymentsByReservation lists payments for a single reservation.
func (s *Service) PaymentsByReservation(ctx context.Context, reservationID int64) ([]Payment, error) {
	return s.repo.ByReservation(ctx, reservationID)
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "payment",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
}

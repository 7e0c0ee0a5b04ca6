package reservations

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/marina-hms/marina/internal/platform/cache"
	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

const optionsCacheKey = "reservations:options"

// RepositoryPort defines backend access for reservations.
type RepositoryPort interface {
	List(ctx context.Context) ([]Reservation, error)
	GetByID(ctx context.Context, id int64) (*Reservation, error)
	Create(ctx context.Context, input ReservationInput) (*Reservation, error)
	Update(ctx context.Context, id int64, input ReservationInput) (*Reservation, error)
	Delete(ctx context.Context, id int64) error
	Options(ctx context.Context) (*Options, error)
	CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut string, excludeID int64) (*Availability, error)
	Review(ctx context.Context, id int64) (*Review, error)
	CreateReview(ctx context.Context, id int64, input ReviewInput) (*Review, error)
	UpdateReview(ctx context.Context, id int64, input ReviewInput) (*Review, error)
}

// RoomRater resolves a room's nightly rate for price quoting.
type RoomRater interface {
	NightlyRate(ctx context.Context, roomID int64) (float64, error)
}

// Service handles reservation business logic.
type Service struct {
	repo    RepositoryPort
	rater   RoomRater
	options *cache.JSONCache
	audit   *shared.AuditLogger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, rater RoomRater, options *cache.JSONCache, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, rater: rater, options: options, audit: audit}
}

// ListReservations returns bookings matching the filter.
func (s *Service) ListReservations(ctx context.Context, filter ListFilter) ([]Reservation, error) {
	reservations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Status == "" && filter.RoomID == 0 && filter.CustomerID == 0 {
		return reservations, nil
	}
	filtered := make([]Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		if filter.Status != "" && reservation.Status != filter.Status {
			continue
		}
		if filter.RoomID != 0 && reservation.RoomID != filter.RoomID {
			continue
		}
		if filter.CustomerID != 0 && reservation.CustomerID != filter.CustomerID {
			continue
		}
		filtered = append(filtered, reservation)
	}
	return filtered, nil
}

// GetReservation fetches a single booking.
func (s *Service) GetReservation(ctx context.Context, id int64) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateReservation validates the draft, confirms the room is free and books
// it. The backend computes the final price from its own room rate.
func (s *Service) CreateReservation(ctx context.Context, input ReservationInput, actorID int64) (*Reservation, error) {
	if input.Adults == 0 {
		input.Adults = 1
	}
	if _, _, err := input.Stay(); err != nil {
		return nil, err
	}
	availability, err := s.repo.CheckAvailability(ctx, input.RoomID, input.CheckIn, input.CheckOut, 0)
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		return nil, fmt.Errorf("%w: bu tarih aralığında odada rezervasyon var", httpx.ErrConflict)
	}
	reservation, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "reservation.create", reservation.ID, map[string]any{
		"oda_id":     reservation.RoomID,
		"musteri_id": reservation.CustomerID,
	})
	return reservation, nil
}

// UpdateReservation validates the draft and the status transition, confirms
// availability excluding the booking itself, then submits the change.
func (s *Service) UpdateReservation(ctx context.Context, id int64, input ReservationInput, actorID int64) (*Reservation, error) {
	if input.Adults == 0 {
		input.Adults = 1
	}
	if _, _, err := input.Stay(); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Status != "" && !CanTransition(current.Status, input.Status) {
		return nil, fmt.Errorf("%w: %s durumundan %s durumuna geçilemez", httpx.ErrConflict, current.Status, input.Status)
	}
	availability, err := s.repo.CheckAvailability(ctx, input.RoomID, input.CheckIn, input.CheckOut, id)
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		return nil, fmt.Errorf("%w: bu tarih aralığında odada rezervasyon var", httpx.ErrConflict)
	}
	reservation, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "reservation.update", id, map[string]any{"durum": reservation.Status})
	return reservation, nil
}

// DeleteReservation removes a booking.
func (s *Service) DeleteReservation(ctx context.Context, id int64, actorID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "reservation.delete", id, nil)
	return nil
}

// GetOptions returns the selectable status enums, briefly cached.
func (s *Service) GetOptions(ctx context.Context) (*Options, error) {
	var opts Options
	err := s.options.FetchJSON(ctx, optionsCacheKey, &opts, func(ctx context.Context) (any, error) {
		return s.repo.Options(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &opts, nil
}

// CheckAvailability proxies the backend overlap query for booking forms.
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut string, excludeID int64) (*Availability, error) {
	if roomID <= 0 || checkIn == "" || checkOut == "" {
		return nil, fmt.Errorf("%w: oda_id, giriş ve çıkış tarihleri gereklidir", httpx.ErrValidation)
	}
	return s.repo.CheckAvailability(ctx, roomID, checkIn, checkOut, excludeID)
}

// Quote prices a draft stay against the room's current nightly rate without
// creating anything. A zero or inverted span quotes 0 and is marked invalid
// so the form can warn instead of failing.
func (s *Service) Quote(ctx context.Context, roomID int64, checkInStr, checkOutStr string) (*PriceQuote, error) {
	if roomID <= 0 {
		return nil, fmt.Errorf("%w: oda_id gereklidir", httpx.ErrValidation)
	}
	checkIn, err := time.Parse(DateLayout, checkInStr)
	if err != nil {
		return nil, fmt.Errorf("%w: giriş tarihi YYYY-AA-GG biçiminde olmalıdır", httpx.ErrValidation)
	}
	checkOut, err := time.Parse(DateLayout, checkOutStr)
	if err != nil {
		return nil, fmt.Errorf("%w: çıkış tarihi YYYY-AA-GG biçiminde olmalıdır", httpx.ErrValidation)
	}
	rate, err := s.rater.NightlyRate(ctx, roomID)
	if err != nil {
		return nil, err
	}
	nights := Nights(checkIn, checkOut)
	return &PriceQuote{
		RoomID:      roomID,
		CheckIn:     checkInStr,
		CheckOut:    checkOutStr,
		Nights:      nights,
		NightlyRate: rate,
		Total:       TotalPrice(rate, nights),
		Valid:       nights > 0,
	}, nil
}

// ReservationReview fetches the stay review for a booking.
func (s *Service) ReservationReview(ctx context.Context, id int64) (*Review, error) {
	return s.repo.Review(ctx, id)
}

// CreateReview attaches a stay review to a completed booking.
func (s *Service) CreateReview(ctx context.Context, id int64, input ReviewInput, actorID int64) (*Review, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != StatusCompleted {
		return nil, fmt.Errorf("%w: yalnızca tamamlanmış rezervasyonlar değerlendirilebilir", httpx.ErrConflict)
	}
	review, err := s.repo.CreateReview(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "reservation.review", id, map[string]any{"puan": input.Rating})
	return review, nil
}

// UpdateReview replaces the stay review of a booking.
func (s *Service) UpdateReview(ctx context.Context, id int64, input ReviewInput, actorID int64) (*Review, error) {
	review, err := s.repo.UpdateReview(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "reservation.review", id, map[string]any{"puan": input.Rating})
	return review, nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "reservation",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
}

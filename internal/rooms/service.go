package rooms

import (
	"context"
	"fmt"
	"strconv"

	"github.com/marina-hms/marina/internal/platform/cache"
	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

const optionsCacheKey = "rooms:options"

// RepositoryPort defines backend access for rooms.
type RepositoryPort interface {
	List(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id int64) (*Room, error)
	Create(ctx context.Context, input RoomInput) (*Room, error)
	Update(ctx context.Context, id int64, input RoomInput) (*Room, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Options(ctx context.Context) (*Options, error)
	Available(ctx context.Context, checkIn, checkOut string) ([]Room, error)
	Features(ctx context.Context, id int64) ([]Feature, error)
	Images(ctx context.Context, id int64) ([]Image, error)
}

// Service handles room business logic.
type Service struct {
	repo    RepositoryPort
	options *cache.JSONCache
	audit   *shared.AuditLogger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, options *cache.JSONCache, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, options: options, audit: audit}
}

// ListRooms returns rooms matching the filter. Search compares room number,
// type and view with Turkish case folding.
func (s *Service) ListRooms(ctx context.Context, filter ListFilter) ([]Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" && filter.Status == "" {
		return rooms, nil
	}
	filtered := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if filter.Status != "" && room.Status != filter.Status {
			continue
		}
		if !shared.MatchesTurkish(room.Number+" "+room.Type+" "+room.View, filter.Search) {
			continue
		}
		filtered = append(filtered, room)
	}
	return filtered, nil
}

// GetRoom fetches a single room.
func (s *Service) GetRoom(ctx context.Context, id int64) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateRoom adds a room and audits the mutation.
func (s *Service) CreateRoom(ctx context.Context, input RoomInput, actorID int64) (*Room, error) {
	if input.Status != "" && !ValidStatus(input.Status) {
		return nil, fmt.Errorf("%w: geçersiz oda durumu: %s", httpx.ErrValidation, input.Status)
	}
	room, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "room.create", room.ID, map[string]any{"oda_no": room.Number})
	return room, nil
}

// UpdateRoom replaces a room record.
func (s *Service) UpdateRoom(ctx context.Context, id int64, input RoomInput, actorID int64) (*Room, error) {
	if input.Status != "" && !ValidStatus(input.Status) {
		return nil, fmt.Errorf("%w: geçersiz oda durumu: %s", httpx.ErrValidation, input.Status)
	}
	room, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "room.update", id, nil)
	return room, nil
}

// DeleteRoom removes a room.
func (s *Service) DeleteRoom(ctx context.Context, id int64, actorID int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "room.delete", id, nil)
	return nil
}

// UpdateStatus changes only the room state.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, actorID int64) error {
	if !ValidStatus(status) {
		return fmt.Errorf("%w: geçersiz oda durumu: %s", httpx.ErrValidation, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.record(ctx, actorID, "room.status", id, map[string]any{"durum": status})
	return nil
}

// GetOptions returns the type and status enums, cached briefly since the
// selector lists change only when rooms are reconfigured.
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

// NightlyRate resolves the current rate of a room, for price quoting.
func (s *Service) NightlyRate(ctx context.Context, roomID int64) (float64, error) {
	room, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	return room.NightlyRate, nil
}

// AvailableRooms lists rooms free for a date range.
func (s *Service) AvailableRooms(ctx context.Context, checkIn, checkOut string) ([]Room, error) {
	return s.repo.Available(ctx, checkIn, checkOut)
}

// RoomFeatures lists amenities for a room.
func (s *Service) RoomFeatures(ctx context.Context, id int64) ([]Feature, error) {
	return s.repo.Features(ctx, id)
}

// RoomImages lists photos for a room.
func (s *Service) RoomImages(ctx context.Context, id int64) ([]Image, error) {
	return s.repo.Images(ctx, id)
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "room",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
}

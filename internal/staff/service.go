package staff

import (
	"context"
	"fmt"
	"strconv"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/rbac"
	"github.com/marina-hms/marina/internal/shared"
)

// RepositoryPort defines backend access for personnel.
type RepositoryPort interface {
	List(ctx context.Context) ([]Staff, error)
	GetByID(ctx context.Context, id int64) (*Staff, error)
	Create(ctx context.Context, input StaffInput) (*Staff, error)
	Update(ctx context.Context, id int64, input StaffInput) (*Staff, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles personnel business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// ListStaff returns personnel matching the filter. Search compares username,
// name and job title with Turkish case folding.
func (s *Service) ListStaff(ctx context.Context, filter ListFilter) ([]Staff, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" && !filter.OnlyActive {
		return members, nil
	}
	filtered := make([]Staff, 0, len(members))
	for _, member := range members {
		if filter.OnlyActive && !member.Active {
			continue
		}
		if !shared.MatchesTurkish(member.Username+" "+member.Name+" "+member.JobTitle, filter.Search) {
			continue
		}
		filtered = append(filtered, member)
	}
	return filtered, nil
}

// GetStaff fetches a single personnel record.
func (s *Service) GetStaff(ctx context.Context, id int64) (*Staff, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateStaff adds a personnel record. A password is mandatory for new
// accounts. The audit record carries the role the job title maps onto, which
// is what the new account will actually be able to do.
func (s *Service) CreateStaff(ctx context.Context, input StaffInput, actorID int64) (*Staff, error) {
	if input.Password == "" {
		return nil, fmt.Errorf("%w: yeni personel için şifre gereklidir", httpx.ErrValidation)
	}
	member, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "staff.create", member.ID, map[string]any{
		"kullanici_adi": member.Username,
		"rol":           rbac.NormalizeRole(member.JobTitle).String(),
	})
	return member, nil
}

// UpdateStaff replaces a personnel record. An empty password leaves the
// stored credential untouched.
func (s *Service) UpdateStaff(ctx context.Context, id int64, input StaffInput, actorID int64) (*Staff, error) {
	member, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, "staff.update", id, nil)
	return member, nil
}

// DeleteStaff removes a personnel record. Administrators cannot delete their
// own account; a locked-out hotel has no recovery path in the admin panel.
func (s *Service) DeleteStaff(ctx context.Context, id int64, actorID int64) error {
	if id == actorID {
		return fmt.Errorf("%w: kendi hesabınızı silemezsiniz", httpx.ErrConflict)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "staff.delete", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "staff",
		EntityID: strconv.FormatInt(entityID, 10),
		Meta:     meta,
	})
}

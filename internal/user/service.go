package user

import (
	"context"
	"log/slog"

	"github.com/sce-foundation/sce-portal/internal"
	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
	"github.com/sce-foundation/sce-portal/internal/core/events"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id string) (*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	Delete(id string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service covers administrative account management: the approval workflow,
// blocking, and role/clearance changes.
type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// ListUsers returns every account in insertion order. Records that fail enum
// validation are logged and skipped rather than failing the whole listing.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	users := make([]*User, 0, len(records))
	for _, record := range records {
		u, convErr := FromDataModel(record)
		if convErr != nil {
			s.logger.Warn("skipping user with invalid stored fields", "user_id", record.ID, "error", convErr)
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(record)
}

// Approve transitions a pending account to active.
func (s *Service) Approve(ctx context.Context, id string, actor *internal.SessionUser) (*User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusPending {
		return nil, internal.ErrInvalidTransition
	}

	u.Status = StatusActive
	if err := s.repo.Update(ToDataModel(u)); err != nil {
		return nil, internal.NewInternalError("failed to approve user", err)
	}

	s.logger.Info("user approved", "user_id", u.ID, "approved_by", actorID(actor))
	_ = s.bus.Publish(ctx, events.NewUserApproved(u.ID, u.Email, actorID(actor)))
	return u, nil
}

// Reject deletes a pending account.
func (s *Service) Reject(ctx context.Context, id string, actor *internal.SessionUser) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.Status != StatusPending {
		return internal.ErrInvalidTransition
	}

	if err := s.repo.Delete(u.ID); err != nil {
		return internal.NewInternalError("failed to reject user", err)
	}

	s.logger.Info("user rejected", "user_id", u.ID, "rejected_by", actorID(actor))
	_ = s.bus.Publish(ctx, events.NewUserRejected(u.ID, u.Email, actorID(actor)))
	return nil
}

// Block transitions an active account to blocked.
func (s *Service) Block(ctx context.Context, id string, actor *internal.SessionUser) (*User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusActive {
		return nil, internal.ErrInvalidTransition
	}

	u.Status = StatusBlocked
	if err := s.repo.Update(ToDataModel(u)); err != nil {
		return nil, internal.NewInternalError("failed to block user", err)
	}

	s.logger.Info("user blocked", "user_id", u.ID, "blocked_by", actorID(actor))
	_ = s.bus.Publish(ctx, events.NewUserBlocked(u.ID, u.Email, actorID(actor)))
	return u, nil
}

// Reactivate transitions a blocked account back to active.
func (s *Service) Reactivate(ctx context.Context, id string, actor *internal.SessionUser) (*User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusBlocked {
		return nil, internal.ErrInvalidTransition
	}

	u.Status = StatusActive
	if err := s.repo.Update(ToDataModel(u)); err != nil {
		return nil, internal.NewInternalError("failed to reactivate user", err)
	}

	s.logger.Info("user reactivated", "user_id", u.ID, "reactivated_by", actorID(actor))
	_ = s.bus.Publish(ctx, events.NewUserReactivated(u.ID, u.Email, actorID(actor)))
	return u, nil
}

// UpdateUser applies administrative role/clearance changes.
func (s *Service) UpdateUser(ctx context.Context, id string, dto UpdateUserDTO, actor *internal.SessionUser) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if dto.Role != nil {
		u.Role = Role(*dto.Role)
		changes["role"] = *dto.Role
	}
	if dto.ClearanceLevel != nil {
		u.ClearanceLevel = *dto.ClearanceLevel
		changes["clearance_level"] = *dto.ClearanceLevel
	}
	if len(changes) == 0 {
		return u, nil
	}

	if err := s.repo.Update(ToDataModel(u)); err != nil {
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", u.ID, "updated_by", actorID(actor))
	_ = s.bus.Publish(ctx, events.NewUserUpdated(u.ID, u.Email, actorID(actor), changes))
	return u, nil
}

func actorID(actor *internal.SessionUser) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sce-foundation/sce-portal/internal"
	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
	"github.com/sce-foundation/sce-portal/internal/core/events"
	"github.com/sce-foundation/sce-portal/internal/user"
)

type UserRepository interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByID(id string) (*userDatamodel.User, error)
	Count() (int64, error)
	Create(u *userDatamodel.User) error
}

// SessionRepository persists the single current-user pointer.
type SessionRepository interface {
	Set(userID string) error
	Clear() error
	CurrentUserID() (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	users          UserRepository
	sessions       SessionRepository
	tokens         TokenGenerator
	bus            EventPublisher
	logger         *slog.Logger
	bootstrapEmail string
	bcryptCost     int
}

func NewService(users UserRepository, sessions SessionRepository, tokens TokenGenerator, bus EventPublisher, logger *slog.Logger, bootstrapEmail string, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:          users,
		sessions:       sessions,
		tokens:         tokens,
		bus:            bus,
		logger:         logger,
		bootstrapEmail: bootstrapEmail,
		bcryptCost:     bcryptCost,
	}
}

// Register creates an account. The very first account, or the designated
// bootstrap address, is granted administrator rights with clearance 5 and an
// active status; every other account starts as a pending reader and needs
// administrator approval. A session is established immediately either way,
// pending accounts included (source behavior, kept pending a product call).
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("register: email lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to check existing accounts", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	count, err := s.users.Count()
	if err != nil {
		s.logger.Error("register: user count failed", "error", err)
		return nil, internal.NewInternalError("failed to count accounts", err)
	}

	role := user.RoleReader
	clearance := user.MinClearance
	status := user.StatusPending
	bootstrapReason := ""
	if count == 0 {
		bootstrapReason = "first account"
	} else if s.bootstrapEmail != "" && dto.Email == s.bootstrapEmail {
		bootstrapReason = "designated bootstrap address"
	}
	if bootstrapReason != "" {
		role = user.RoleAdministrator
		clearance = user.MaxClearance
		status = user.StatusActive
	}

	// The hash is stored so credential verification can be switched on
	// later without a schema change; Login does not read it today.
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	record := &userDatamodel.User{
		ID:             uuid.NewString(),
		Email:          dto.Email,
		Username:       dto.Username,
		PasswordHash:   string(hash),
		Role:           string(role),
		Status:         string(status),
		ClearanceLevel: clearance,
		CreatedAt:      time.Now(),
	}

	if err := s.users.Create(record); err != nil {
		s.logger.Error("register: create failed", "email", dto.Email, "error", err)
		return nil, internal.NewInternalError("failed to create account", err)
	}

	if err := s.sessions.Set(record.ID); err != nil {
		s.logger.Error("register: session persist failed", "user_id", record.ID, "error", err)
	}

	_ = s.bus.Publish(ctx, events.NewUserRegistered(record.ID, record.Email, record.Role))
	if bootstrapReason != "" {
		s.logger.Info("bootstrap administrator granted",
			"user_id", record.ID, "email", record.Email, "reason", bootstrapReason)
		_ = s.bus.Publish(ctx, events.NewUserBootstrapped(record.ID, record.Email, bootstrapReason))
	}

	domainUser, convErr := user.FromDataModel(record)
	if convErr != nil {
		return nil, convErr
	}

	token, err := s.tokens.GenerateSessionToken(record.ID, record.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue session token", err)
	}

	return &AuthResult{Token: token, User: domainUser}, nil
}

// Login looks the account up by email and establishes a session. The password
// is accepted but never verified against the stored hash; the source system
// behaves this way and changing it is a product decision, not a bug fix.
// Pending and blocked accounts can log in for the same reason.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("login: email lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to look up account", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}

	domainUser, convErr := user.FromDataModel(record)
	if convErr != nil {
		s.logger.Error("login: stored record failed validation", "user_id", record.ID, "error", convErr)
		return nil, convErr
	}

	if err := s.sessions.Set(record.ID); err != nil {
		s.logger.Error("login: session persist failed", "user_id", record.ID, "error", err)
	}

	token, err := s.tokens.GenerateSessionToken(record.ID, record.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue session token", err)
	}

	s.logger.Info("login", "user_id", record.ID, "email", record.Email, "status", record.Status)
	return &AuthResult{Token: token, User: domainUser}, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(); err != nil {
		s.logger.Error("logout: session clear failed", "error", err)
		return internal.NewInternalError("failed to clear session", err)
	}
	return nil
}

// CurrentUser returns the persisted session account, or nil when logged out.
func (s *Service) CurrentUser(ctx context.Context) (*user.User, error) {
	userID, err := s.sessions.CurrentUserID()
	if err != nil {
		s.logger.Error("current user: session read failed", "error", err)
		return nil, internal.NewInternalError("failed to read session", err)
	}
	if userID == "" {
		return nil, nil
	}

	record, err := s.users.GetByID(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load session account", err)
	}
	if record == nil {
		// session points at a deleted account; treat as logged out
		return nil, nil
	}

	return user.FromDataModel(record)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}

// ResolveSessionUser loads the viewer snapshot the middleware places in
// request context.
func (s *Service) ResolveSessionUser(userID string) (*internal.SessionUser, error) {
	record, err := s.users.GetByID(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load account", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}

	domainUser, convErr := user.FromDataModel(record)
	if convErr != nil {
		return nil, convErr
	}
	return domainUser.ToSessionUser(), nil
}

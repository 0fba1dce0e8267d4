package user

import (
	"time"

	"github.com/sce-foundation/sce-portal/internal"
	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
)

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleModerator     Role = "moderator"
	RoleResearcher    Role = "researcher"
	RoleReader        Role = "reader"
)

func Roles() []string {
	return []string{
		string(RoleAdministrator),
		string(RoleModerator),
		string(RoleResearcher),
		string(RoleReader),
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleModerator, RoleResearcher, RoleReader:
		return true
	}
	return false
}

type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	// StatusBlocked is a modeled state: the block/reactivate transitions
	// exist even though login does not currently reject blocked accounts.
	StatusBlocked Status = "blocked"
)

func Statuses() []string {
	return []string{
		string(StatusActive),
		string(StatusPending),
		string(StatusBlocked),
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusBlocked:
		return true
	}
	return false
}

const (
	MinClearance = 1
	MaxClearance = 5
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	Status         Status    `json:"status"`
	ClearanceLevel int       `json:"clearance_level"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

func (u *User) IsPending() bool {
	return u.Status == StatusPending
}

func (u *User) IsBlocked() bool {
	return u.Status == StatusBlocked
}

// CanPublishPosts reports whether the role may create posts.
func (u *User) CanPublishPosts() bool {
	switch u.Role {
	case RoleAdministrator, RoleModerator, RoleResearcher:
		return true
	}
	return false
}

func (u *User) ToSessionUser() *internal.SessionUser {
	return &internal.SessionUser{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		Role:           string(u.Role),
		Status:         string(u.Status),
		ClearanceLevel: u.ClearanceLevel,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		Role:           string(u.Role),
		Status:         string(u.Status),
		ClearanceLevel: u.ClearanceLevel,
		CreatedAt:      u.CreatedAt,
	}
}

// FromDataModel converts a stored record to the domain model, rejecting
// unknown enum values. The storage layer enforces nothing, so every read
// passes through here.
func FromDataModel(u *userDatamodel.User) (*User, error) {
	role := Role(u.Role)
	if !role.Valid() {
		return nil, internal.NewValidationError("stored user has unknown role: "+u.Role, internal.ErrCodeInvalidRole)
	}
	status := Status(u.Status)
	if !status.Valid() {
		return nil, internal.NewValidationError("stored user has unknown status: "+u.Status, internal.ErrCodeInvalidStatus)
	}
	return &User{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		Role:           role,
		Status:         status,
		ClearanceLevel: u.ClearanceLevel,
		CreatedAt:      u.CreatedAt,
	}, nil
}

package user

import (
	errors "github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/core/common/validation"
)

// UpdateUserDTO carries administrative role/clearance changes. Either field
// may be omitted to leave the current value alone.
type UpdateUserDTO struct {
	Role           *string `json:"role,omitempty"`
	ClearanceLevel *int    `json:"clearance_level,omitempty"`
}

func (d UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Role != nil {
		v.Field("role", *d.Role).Required().OneOf(Roles(), errors.ErrCodeInvalidRole)
	}
	if d.ClearanceLevel != nil {
		v.Field("clearance_level", *d.ClearanceLevel).IntRange(MinClearance, MaxClearance, errors.ErrCodeInvalidClearance)
	}
	return v.Validate()
}

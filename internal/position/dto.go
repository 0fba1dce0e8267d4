package position

import (
	errors "github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/core/common/validation"
	"github.com/sce-foundation/sce-portal/internal/user"
)

type CreatePositionDTO struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ClearanceLevel int      `json:"clearance_level"`
	Permissions    []string `json:"permissions"`
}

type UpdatePositionDTO struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ClearanceLevel int      `json:"clearance_level"`
	Permissions    []string `json:"permissions"`
}

func validatePositionFields(name string, clearanceLevel int) *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", name).Required().MinLength(2).MaxLength(100)
	v.Field("clearance_level", clearanceLevel).IntRange(user.MinClearance, user.MaxClearance, errors.ErrCodeInvalidClearance)
	return v.Validate()
}

func (d CreatePositionDTO) Validate() *errors.AppError {
	return validatePositionFields(d.Name, d.ClearanceLevel)
}

func (d UpdatePositionDTO) Validate() *errors.AppError {
	return validatePositionFields(d.Name, d.ClearanceLevel)
}

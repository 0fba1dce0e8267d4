package object

import (
	errors "github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/core/common/validation"
	"github.com/sce-foundation/sce-portal/internal/user"
)

type CreateObjectDTO struct {
	Code                  string `json:"code"`
	Name                  string `json:"name"`
	Classification        string `json:"classification"`
	ContainmentProcedures string `json:"containment_procedures"`
	Description           string `json:"description"`
	RequiredClearance     int    `json:"required_clearance"`
}

type UpdateObjectDTO struct {
	Code                  string `json:"code"`
	Name                  string `json:"name"`
	Classification        string `json:"classification"`
	ContainmentProcedures string `json:"containment_procedures"`
	Description           string `json:"description"`
	RequiredClearance     int    `json:"required_clearance"`
}

func validateObjectFields(code, name, classification string, requiredClearance int) *errors.AppError {
	v := validation.NewValidator()
	v.Field("code", code).Required().MinLength(3).MaxLength(32)
	v.Field("name", name).Required().MaxLength(200)
	v.Field("classification", classification).Required().OneOf(Classifications(), errors.ErrCodeInvalidClassification)
	v.Field("required_clearance", requiredClearance).IntRange(user.MinClearance, user.MaxClearance, errors.ErrCodeInvalidClearance)
	return v.Validate()
}

func (d CreateObjectDTO) Validate() *errors.AppError {
	return validateObjectFields(d.Code, d.Name, d.Classification, d.RequiredClearance)
}

func (d UpdateObjectDTO) Validate() *errors.AppError {
	return validateObjectFields(d.Code, d.Name, d.Classification, d.RequiredClearance)
}

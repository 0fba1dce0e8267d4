package post

import (
	errors "github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/core/common/validation"
	"github.com/sce-foundation/sce-portal/internal/user"
)

type CreatePostDTO struct {
	Title             string `json:"title"`
	Content           string `json:"content"`
	Category          string `json:"category"`
	RequiredClearance int    `json:"required_clearance"`
}

type UpdatePostDTO struct {
	Title             string `json:"title"`
	Content           string `json:"content"`
	Category          string `json:"category"`
	RequiredClearance int    `json:"required_clearance"`
}

func validatePostFields(title, content, category string, requiredClearance int) *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", title).Required().MinLength(3).MaxLength(200)
	v.Field("content", content).Required()
	v.Field("category", category).Required().OneOf(Categories(), errors.ErrCodeInvalidCategory)
	v.Field("required_clearance", requiredClearance).IntRange(user.MinClearance, user.MaxClearance, errors.ErrCodeInvalidClearance)
	return v.Validate()
}

func (d CreatePostDTO) Validate() *errors.AppError {
	return validatePostFields(d.Title, d.Content, d.Category, d.RequiredClearance)
}

func (d UpdatePostDTO) Validate() *errors.AppError {
	return validatePostFields(d.Title, d.Content, d.Category, d.RequiredClearance)
}

package post

import (
	"time"

	"github.com/sce-foundation/sce-portal/internal"
	postDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/post"
)

type Category string

const (
	CategoryNews         Category = "news"
	CategoryResearch     Category = "research"
	CategoryReport       Category = "report"
	CategoryAnnouncement Category = "announcement"
)

func Categories() []string {
	return []string{
		string(CategoryNews),
		string(CategoryResearch),
		string(CategoryReport),
		string(CategoryAnnouncement),
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryNews, CategoryResearch, CategoryReport, CategoryAnnouncement:
		return true
	}
	return false
}

type Post struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	AuthorID          string    `json:"author_id"`
	AuthorName        string    `json:"author_name"`
	Category          Category  `json:"category"`
	RequiredClearance int       `json:"required_clearance"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func ToDataModel(p *Post) *postDatamodel.Post {
	return &postDatamodel.Post{
		ID:                p.ID,
		Title:             p.Title,
		Content:           p.Content,
		AuthorID:          p.AuthorID,
		AuthorName:        p.AuthorName,
		Category:          string(p.Category),
		RequiredClearance: p.RequiredClearance,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// FromDataModel validates the stored category on every read.
func FromDataModel(p *postDatamodel.Post) (*Post, error) {
	category := Category(p.Category)
	if !category.Valid() {
		return nil, internal.NewValidationError("stored post has unknown category: "+p.Category, internal.ErrCodeInvalidCategory)
	}
	return &Post{
		ID:                p.ID,
		Title:             p.Title,
		Content:           p.Content,
		AuthorID:          p.AuthorID,
		AuthorName:        p.AuthorName,
		Category:          category,
		RequiredClearance: p.RequiredClearance,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}, nil
}

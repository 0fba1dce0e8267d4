package storage

import (
	"errors"

	"gorm.io/gorm"

	postDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/post"
	"github.com/sce-foundation/sce-portal/internal/post"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.RepositoryAPI {
	return &PostRepository{db: db}
}

func (r *PostRepository) GetAll() ([]*postDatamodel.Post, error) {
	var posts []*postDatamodel.Post
	err := r.db.Order("created_at ASC, id ASC").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) GetByID(id string) (*postDatamodel.Post, error) {
	var p postDatamodel.Post
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Create(p *postDatamodel.Post) error {
	return r.db.Create(p).Error
}

// Update writes all mutable fields; a missing id is a silent no-op.
func (r *PostRepository) Update(p *postDatamodel.Post) error {
	return r.db.Model(&postDatamodel.Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":              p.Title,
		"content":            p.Content,
		"category":           p.Category,
		"required_clearance": p.RequiredClearance,
		"updated_at":         p.UpdatedAt,
	}).Error
}

func (r *PostRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&postDatamodel.Post{}).Error
}

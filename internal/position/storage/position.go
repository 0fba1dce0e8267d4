package storage

import (
	"errors"

	"gorm.io/gorm"

	positionDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/position"
	"github.com/sce-foundation/sce-portal/internal/position"
)

type PositionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) position.RepositoryAPI {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) GetAll() ([]*positionDatamodel.Position, error) {
	var positions []*positionDatamodel.Position
	err := r.db.Order("created_at ASC, id ASC").Find(&positions).Error
	return positions, err
}

func (r *PositionRepository) GetByID(id string) (*positionDatamodel.Position, error) {
	var p positionDatamodel.Position
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PositionRepository) Create(p *positionDatamodel.Position) error {
	return r.db.Create(p).Error
}

// Update writes all mutable fields; a missing id is a silent no-op.
func (r *PositionRepository) Update(p *positionDatamodel.Position) error {
	return r.db.Model(&positionDatamodel.Position{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":            p.Name,
		"description":     p.Description,
		"clearance_level": p.ClearanceLevel,
		"permissions":     p.Permissions,
	}).Error
}

func (r *PositionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&positionDatamodel.Position{}).Error
}

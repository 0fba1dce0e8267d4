package storage

import (
	"errors"

	"gorm.io/gorm"

	objectDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/object"
	"github.com/sce-foundation/sce-portal/internal/object"
)

type ObjectRepository struct {
	db *gorm.DB
}

func NewObjectRepository(db *gorm.DB) object.RepositoryAPI {
	return &ObjectRepository{db: db}
}

func (r *ObjectRepository) GetAll() ([]*objectDatamodel.AnomalousObject, error) {
	var objects []*objectDatamodel.AnomalousObject
	err := r.db.Order("created_at ASC, id ASC").Find(&objects).Error
	return objects, err
}

func (r *ObjectRepository) GetByID(id string) (*objectDatamodel.AnomalousObject, error) {
	var o objectDatamodel.AnomalousObject
	err := r.db.Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *ObjectRepository) Create(o *objectDatamodel.AnomalousObject) error {
	return r.db.Create(o).Error
}

// Update writes all mutable fields; a missing id is a silent no-op.
func (r *ObjectRepository) Update(o *objectDatamodel.AnomalousObject) error {
	return r.db.Model(&objectDatamodel.AnomalousObject{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"code":                   o.Code,
		"name":                   o.Name,
		"classification":         o.Classification,
		"containment_procedures": o.ContainmentProcedures,
		"description":            o.Description,
		"required_clearance":     o.RequiredClearance,
		"updated_at":             o.UpdatedAt,
	}).Error
}

func (r *ObjectRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&objectDatamodel.AnomalousObject{}).Error
}

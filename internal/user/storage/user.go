package storage

import (
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetAll returns users in insertion order.
func (r *UserRepository) GetAll() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("created_at ASC, id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

// Update replaces the mutable fields of an existing record. A missing id is a
// silent no-op, matching the store contract callers must not rely on.
func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"email":           u.Email,
		"username":        u.Username,
		"role":            u.Role,
		"status":          u.Status,
		"clearance_level": u.ClearanceLevel,
	}).Error
}

func (r *UserRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
}

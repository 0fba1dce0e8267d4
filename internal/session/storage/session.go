package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sessionDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/session"
)

// SessionRepository persists the single current-user pointer. Setting a user
// replaces the row, clearing removes it; an absent row means logged out.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Set(userID string) error {
	row := sessionDatamodel.Session{
		Key:    sessionDatamodel.CurrentKey,
		UserID: userID,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&row).Error
}

func (r *SessionRepository) Clear() error {
	return r.db.Where("key = ?", sessionDatamodel.CurrentKey).Delete(&sessionDatamodel.Session{}).Error
}

func (r *SessionRepository) CurrentUserID() (string, error) {
	var row sessionDatamodel.Session
	err := r.db.Where("key = ?", sessionDatamodel.CurrentKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.UserID, nil
}

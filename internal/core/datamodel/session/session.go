package session

import "time"

// CurrentKey is the fixed primary key of the single session row. The store
// keeps zero or one current-user record, mirroring a single-client session.
const CurrentKey = "current"

type Session struct {
	Key       string    `gorm:"primaryKey;column:key"`
	UserID    string    `gorm:"column:user_id;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

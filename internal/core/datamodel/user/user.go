package user

import "time"

type User struct {
	ID             string    `gorm:"primaryKey"`
	Email          string    `gorm:"column:email;uniqueIndex;not null"`
	Username       string    `gorm:"column:username;not null"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	Role           string    `gorm:"column:role;not null"`
	Status         string    `gorm:"column:status;not null"`
	ClearanceLevel int       `gorm:"column:clearance_level;not null;default:1"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

package post

import "time"

type Post struct {
	ID                string    `gorm:"primaryKey"`
	Title             string    `gorm:"column:title;not null"`
	Content           string    `gorm:"column:content"`
	AuthorID          string    `gorm:"column:author_id"`
	AuthorName        string    `gorm:"column:author_name"`
	Category          string    `gorm:"column:category;not null"`
	RequiredClearance int       `gorm:"column:required_clearance;not null;default:1"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Post) TableName() string {
	return "posts"
}

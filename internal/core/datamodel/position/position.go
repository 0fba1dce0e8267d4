package position

import "time"

// Permissions is stored as a JSON array of strings. The list is carried as
// metadata only, nothing in the system enforces entries against operations.
type Position struct {
	ID             string    `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Description    string    `gorm:"column:description"`
	ClearanceLevel int       `gorm:"column:clearance_level;not null;default:1"`
	Permissions    string    `gorm:"column:permissions"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Position) TableName() string {
	return "positions"
}

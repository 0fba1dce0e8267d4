package object

import "time"

type AnomalousObject struct {
	ID                    string    `gorm:"primaryKey"`
	Code                  string    `gorm:"column:code;not null"`
	Name                  string    `gorm:"column:name;not null"`
	Classification        string    `gorm:"column:classification;not null"`
	ContainmentProcedures string    `gorm:"column:containment_procedures"`
	Description           string    `gorm:"column:description"`
	CreatedBy             string    `gorm:"column:created_by"`
	RequiredClearance     int       `gorm:"column:required_clearance;not null;default:1"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AnomalousObject) TableName() string {
	return "sce_objects"
}

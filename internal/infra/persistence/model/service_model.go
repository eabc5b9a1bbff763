package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceModel mirrors the 'services' table.
type ServiceModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SalonID         uuid.UUID `gorm:"type:uuid;not null;index"`
	NameEn          string    `gorm:"type:varchar(200);not null"`
	NameAr          string    `gorm:"type:varchar(200);not null"`
	DescriptionEn   string    `gorm:"type:text"`
	DescriptionAr   string    `gorm:"type:text"`
	DurationMinutes int       `gorm:"not null"`
	Price           float64   `gorm:"not null"`
	Category        string    `gorm:"type:varchar(100);index"`
	ImageURL        string    `gorm:"type:varchar(500)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ServiceModel) TableName() string {
	return "services"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// SalonModel mirrors the 'salons' table. Rating is derived from reviews and
// recomputed on review creation, never written directly by handlers.
type SalonModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	NameEn          string    `gorm:"type:varchar(200);not null"`
	NameAr          string    `gorm:"type:varchar(200);not null"`
	DescriptionEn   string    `gorm:"type:text"`
	DescriptionAr   string    `gorm:"type:text"`
	Address         string    `gorm:"type:varchar(300);not null"`
	City            string    `gorm:"type:varchar(100);not null;index"`
	Phone           string    `gorm:"type:varchar(50);not null"`
	Email           string    `gorm:"type:varchar(255)"`
	Rating          float64   `gorm:"not null;default:0"`
	ImageURL        string    `gorm:"type:varchar(500)"`
	IsVerified      bool      `gorm:"not null;default:false"`
	IsLadiesOnly    bool      `gorm:"not null;default:false"`
	HasPrivateRooms bool      `gorm:"not null;default:false"`
	IsHijabFriendly bool      `gorm:"not null;default:false"`
	PriceRange      string    `gorm:"type:varchar(20)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Services   []ServiceModel   `gorm:"foreignKey:SalonID"`
	Reviews    []ReviewModel    `gorm:"foreignKey:SalonID"`
	Promotions []PromotionModel `gorm:"foreignKey:SalonID"`
}

// TableName explicitly sets the table name for GORM.
func (SalonModel) TableName() string {
	return "salons"
}

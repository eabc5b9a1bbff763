package model

import (
	"time"

	"github.com/google/uuid"
)

// PromotionModel mirrors the 'promotions' table. ServiceIDs is a uuid array
// column; the scope column replaces the legacy "service id 0 = all" sentinel.
type PromotionModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SalonID            uuid.UUID `gorm:"type:uuid;not null;index"`
	TitleEn            string    `gorm:"type:varchar(200);not null"`
	TitleAr            string    `gorm:"type:varchar(200);not null"`
	DescriptionEn      string    `gorm:"type:text"`
	DescriptionAr      string    `gorm:"type:text"`
	DiscountPercentage int       `gorm:"not null"`
	StartDate          time.Time `gorm:"not null"`
	EndDate            time.Time `gorm:"not null"`
	Scope              string    `gorm:"type:varchar(10);not null;default:all"`
	ServiceIDs         string    `gorm:"type:text"` // comma-joined uuid list for the specific scope
	CreatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (PromotionModel) TableName() string {
	return "promotions"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SalonID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceID *uuid.UUID `gorm:"type:uuid"`
	BookingID *uuid.UUID `gorm:"type:uuid"`
	Rating    int        `gorm:"not null"`
	Comment   string     `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

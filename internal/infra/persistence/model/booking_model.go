package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingModel mirrors the 'bookings' table. PointsEarned is fixed at
// creation; status changes only move through the lifecycle table.
type BookingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SalonID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Datetime     time.Time `gorm:"not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:pending;index"`
	Notes        string    `gorm:"type:text"`
	PointsEarned int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}

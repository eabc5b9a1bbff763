// Package model holds the GORM persistence models. Tables and columns are
// snake_case; the mapping to camelCase domain entities happens in the
// repository mappers so the casing mix of the legacy backends never leaks.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username          string    `gorm:"type:varchar(100);unique;not null"`
	Email             string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	FullName          string    `gorm:"type:varchar(200)"`
	Phone             string    `gorm:"type:varchar(50)"`
	Role              string    `gorm:"type:varchar(20);not null;default:customer"`
	LoyaltyPoints     int       `gorm:"not null;default:0"`
	PreferredLanguage string    `gorm:"type:varchar(5);not null;default:en"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Salons        []SalonModel        `gorm:"foreignKey:OwnerID"`
	Bookings      []BookingModel      `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// RefreshTokenModel mirrors the 'refresh_tokens' table.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

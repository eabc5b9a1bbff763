// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies what a user is allowed to do in the marketplace.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleSalonOwner Role = "salon_owner"
	RoleAdmin      Role = "admin"
)

// Language is the user's preferred interface language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// User is the core account entity. Loyalty points are mutated only by
// booking creation; the role does not change after registration.
type User struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	FullName          string    `json:"fullName"`
	Phone             string    `json:"phone,omitempty"`
	Role              Role      `json:"role"`
	LoyaltyPoints     int       `json:"loyaltyPoints"`
	PreferredLanguage Language  `json:"preferredLanguage"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// IsOwner reports whether the user can manage salons.
func (u *User) IsOwner() bool {
	return u.Role == RoleSalonOwner || u.Role == RoleAdmin
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Salon is a tenant business entity offering services. Rating is derived:
// it is always the mean of the salon's review ratings and is recomputed
// whenever a review is created.
type Salon struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"ownerId"`
	NameEn          string    `json:"nameEn"`
	NameAr          string    `json:"nameAr"`
	DescriptionEn   string    `json:"descriptionEn,omitempty"`
	DescriptionAr   string    `json:"descriptionAr,omitempty"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	Rating          float64   `json:"rating"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	IsVerified      bool      `json:"isVerified"`
	IsLadiesOnly    bool      `json:"isLadiesOnly"`
	HasPrivateRooms bool      `json:"hasPrivateRooms"`
	IsHijabFriendly bool      `json:"isHijabFriendly"`
	PriceRange      string    `json:"priceRange,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Populated on detail reads only.
	Services []*Service `json:"services,omitempty"`
	Reviews  []*Review  `json:"reviews,omitempty"`
}

// SalonDetails bundles a salon with its nested collections for detail responses.
type SalonDetails struct {
	Salon    *Salon     `json:"salon"`
	Services []*Service `json:"services"`
	Reviews  []*Review  `json:"reviews"`
}

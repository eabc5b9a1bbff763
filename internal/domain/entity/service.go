package entity

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable offering belonging to exactly one salon.
type Service struct {
	ID              uuid.UUID `json:"id"`
	SalonID         uuid.UUID `json:"salonId"`
	NameEn          string    `json:"nameEn"`
	NameAr          string    `json:"nameAr"`
	DescriptionEn   string    `json:"descriptionEn,omitempty"`
	DescriptionAr   string    `json:"descriptionAr,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	Category        string    `json:"category"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// LoyaltyPointsValue is the number of loyalty points a booking of this
// service earns. The curve is a placeholder carried over from the original
// system: points are derived from the price bracket, fixed once at booking
// creation.
func (s *Service) LoyaltyPointsValue() int {
	if s.Price <= 0 {
		return 0
	}

	return int(s.Price) / 10 * 10
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer rating of a salon, optionally tied to a service or a
// booking. Creating one triggers the salon rating recompute.
type Review struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	SalonID   uuid.UUID  `json:"salonId"`
	ServiceID *uuid.UUID `json:"serviceId,omitempty"`
	BookingID *uuid.UUID `json:"bookingId,omitempty"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// IsTerminal reports whether no further transition is allowed from the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Valid reports whether the status is one of the known lifecycle states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}

	return false
}

// bookingTransitions is the allowed transition table:
// pending -> confirmed|cancelled, confirmed -> completed|cancelled.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransitionTo reports whether the lifecycle permits moving to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

// Booking is a scheduled appointment linking a customer, salon and service.
// PointsEarned is fixed at creation and credited to the user exactly once.
// There is intentionally no time-conflict check between bookings.
type Booking struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"userId"`
	SalonID      uuid.UUID     `json:"salonId"`
	ServiceID    uuid.UUID     `json:"serviceId"`
	Datetime     time.Time     `json:"datetime"`
	Status       BookingStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
	PointsEarned int           `json:"pointsEarned"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// BookingActor identifies who is requesting a status transition.
type BookingActor struct {
	UserID uuid.UUID
	Role   Role
	// OwnsSalon is true when the actor is the owner of the salon the
	// booking belongs to.
	OwnsSalon bool
}

// AuthorizeTransition checks both the transition table and the actor's
// authority over the booking. The owning customer may only cancel their own
// booking; the salon owner may confirm, complete and cancel per the table.
// It returns false with no distinction of cause; callers map a refusal to a
// permission error.
func (b *Booking) AuthorizeTransition(actor BookingActor, target BookingStatus) bool {
	if !b.Status.CanTransitionTo(target) {
		return false
	}

	if actor.UserID == b.UserID && target == BookingCancelled {
		return true
	}

	if actor.OwnsSalon {
		return true
	}

	return actor.Role == RoleAdmin
}

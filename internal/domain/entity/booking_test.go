package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{name: "pending to confirmed", from: BookingPending, to: BookingConfirmed, allowed: true},
		{name: "pending to cancelled", from: BookingPending, to: BookingCancelled, allowed: true},
		{name: "pending to completed skips confirmation", from: BookingPending, to: BookingCompleted, allowed: false},
		{name: "confirmed to completed", from: BookingConfirmed, to: BookingCompleted, allowed: true},
		{name: "confirmed to cancelled", from: BookingConfirmed, to: BookingCancelled, allowed: true},
		{name: "confirmed back to pending", from: BookingConfirmed, to: BookingPending, allowed: false},
		{name: "completed absorbs", from: BookingCompleted, to: BookingCancelled, allowed: false},
		{name: "cancelled absorbs", from: BookingCancelled, to: BookingConfirmed, allowed: false},
		{name: "cancelled stays cancelled", from: BookingCancelled, to: BookingCancelled, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_Valid(t *testing.T) {
	assert.True(t, BookingPending.Valid())
	assert.True(t, BookingCompleted.Valid())
	assert.False(t, BookingStatus("unknown").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBooking_AuthorizeTransition(t *testing.T) {
	customerID := uuid.New()
	ownerID := uuid.New()
	booking := &Booking{UserID: customerID, Status: BookingPending}

	customer := BookingActor{UserID: customerID, Role: RoleCustomer}
	owner := BookingActor{UserID: ownerID, Role: RoleSalonOwner, OwnsSalon: true}
	stranger := BookingActor{UserID: uuid.New(), Role: RoleCustomer}
	admin := BookingActor{UserID: uuid.New(), Role: RoleAdmin}

	// The customer may only cancel their own booking.
	assert.True(t, booking.AuthorizeTransition(customer, BookingCancelled))
	assert.False(t, booking.AuthorizeTransition(customer, BookingConfirmed))

	// The salon owner may act per the transition table.
	assert.True(t, booking.AuthorizeTransition(owner, BookingConfirmed))
	assert.True(t, booking.AuthorizeTransition(owner, BookingCancelled))

	// Anyone else is refused; admins bypass ownership.
	assert.False(t, booking.AuthorizeTransition(stranger, BookingCancelled))
	assert.True(t, booking.AuthorizeTransition(admin, BookingConfirmed))

	// Terminal states absorb regardless of actor.
	done := &Booking{UserID: customerID, Status: BookingCompleted}
	assert.False(t, done.AuthorizeTransition(owner, BookingCancelled))
	assert.False(t, done.AuthorizeTransition(admin, BookingCancelled))
}

func TestService_LoyaltyPointsValue(t *testing.T) {
	assert.Equal(t, 150, (&Service{Price: 150}).LoyaltyPointsValue())
	assert.Equal(t, 150, (&Service{Price: 155.50}).LoyaltyPointsValue())
	assert.Equal(t, 0, (&Service{Price: 5}).LoyaltyPointsValue())
	assert.Equal(t, 0, (&Service{Price: 0}).LoyaltyPointsValue())
	assert.Equal(t, 0, (&Service{Price: -10}).LoyaltyPointsValue())
}

package usecase

import (
	"context"
	"time"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateBookingInput defines the data required to place a booking.
type CreateBookingInput struct {
	SalonID   uuid.UUID
	ServiceID uuid.UUID
	Datetime  time.Time
	Notes     string
}

// BookingUsecase defines the interface for booking lifecycle operations.
type BookingUsecase interface {
	// CreateBooking places a pending booking and credits the loyalty points
	// of the service atomically with the insert. A booking-created event is
	// published after the write commits.
	CreateBooking(ctx context.Context, actor Actor, input *CreateBookingInput) (*entity.Booking, error)

	// UserBookings returns the bookings of the given user, newest first.
	// Non-admin actors may only read their own.
	UserBookings(ctx context.Context, actor Actor, userID uuid.UUID) ([]*entity.Booking, error)

	// OwnerBookings returns bookings across every salon the actor owns.
	OwnerBookings(ctx context.Context, ownerID uuid.UUID) ([]*entity.Booking, error)

	// UpdateBookingStatus applies a lifecycle transition. The transition
	// table and the actor's authority are both enforced; refusals map to a
	// 403. A status-changed event is published after the write commits.
	UpdateBookingStatus(ctx context.Context, actor Actor, bookingID uuid.UUID, status entity.BookingStatus) (*entity.Booking, error)
}

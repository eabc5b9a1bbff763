package repository

import (
	"context"
	"errors"
	"time"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned when no booking matches the lookup.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository defines the standard operations for booking persistence.
type BookingRepository interface {
	// FindByID retrieves a single booking by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// FindByUser retrieves all bookings placed by the user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)

	// FindBySalon retrieves all bookings of the salon, newest first.
	FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Booking, error)

	// FindBySalonBetween retrieves the salon's bookings created inside
	// [from, to), used by analytics and the daily report.
	FindBySalonBetween(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*entity.Booking, error)

	// Create persists a new booking.
	Create(ctx context.Context, booking *entity.Booking) error

	// UpdateStatus persists a status transition. updatedAt is supplied by
	// the caller so the stored row and the returned booking carry the
	// same timestamp. No optimistic lock is taken: two concurrent updates
	// race and the last write wins.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error
}

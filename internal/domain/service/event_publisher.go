package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Booking event kinds consumed by the notification worker.
const (
	BookingEventCreated       = "booking.created"
	BookingEventStatusChanged = "booking.status_changed"
)

// BookingEvent is published after a booking write commits. Publishing is
// fire-and-forget: a publish failure is logged and never rolls back the
// triggering write.
type BookingEvent struct {
	Kind       string    `json:"kind"`
	BookingID  uuid.UUID `json:"bookingId"`
	UserID     uuid.UUID `json:"userId"`
	SalonID    uuid.UUID `json:"salonId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	Status     string    `json:"status"`
	PrevStatus string    `json:"prevStatus,omitempty"`
	Datetime   time.Time `json:"datetime"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher delivers booking events to the notification pipeline.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
	Close() error
}

package repository

import (
	"context"
	"errors"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPromotionNotFound is returned when no promotion matches the lookup.
var ErrPromotionNotFound = errors.New("promotion not found")

// PromotionRepository defines the standard operations for promotion persistence.
type PromotionRepository interface {
	// FindByID retrieves a single promotion by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error)

	// FindBySalon retrieves all promotions of the salon. Active status is
	// computed by the caller at read time, never stored.
	FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Promotion, error)

	// Create persists a new promotion.
	Create(ctx context.Context, promotion *entity.Promotion) error

	// Update modifies an existing promotion.
	Update(ctx context.Context, promotion *entity.Promotion) error

	// Delete removes a promotion, reporting whether anything was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

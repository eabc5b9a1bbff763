package repository

import (
	"context"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// FindByUser retrieves all reviews written by the user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)

	// FindBySalon retrieves all reviews of the salon, newest first.
	FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Review, error)

	// List retrieves every review.
	List(ctx context.Context) ([]*entity.Review, error)

	// Create persists a new review. The salon rating recompute is a
	// separate step (SalonRepository.RecalculateRating) so the usecase can
	// run both under one transaction.
	Create(ctx context.Context, review *entity.Review) error
}

package usecase

import (
	"context"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines the data required to review a salon.
type CreateReviewInput struct {
	SalonID   uuid.UUID
	ServiceID *uuid.UUID
	BookingID *uuid.UUID
	Rating    int
	Comment   string
}

// ReviewUsecase defines the interface for review operations.
type ReviewUsecase interface {
	// ListReviews returns reviews, optionally narrowed to one salon.
	ListReviews(ctx context.Context, salonID *uuid.UUID) ([]*entity.Review, error)

	// CreateReview records a review and recomputes the salon's rating.
	CreateReview(ctx context.Context, actor Actor, input *CreateReviewInput) (*entity.Review, error)
}

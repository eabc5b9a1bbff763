package impl

import (
	"context"
	"log/slog"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	salonRepo  repository.SalonRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ReviewRepo repository.ReviewRepository
	SalonRepo  repository.SalonRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo: params.ReviewRepo,
		salonRepo:  params.SalonRepo,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *reviewService) ListReviews(ctx context.Context, salonID *uuid.UUID) ([]*entity.Review, error) {
	if salonID != nil {
		reviews, err := srv.reviewRepo.FindBySalon(ctx, *salonID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find salon reviews")
		}

		return reviews, nil
	}

	reviews, err := srv.reviewRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// CreateReview records the review, then recomputes the salon rating over the
// full review set so the result is independent of write order.
func (srv *reviewService) CreateReview(ctx context.Context, actor usecase.Actor, input *usecase.CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("rating must be between 1 and 5")
	}

	if _, err := srv.salonRepo.FindByID(ctx, input.SalonID); err != nil {
		if errors.Is(err, repository.ErrSalonNotFound) {
			return nil, domainerrors.ErrSalonNotFound
		}

		return nil, errors.Wrap(err, "failed to find salon for review")
	}

	review := &entity.Review{
		UserID:    actor.UserID,
		SalonID:   input.SalonID,
		ServiceID: input.ServiceID,
		BookingID: input.BookingID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	rating, err := srv.salonRepo.RecalculateRating(ctx, input.SalonID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to recompute salon rating")
	}

	srv.log(ctx).Info("Review created",
		slog.Any("reviewID", review.ID),
		slog.Any("salonID", input.SalonID),
		slog.Float64("salonRating", rating))

	return review, nil
}

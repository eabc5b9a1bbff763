package postgres

import (
	"context"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements repository.ReviewRepository using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// FindByUser retrieves all reviews written by the user.
func (repo *reviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find reviews by user")
	}

	return toReviewDomainSlice(reviewModels), nil
}

// FindBySalon retrieves all reviews of the salon, newest first.
func (repo *reviewRepository) FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel

	if err := repo.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at DESC").
		Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find reviews by salon")
	}

	return toReviewDomainSlice(reviewModels), nil
}

// List retrieves every review.
func (repo *reviewRepository) List(ctx context.Context) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel

	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return toReviewDomainSlice(reviewModels), nil
}

// Create persists a new review.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("referenced user or salon does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required review information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

// --- Mapper functions ---

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:        data.ID,
		UserID:    data.UserID,
		SalonID:   data.SalonID,
		ServiceID: data.ServiceID,
		BookingID: data.BookingID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:        data.ID,
		UserID:    data.UserID,
		SalonID:   data.SalonID,
		ServiceID: data.ServiceID,
		BookingID: data.BookingID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}
}

func toReviewDomainSlice(models []*model.ReviewModel) []*entity.Review {
	reviews := make([]*entity.Review, 0, len(models))
	for _, reviewM := range models {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews
}

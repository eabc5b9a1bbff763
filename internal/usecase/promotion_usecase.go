package usecase

import (
	"context"
	"time"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePromotionInput defines the data required to run a promotion.
type CreatePromotionInput struct {
	SalonID            uuid.UUID
	TitleEn            string
	TitleAr            string
	DescriptionEn      string
	DescriptionAr      string
	DiscountPercentage int
	StartDate          time.Time
	EndDate            time.Time
	Scope              entity.PromotionScope
	ServiceIDs         []uuid.UUID
}

// UpdatePromotionInput carries a partial promotion update. Nil fields are
// untouched.
type UpdatePromotionInput struct {
	TitleEn            *string
	TitleAr            *string
	DescriptionEn      *string
	DescriptionAr      *string
	DiscountPercentage *int
	StartDate          *time.Time
	EndDate            *time.Time
	Scope              *entity.PromotionScope
	ServiceIDs         []uuid.UUID
}

// PromotionUsecase defines the interface for promotion operations.
type PromotionUsecase interface {
	// SalonPromotions returns the salon's promotions with IsActive computed
	// at read time.
	SalonPromotions(ctx context.Context, salonID uuid.UUID) ([]*entity.Promotion, error)

	// CreatePromotion runs a promotion on a salon the actor owns.
	CreatePromotion(ctx context.Context, actor Actor, input *CreatePromotionInput) (*entity.Promotion, error)

	// UpdatePromotion applies a partial update to a promotion the actor owns.
	UpdatePromotion(ctx context.Context, actor Actor, promotionID uuid.UUID, input *UpdatePromotionInput) (*entity.Promotion, error)

	// DeletePromotion removes a promotion the actor owns.
	DeletePromotion(ctx context.Context, actor Actor, promotionID uuid.UUID) error
}

package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// promotionService implements the PromotionUsecase interface.
type promotionService struct {
	promotionRepo repository.PromotionRepository
	salonRepo     repository.SalonRepository
	logger        *slog.Logger
}

// PromotionServiceParams holds dependencies for promotionService, injected by Fx.
type PromotionServiceParams struct {
	fx.In

	PromotionRepo repository.PromotionRepository
	SalonRepo     repository.SalonRepository
	Logger        *slog.Logger
}

// NewPromotionService is the constructor for promotionService.
func NewPromotionService(params PromotionServiceParams) usecase.PromotionUsecase {
	return &promotionService{
		promotionRepo: params.PromotionRepo,
		salonRepo:     params.SalonRepo,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *promotionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SalonPromotions fills IsActive from the clock at read time; active status
// is never persisted.
func (srv *promotionService) SalonPromotions(ctx context.Context, salonID uuid.UUID) ([]*entity.Promotion, error) {
	promotions, err := srv.promotionRepo.FindBySalon(ctx, salonID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find salon promotions")
	}

	now := time.Now()
	for _, promotion := range promotions {
		promotion.IsActive = promotion.ActiveAt(now)
	}

	return promotions, nil
}

func (srv *promotionService) CreatePromotion(ctx context.Context, actor usecase.Actor, input *usecase.CreatePromotionInput) (*entity.Promotion, error) {
	if err := srv.ensureSalonOwnership(ctx, actor, input.SalonID); err != nil {
		return nil, err
	}
	if err := validatePromotionDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if input.DiscountPercentage < 1 || input.DiscountPercentage > 100 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("discount percentage must be between 1 and 100")
	}

	scope := input.Scope
	if scope == "" {
		scope = entity.PromotionScopeAll
	}
	if scope == entity.PromotionScopeSpecific && len(input.ServiceIDs) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("specific scope requires service ids")
	}

	promotion := &entity.Promotion{
		SalonID:            input.SalonID,
		TitleEn:            input.TitleEn,
		TitleAr:            input.TitleAr,
		DescriptionEn:      input.DescriptionEn,
		DescriptionAr:      input.DescriptionAr,
		DiscountPercentage: input.DiscountPercentage,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		Scope:              scope,
		ServiceIDs:         input.ServiceIDs,
	}

	if err := srv.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, errors.Wrap(err, "failed to create promotion")
	}

	promotion.IsActive = promotion.ActiveAt(time.Now())

	srv.log(ctx).Info("Promotion created", slog.Any("promotionID", promotion.ID), slog.Any("salonID", input.SalonID))

	return promotion, nil
}

func (srv *promotionService) UpdatePromotion(ctx context.Context, actor usecase.Actor, promotionID uuid.UUID, input *usecase.UpdatePromotionInput) (*entity.Promotion, error) {
	promotion, err := srv.ownedPromotion(ctx, actor, promotionID)
	if err != nil {
		return nil, err
	}

	applyIfSet(&promotion.TitleEn, input.TitleEn)
	applyIfSet(&promotion.TitleAr, input.TitleAr)
	applyIfSet(&promotion.DescriptionEn, input.DescriptionEn)
	applyIfSet(&promotion.DescriptionAr, input.DescriptionAr)
	applyIfSet(&promotion.DiscountPercentage, input.DiscountPercentage)
	applyIfSet(&promotion.StartDate, input.StartDate)
	applyIfSet(&promotion.EndDate, input.EndDate)
	applyIfSet(&promotion.Scope, input.Scope)
	if input.ServiceIDs != nil {
		promotion.ServiceIDs = input.ServiceIDs
	}

	if err := validatePromotionDates(promotion.StartDate, promotion.EndDate); err != nil {
		return nil, err
	}
	if promotion.DiscountPercentage < 1 || promotion.DiscountPercentage > 100 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("discount percentage must be between 1 and 100")
	}

	if err := srv.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, errors.Wrap(err, "failed to update promotion")
	}

	promotion.IsActive = promotion.ActiveAt(time.Now())

	return promotion, nil
}

func (srv *promotionService) DeletePromotion(ctx context.Context, actor usecase.Actor, promotionID uuid.UUID) error {
	if _, err := srv.ownedPromotion(ctx, actor, promotionID); err != nil {
		return err
	}

	deleted, err := srv.promotionRepo.Delete(ctx, promotionID)
	if err != nil {
		return errors.Wrap(err, "failed to delete promotion")
	}
	if !deleted {
		return domainerrors.ErrPromotionNotFound
	}

	srv.log(ctx).Info("Promotion deleted", slog.Any("promotionID", promotionID))

	return nil
}

func (srv *promotionService) ownedPromotion(ctx context.Context, actor usecase.Actor, promotionID uuid.UUID) (*entity.Promotion, error) {
	promotion, err := srv.promotionRepo.FindByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, domainerrors.ErrPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find promotion")
	}

	if err := srv.ensureSalonOwnership(ctx, actor, promotion.SalonID); err != nil {
		return nil, err
	}

	return promotion, nil
}

func (srv *promotionService) ensureSalonOwnership(ctx context.Context, actor usecase.Actor, salonID uuid.UUID) error {
	salon, err := srv.salonRepo.FindByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, repository.ErrSalonNotFound) {
			return domainerrors.ErrSalonNotFound
		}

		return errors.Wrap(err, "failed to find salon")
	}

	if salon.OwnerID != actor.UserID && !actor.IsAdmin() {
		return domainerrors.ErrNotSalonOwner
	}

	return nil
}

func validatePromotionDates(start, end time.Time) error {
	if end.Before(start) {
		return domainerrors.ErrValidationFailed.WrapMessage("end date must not precede start date")
	}

	return nil
}

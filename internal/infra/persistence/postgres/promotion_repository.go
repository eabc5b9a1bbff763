package postgres

import (
	"context"
	"strings"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// promotionRepository implements repository.PromotionRepository using GORM.
type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository is the constructor for promotionRepository.
func NewPromotionRepository(db *gorm.DB) repository.PromotionRepository {
	return &promotionRepository{db: db}
}

// FindByID retrieves a single promotion by its unique ID.
func (repo *promotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	var promotionM model.PromotionModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&promotionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPromotionNotFound
		}

		return nil, errors.Wrap(err, "failed to find promotion by id")
	}

	return toPromotionDomain(&promotionM), nil
}

// FindBySalon retrieves all promotions of the salon.
func (repo *promotionRepository) FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Promotion, error) {
	var promotionModels []*model.PromotionModel

	if err := repo.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("start_date DESC").
		Find(&promotionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find promotions by salon")
	}

	promotions := make([]*entity.Promotion, 0, len(promotionModels))
	for _, promotionM := range promotionModels {
		promotions = append(promotions, toPromotionDomain(promotionM))
	}

	return promotions, nil
}

// Create persists a new promotion.
func (repo *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	promotionM := fromPromotionDomain(promotion)

	if err := repo.db.WithContext(ctx).Create(promotionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrSalonNotFound.WrapMessage("salon does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required promotion information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create promotion")
	}

	promotion.ID = promotionM.ID
	promotion.CreatedAt = promotionM.CreatedAt

	return nil
}

// Update modifies an existing promotion.
func (repo *promotionRepository) Update(ctx context.Context, promotion *entity.Promotion) error {
	promotionM := fromPromotionDomain(promotion)

	if err := repo.db.WithContext(ctx).Save(promotionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update promotion")
	}

	return nil
}

// Delete removes a promotion, reporting whether anything was deleted.
func (repo *promotionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PromotionModel{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete promotion")
	}

	return result.RowsAffected > 0, nil
}

// --- Mapper functions ---

func toPromotionDomain(data *model.PromotionModel) *entity.Promotion {
	if data == nil {
		return nil
	}

	return &entity.Promotion{
		ID:                 data.ID,
		SalonID:            data.SalonID,
		TitleEn:            data.TitleEn,
		TitleAr:            data.TitleAr,
		DescriptionEn:      data.DescriptionEn,
		DescriptionAr:      data.DescriptionAr,
		DiscountPercentage: data.DiscountPercentage,
		StartDate:          data.StartDate,
		EndDate:            data.EndDate,
		Scope:              entity.PromotionScope(data.Scope),
		ServiceIDs:         splitServiceIDs(data.ServiceIDs),
		CreatedAt:          data.CreatedAt,
	}
}

func fromPromotionDomain(data *entity.Promotion) *model.PromotionModel {
	if data == nil {
		return nil
	}

	return &model.PromotionModel{
		ID:                 data.ID,
		SalonID:            data.SalonID,
		TitleEn:            data.TitleEn,
		TitleAr:            data.TitleAr,
		DescriptionEn:      data.DescriptionEn,
		DescriptionAr:      data.DescriptionAr,
		DiscountPercentage: data.DiscountPercentage,
		StartDate:          data.StartDate,
		EndDate:            data.EndDate,
		Scope:              string(data.Scope),
		ServiceIDs:         joinServiceIDs(data.ServiceIDs),
		CreatedAt:          data.CreatedAt,
	}
}

func splitServiceIDs(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids
}

func joinServiceIDs(ids []uuid.UUID) string {
	if len(ids) == 0 {
		return ""
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}

	return strings.Join(parts, ",")
}

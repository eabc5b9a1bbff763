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

// serviceRepository implements repository.ServiceRepository using GORM.
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository is the constructor for serviceRepository.
func NewServiceRepository(db *gorm.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

// FindByID retrieves a single service by its unique ID.
func (repo *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var serviceM model.ServiceModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&serviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service by id")
	}

	return toServiceDomain(&serviceM), nil
}

// FindBySalon retrieves all services belonging to the salon.
func (repo *serviceRepository) FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Service, error) {
	var serviceModels []*model.ServiceModel

	if err := repo.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at").
		Find(&serviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find services by salon")
	}

	return toServiceDomainSlice(serviceModels), nil
}

// List retrieves every service across salons.
func (repo *serviceRepository) List(ctx context.Context) ([]*entity.Service, error) {
	var serviceModels []*model.ServiceModel

	if err := repo.db.WithContext(ctx).Order("created_at").Find(&serviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list services")
	}

	return toServiceDomainSlice(serviceModels), nil
}

// Create persists a new service.
func (repo *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	serviceM := fromServiceDomain(service)

	if err := repo.db.WithContext(ctx).Create(serviceM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrSalonNotFound.WrapMessage("salon does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required service information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create service")
	}

	service.ID = serviceM.ID
	service.CreatedAt = serviceM.CreatedAt
	service.UpdatedAt = serviceM.UpdatedAt

	return nil
}

// Update modifies an existing service.
func (repo *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	serviceM := fromServiceDomain(service)

	if err := repo.db.WithContext(ctx).Save(serviceM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update service")
	}

	service.UpdatedAt = serviceM.UpdatedAt

	return nil
}

// Delete removes a service, reporting whether anything was deleted.
func (repo *serviceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ServiceModel{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete service")
	}

	return result.RowsAffected > 0, nil
}

// --- Mapper functions ---

func toServiceDomain(data *model.ServiceModel) *entity.Service {
	if data == nil {
		return nil
	}

	return &entity.Service{
		ID:              data.ID,
		SalonID:         data.SalonID,
		NameEn:          data.NameEn,
		NameAr:          data.NameAr,
		DescriptionEn:   data.DescriptionEn,
		DescriptionAr:   data.DescriptionAr,
		DurationMinutes: data.DurationMinutes,
		Price:           data.Price,
		Category:        data.Category,
		ImageURL:        data.ImageURL,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromServiceDomain(data *entity.Service) *model.ServiceModel {
	if data == nil {
		return nil
	}

	return &model.ServiceModel{
		ID:              data.ID,
		SalonID:         data.SalonID,
		NameEn:          data.NameEn,
		NameAr:          data.NameAr,
		DescriptionEn:   data.DescriptionEn,
		DescriptionAr:   data.DescriptionAr,
		DurationMinutes: data.DurationMinutes,
		Price:           data.Price,
		Category:        data.Category,
		ImageURL:        data.ImageURL,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toServiceDomainSlice(models []*model.ServiceModel) []*entity.Service {
	services := make([]*entity.Service, 0, len(models))
	for _, serviceM := range models {
		services = append(services, toServiceDomain(serviceM))
	}

	return services
}

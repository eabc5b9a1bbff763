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

// serviceCatalogService implements the ServiceUsecase interface.
type serviceCatalogService struct {
	serviceRepo repository.ServiceRepository
	salonRepo   repository.SalonRepository
	logger      *slog.Logger
}

// ServiceCatalogParams holds dependencies for serviceCatalogService, injected by Fx.
type ServiceCatalogParams struct {
	fx.In

	ServiceRepo repository.ServiceRepository
	SalonRepo   repository.SalonRepository
	Logger      *slog.Logger
}

// NewServiceCatalogService is the constructor for serviceCatalogService.
func NewServiceCatalogService(params ServiceCatalogParams) usecase.ServiceUsecase {
	return &serviceCatalogService{
		serviceRepo: params.ServiceRepo,
		salonRepo:   params.SalonRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *serviceCatalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *serviceCatalogService) ListServices(ctx context.Context) ([]*entity.Service, error) {
	services, err := srv.serviceRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list services")
	}

	return services, nil
}

func (srv *serviceCatalogService) SalonServices(ctx context.Context, salonID uuid.UUID) ([]*entity.Service, error) {
	services, err := srv.serviceRepo.FindBySalon(ctx, salonID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find salon services")
	}

	return services, nil
}

func (srv *serviceCatalogService) OwnerServices(ctx context.Context, ownerID uuid.UUID) ([]*entity.Service, error) {
	salons, err := srv.salonRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner salons")
	}

	var services []*entity.Service
	for _, salon := range salons {
		salonServices, err := srv.serviceRepo.FindBySalon(ctx, salon.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find salon services")
		}
		services = append(services, salonServices...)
	}

	return services, nil
}

func (srv *serviceCatalogService) CreateService(ctx context.Context, actor usecase.Actor, input *usecase.CreateServiceInput) (*entity.Service, error) {
	if err := srv.ensureSalonOwnership(ctx, actor, input.SalonID); err != nil {
		return nil, err
	}
	if err := validateServiceDuration(input.DurationMinutes); err != nil {
		return nil, err
	}

	svc := &entity.Service{
		SalonID:         input.SalonID,
		NameEn:          input.NameEn,
		NameAr:          input.NameAr,
		DescriptionEn:   input.DescriptionEn,
		DescriptionAr:   input.DescriptionAr,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		Category:        input.Category,
		ImageURL:        input.ImageURL,
	}

	if err := srv.serviceRepo.Create(ctx, svc); err != nil {
		return nil, errors.Wrap(err, "failed to create service")
	}

	srv.log(ctx).Info("Service created", slog.Any("serviceID", svc.ID), slog.Any("salonID", svc.SalonID))

	return svc, nil
}

func (srv *serviceCatalogService) UpdateService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID, input *usecase.UpdateServiceInput) (*entity.Service, error) {
	svc, err := srv.ownedService(ctx, actor, serviceID)
	if err != nil {
		return nil, err
	}

	applyIfSet(&svc.NameEn, input.NameEn)
	applyIfSet(&svc.NameAr, input.NameAr)
	applyIfSet(&svc.DescriptionEn, input.DescriptionEn)
	applyIfSet(&svc.DescriptionAr, input.DescriptionAr)
	applyIfSet(&svc.DurationMinutes, input.DurationMinutes)
	applyIfSet(&svc.Price, input.Price)
	applyIfSet(&svc.Category, input.Category)
	applyIfSet(&svc.ImageURL, input.ImageURL)

	if err := validateServiceDuration(svc.DurationMinutes); err != nil {
		return nil, err
	}

	if err := srv.serviceRepo.Update(ctx, svc); err != nil {
		return nil, errors.Wrap(err, "failed to update service")
	}

	return svc, nil
}

func (srv *serviceCatalogService) DeleteService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) error {
	if _, err := srv.ownedService(ctx, actor, serviceID); err != nil {
		return err
	}

	deleted, err := srv.serviceRepo.Delete(ctx, serviceID)
	if err != nil {
		return errors.Wrap(err, "failed to delete service")
	}
	if !deleted {
		return domainerrors.ErrServiceNotFound
	}

	srv.log(ctx).Info("Service deleted", slog.Any("serviceID", serviceID))

	return nil
}

// validateServiceDuration rejects non-positive durations; a service always
// takes a whole number of minutes.
func validateServiceDuration(minutes int) error {
	if minutes <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("duration must be a positive number of minutes")
	}

	return nil
}

func (srv *serviceCatalogService) ownedService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID) (*entity.Service, error) {
	svc, err := srv.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, domainerrors.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service")
	}

	if err := srv.ensureSalonOwnership(ctx, actor, svc.SalonID); err != nil {
		return nil, err
	}

	return svc, nil
}

func (srv *serviceCatalogService) ensureSalonOwnership(ctx context.Context, actor usecase.Actor, salonID uuid.UUID) error {
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

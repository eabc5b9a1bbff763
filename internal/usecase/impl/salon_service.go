package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/domain/service"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// salonService implements the SalonUsecase interface.
type salonService struct {
	salonRepo   repository.SalonRepository
	serviceRepo repository.ServiceRepository
	reviewRepo  repository.ReviewRepository
	imageStore  service.ImageStore
	logger      *slog.Logger
}

// SalonServiceParams holds dependencies for salonService, injected by Fx.
type SalonServiceParams struct {
	fx.In

	SalonRepo   repository.SalonRepository
	ServiceRepo repository.ServiceRepository
	ReviewRepo  repository.ReviewRepository
	ImageStore  service.ImageStore
	Logger      *slog.Logger
}

// NewSalonService is the constructor for salonService.
func NewSalonService(params SalonServiceParams) usecase.SalonUsecase {
	return &salonService{
		salonRepo:   params.SalonRepo,
		serviceRepo: params.ServiceRepo,
		reviewRepo:  params.ReviewRepo,
		imageStore:  params.ImageStore,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *salonService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *salonService) ListSalons(ctx context.Context, filter repository.SalonFilter) ([]*entity.Salon, error) {
	salons, err := srv.salonRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list salons")
	}

	return salons, nil
}

// GetSalon loads the salon with its services and reviews nested. The three
// reads are independent; a torn read across them is acceptable.
func (srv *salonService) GetSalon(ctx context.Context, id uuid.UUID) (*entity.SalonDetails, error) {
	salon, err := srv.salonRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSalonNotFound) {
			return nil, domainerrors.ErrSalonNotFound
		}

		return nil, errors.Wrap(err, "failed to find salon")
	}

	services, err := srv.serviceRepo.FindBySalon(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load salon services")
	}

	reviews, err := srv.reviewRepo.FindBySalon(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load salon reviews")
	}

	return &entity.SalonDetails{
		Salon:    salon,
		Services: services,
		Reviews:  reviews,
	}, nil
}

func (srv *salonService) CreateSalon(ctx context.Context, actor usecase.Actor, input *usecase.CreateSalonInput) (*entity.Salon, error) {
	if actor.Role != entity.RoleSalonOwner && !actor.IsAdmin() {
		return nil, domainerrors.ErrNotSalonOwner.WrapMessage("only salon owners may open a salon")
	}

	salon := &entity.Salon{
		OwnerID:         actor.UserID,
		NameEn:          input.NameEn,
		NameAr:          input.NameAr,
		DescriptionEn:   input.DescriptionEn,
		DescriptionAr:   input.DescriptionAr,
		Address:         input.Address,
		City:            input.City,
		Phone:           input.Phone,
		Email:           input.Email,
		PriceRange:      input.PriceRange,
		IsLadiesOnly:    input.IsLadiesOnly,
		HasPrivateRooms: input.HasPrivateRooms,
		IsHijabFriendly: input.IsHijabFriendly,
	}

	if err := srv.salonRepo.Create(ctx, salon); err != nil {
		return nil, errors.Wrap(err, "failed to create salon")
	}

	srv.log(ctx).Info("Salon created", slog.Any("salonID", salon.ID), slog.Any("ownerID", actor.UserID))

	return salon, nil
}

func (srv *salonService) UpdateSalon(ctx context.Context, actor usecase.Actor, salonID uuid.UUID, input *usecase.UpdateSalonInput) (*entity.Salon, error) {
	salon, err := srv.ownedSalon(ctx, actor, salonID)
	if err != nil {
		return nil, err
	}

	applyIfSet(&salon.NameEn, input.NameEn)
	applyIfSet(&salon.NameAr, input.NameAr)
	applyIfSet(&salon.DescriptionEn, input.DescriptionEn)
	applyIfSet(&salon.DescriptionAr, input.DescriptionAr)
	applyIfSet(&salon.Address, input.Address)
	applyIfSet(&salon.City, input.City)
	applyIfSet(&salon.Phone, input.Phone)
	applyIfSet(&salon.Email, input.Email)
	applyIfSet(&salon.PriceRange, input.PriceRange)
	applyIfSet(&salon.IsLadiesOnly, input.IsLadiesOnly)
	applyIfSet(&salon.HasPrivateRooms, input.HasPrivateRooms)
	applyIfSet(&salon.IsHijabFriendly, input.IsHijabFriendly)

	if err := srv.salonRepo.Update(ctx, salon); err != nil {
		return nil, errors.Wrap(err, "failed to update salon")
	}

	return salon, nil
}

func (srv *salonService) OwnerSalons(ctx context.Context, ownerID uuid.UUID) ([]*entity.Salon, error) {
	salons, err := srv.salonRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner salons")
	}

	return salons, nil
}

func (srv *salonService) UploadSalonImage(ctx context.Context, actor usecase.Actor, salonID uuid.UUID, contentType string, r io.Reader) (*entity.Salon, error) {
	salon, err := srv.ownedSalon(ctx, actor, salonID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("salons/%s/image", salonID)
	url, err := srv.imageStore.Save(ctx, key, contentType, r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store salon image")
	}

	salon.ImageURL = url
	if err := srv.salonRepo.Update(ctx, salon); err != nil {
		return nil, errors.Wrap(err, "failed to record salon image url")
	}

	srv.log(ctx).Info("Salon image uploaded", slog.Any("salonID", salonID))

	return salon, nil
}

// ownedSalon loads the salon and enforces that the actor owns it or is admin.
func (srv *salonService) ownedSalon(ctx context.Context, actor usecase.Actor, salonID uuid.UUID) (*entity.Salon, error) {
	salon, err := srv.salonRepo.FindByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, repository.ErrSalonNotFound) {
			return nil, domainerrors.ErrSalonNotFound
		}

		return nil, errors.Wrap(err, "failed to find salon")
	}

	if salon.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, domainerrors.ErrNotSalonOwner
	}

	return salon, nil
}

// applyIfSet copies a PATCH field onto the target when present.
func applyIfSet[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

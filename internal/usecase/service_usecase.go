package usecase

import (
	"context"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateServiceInput defines the data required to add a bookable service.
type CreateServiceInput struct {
	SalonID         uuid.UUID
	NameEn          string
	NameAr          string
	DescriptionEn   string
	DescriptionAr   string
	DurationMinutes int
	Price           float64
	Category        string
	ImageURL        string
}

// UpdateServiceInput carries a partial service update. Nil fields are untouched.
type UpdateServiceInput struct {
	NameEn          *string
	NameAr          *string
	DescriptionEn   *string
	DescriptionAr   *string
	DurationMinutes *int
	Price           *float64
	Category        *string
	ImageURL        *string
}

// ServiceUsecase defines the interface for service catalog operations.
type ServiceUsecase interface {
	// ListServices returns every service across salons.
	ListServices(ctx context.Context) ([]*entity.Service, error)

	// SalonServices returns the services offered by one salon.
	SalonServices(ctx context.Context, salonID uuid.UUID) ([]*entity.Service, error)

	// OwnerServices returns the services across all salons the actor owns.
	OwnerServices(ctx context.Context, ownerID uuid.UUID) ([]*entity.Service, error)

	// CreateService adds a service to a salon the actor owns.
	CreateService(ctx context.Context, actor Actor, input *CreateServiceInput) (*entity.Service, error)

	// UpdateService applies a partial update to a service the actor owns.
	UpdateService(ctx context.Context, actor Actor, serviceID uuid.UUID, input *UpdateServiceInput) (*entity.Service, error)

	// DeleteService removes a service the actor owns.
	DeleteService(ctx context.Context, actor Actor, serviceID uuid.UUID) error
}

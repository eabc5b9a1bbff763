package usecase

import (
	"context"
	"io"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of a usecase operation.
type Actor struct {
	UserID uuid.UUID
	Role   entity.Role
}

// IsAdmin reports whether the actor bypasses ownership checks.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// CreateSalonInput defines the data required to open a new salon.
type CreateSalonInput struct {
	NameEn          string
	NameAr          string
	DescriptionEn   string
	DescriptionAr   string
	Address         string
	City            string
	Phone           string
	Email           string
	PriceRange      string
	IsLadiesOnly    bool
	HasPrivateRooms bool
	IsHijabFriendly bool
}

// UpdateSalonInput carries a partial salon update. Nil fields are untouched.
type UpdateSalonInput struct {
	NameEn          *string
	NameAr          *string
	DescriptionEn   *string
	DescriptionAr   *string
	Address         *string
	City            *string
	Phone           *string
	Email           *string
	PriceRange      *string
	IsLadiesOnly    *bool
	HasPrivateRooms *bool
	IsHijabFriendly *bool
}

// SalonUsecase defines the interface for salon management operations.
type SalonUsecase interface {
	// ListSalons returns salons matching the filter, newest first.
	ListSalons(ctx context.Context, filter repository.SalonFilter) ([]*entity.Salon, error)

	// GetSalon returns the salon with its services and reviews nested.
	GetSalon(ctx context.Context, id uuid.UUID) (*entity.SalonDetails, error)

	// CreateSalon opens a salon owned by the actor. Only salon owners and
	// admins may create one.
	CreateSalon(ctx context.Context, actor Actor, input *CreateSalonInput) (*entity.Salon, error)

	// UpdateSalon applies a partial update. The actor must own the salon.
	UpdateSalon(ctx context.Context, actor Actor, salonID uuid.UUID, input *UpdateSalonInput) (*entity.Salon, error)

	// OwnerSalons returns the salons owned by the actor. An empty result is
	// not an error; the handler renders it as null data.
	OwnerSalons(ctx context.Context, ownerID uuid.UUID) ([]*entity.Salon, error)

	// UploadSalonImage stores an image for the salon and records its URL.
	UploadSalonImage(ctx context.Context, actor Actor, salonID uuid.UUID, contentType string, r io.Reader) (*entity.Salon, error)
}

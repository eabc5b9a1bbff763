package repository

import (
	"context"
	"errors"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrServiceNotFound is returned when no service matches the lookup.
var ErrServiceNotFound = errors.New("service not found")

// ServiceRepository defines the standard operations for service persistence.
type ServiceRepository interface {
	// FindByID retrieves a single service by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)

	// FindBySalon retrieves all services belonging to the salon.
	FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Service, error)

	// List retrieves every service across salons.
	List(ctx context.Context) ([]*entity.Service, error)

	// Create persists a new service.
	Create(ctx context.Context, service *entity.Service) error

	// Update modifies an existing service.
	Update(ctx context.Context, service *entity.Service) error

	// Delete removes a service, reporting whether anything was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

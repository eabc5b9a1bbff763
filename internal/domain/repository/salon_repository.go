package repository

import (
	"context"
	"errors"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSalonNotFound is returned when no salon matches the lookup.
var ErrSalonNotFound = errors.New("salon not found")

// SalonFilter narrows a salon listing. Nil pointer fields are ignored;
// present fields are ANDed together.
type SalonFilter struct {
	IsLadiesOnly    *bool
	HasPrivateRooms *bool
	IsHijabFriendly *bool
	City            string

	// IDs restricts results to the given salons when non-nil. The search
	// usecase resolves a service category into this allowlist.
	IDs []uuid.UUID
}

// SalonSearchParams drives the free-text salon search endpoint.
type SalonSearchParams struct {
	Query     string
	Filter    SalonFilter
	SortBy    string // "rating" | "name" | "createdAt"
	SortOrder string // "asc" | "desc"
	Page      int    // 1-based
	Limit     int
}

// SalonSearchResult is one page of search hits plus the total match count.
type SalonSearchResult struct {
	Salons []*entity.Salon
	Total  int
	Page   int
	Limit  int
}

// SalonRepository defines the standard operations for salon persistence.
type SalonRepository interface {
	// FindByID retrieves a single salon by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Salon, error)

	// List retrieves salons matching the filter.
	List(ctx context.Context, filter SalonFilter) ([]*entity.Salon, error)

	// FindByOwner retrieves all salons owned by the given user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Salon, error)

	// Create persists a new salon.
	Create(ctx context.Context, salon *entity.Salon) error

	// Update modifies an existing salon.
	Update(ctx context.Context, salon *entity.Salon) error

	// RecalculateRating recomputes and persists the salon's derived rating
	// from its reviews, returning the new value. Each backend documents its
	// own rounding contract.
	RecalculateRating(ctx context.Context, salonID uuid.UUID) (float64, error)

	// Search performs free-text matching over the bilingual names plus
	// filter flags, with sorting and pagination.
	Search(ctx context.Context, params SalonSearchParams) (*SalonSearchResult, error)
}

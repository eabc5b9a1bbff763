package usecase

import (
	"context"

	"lamsa/internal/domain/repository"
)

// SearchInput drives the salon search endpoint.
type SearchInput struct {
	Query           string
	ServiceCategory string
	LadiesOnly      *bool
	PrivateRoom     *bool
	HijabFriendly   *bool
	City            string
	SortBy          string
	SortOrder       string
	Page            int
	Limit           int
}

// SearchUsecase defines the interface for salon search.
type SearchUsecase interface {
	// SearchSalons runs a free-text search with filters and pagination.
	// A non-empty query is logged asynchronously for analytics; logging
	// never delays or fails the search.
	SearchSalons(ctx context.Context, input *SearchInput) (*repository.SalonSearchResult, error)
}

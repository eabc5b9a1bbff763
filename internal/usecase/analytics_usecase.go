package usecase

import (
	"context"
	"time"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// AnalyticsUsecase defines the interface for the owner dashboard aggregates.
type AnalyticsUsecase interface {
	// OwnerAnalytics computes one aggregate per salon the owner runs over
	// [from, to). Zero times default to the trailing 30 days.
	OwnerAnalytics(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*entity.SalonAnalytics, error)
}

package repository

import (
	"context"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// SearchLogRepository records free-text search terms for analytics.
type SearchLogRepository interface {
	// Create persists one search term occurrence.
	Create(ctx context.Context, log *entity.SearchLog) error
}

// ReportLogRepository is the idempotency ledger of the daily report.
type ReportLogRepository interface {
	// AlreadySent reports whether a report was recorded for the salon on
	// the given date (YYYY-MM-DD).
	AlreadySent(ctx context.Context, salonID uuid.UUID, reportDate string) (bool, error)

	// MarkSent records that the report went out.
	MarkSent(ctx context.Context, log *entity.ReportLog) error
}

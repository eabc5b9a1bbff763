package usecase

import (
	"context"
	"time"
)

// ReportUsecase defines the interface for the scheduled daily report.
type ReportUsecase interface {
	// RunDailyReports aggregates the previous day's bookings per salon and
	// emails each owner. A date+salon ledger makes re-runs idempotent:
	// already-sent reports are skipped, never re-sent. It returns the
	// number of reports sent.
	RunDailyReports(ctx context.Context, now time.Time) (int, error)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// SearchLogModel mirrors the 'search_logs' table.
type SearchLogModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Query     string    `gorm:"type:varchar(300);not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SearchLogModel) TableName() string {
	return "search_logs"
}

// ReportLogModel mirrors the 'report_logs' table. The (salon_id, report_date)
// unique index is the idempotency guard against double-sent daily reports.
type ReportLogModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SalonID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_report_salon_date"`
	ReportDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_report_salon_date"`
	SentAt     time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (ReportLogModel) TableName() string {
	return "report_logs"
}

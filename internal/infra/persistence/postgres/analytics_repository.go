package postgres

import (
	"context"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// searchLogRepository implements repository.SearchLogRepository using GORM.
type searchLogRepository struct {
	db *gorm.DB
}

// NewSearchLogRepository is the constructor for searchLogRepository.
func NewSearchLogRepository(db *gorm.DB) repository.SearchLogRepository {
	return &searchLogRepository{db: db}
}

// Create persists one search term occurrence.
func (repo *searchLogRepository) Create(ctx context.Context, log *entity.SearchLog) error {
	logM := &model.SearchLogModel{
		ID:        log.ID,
		Query:     log.Query,
		CreatedAt: log.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to record search log")
	}

	log.ID = logM.ID
	log.CreatedAt = logM.CreatedAt

	return nil
}

// reportLogRepository implements repository.ReportLogRepository using GORM.
type reportLogRepository struct {
	db *gorm.DB
}

// NewReportLogRepository is the constructor for reportLogRepository.
func NewReportLogRepository(db *gorm.DB) repository.ReportLogRepository {
	return &reportLogRepository{db: db}
}

// AlreadySent reports whether a report was recorded for the salon on the date.
func (repo *reportLogRepository) AlreadySent(ctx context.Context, salonID uuid.UUID, reportDate string) (bool, error) {
	var count int64

	err := repo.db.WithContext(ctx).
		Model(&model.ReportLogModel{}).
		Where("salon_id = ? AND report_date = ?", salonID, reportDate).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check report log")
	}

	return count > 0, nil
}

// MarkSent records that the report went out. The unique (salon_id, report_date)
// index turns a concurrent double-send into a visible conflict.
func (repo *reportLogRepository) MarkSent(ctx context.Context, log *entity.ReportLog) error {
	logM := &model.ReportLogModel{
		ID:         log.ID,
		SalonID:    log.SalonID,
		ReportDate: log.ReportDate,
		SentAt:     log.SentAt,
	}

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("report already recorded for this salon and date")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record report log")
	}

	log.ID = logM.ID

	return nil
}

package firestore

import (
	"context"
	"fmt"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// searchLogRepository implements repository.SearchLogRepository on Firestore.
type searchLogRepository struct {
	client *firestore.Client
}

// NewSearchLogRepository is the constructor for searchLogRepository.
func NewSearchLogRepository(client *firestore.Client) repository.SearchLogRepository {
	return &searchLogRepository{client: client}
}

func (repo *searchLogRepository) Create(ctx context.Context, log *entity.SearchLog) error {
	log.ID = newDocID(log.ID)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	doc := &searchLogDoc{
		ID:        log.ID.String(),
		Query:     log.Query,
		CreatedAt: log.CreatedAt,
	}
	if _, err := repo.client.Collection(colSearchLogs).Doc(doc.ID).Create(ctx, doc); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to record search log")
	}

	return nil
}

// reportLogRepository implements repository.ReportLogRepository on Firestore.
// The document ID is "<salonID>_<date>" so a concurrent double-send fails the
// second Create.
type reportLogRepository struct {
	client *firestore.Client
}

// NewReportLogRepository is the constructor for reportLogRepository.
func NewReportLogRepository(client *firestore.Client) repository.ReportLogRepository {
	return &reportLogRepository{client: client}
}

func reportLogDocID(salonID uuid.UUID, reportDate string) string {
	return fmt.Sprintf("%s_%s", salonID, reportDate)
}

func (repo *reportLogRepository) AlreadySent(ctx context.Context, salonID uuid.UUID, reportDate string) (bool, error) {
	_, err := repo.client.Collection(colReportLogs).Doc(reportLogDocID(salonID, reportDate)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to check report log")
	}

	return true, nil
}

func (repo *reportLogRepository) MarkSent(ctx context.Context, log *entity.ReportLog) error {
	log.ID = newDocID(log.ID)

	doc := &reportLogDoc{
		ID:         log.ID.String(),
		SalonID:    log.SalonID.String(),
		ReportDate: log.ReportDate,
		SentAt:     log.SentAt,
	}
	docID := reportLogDocID(log.SalonID, log.ReportDate)
	if _, err := repo.client.Collection(colReportLogs).Doc(docID).Create(ctx, doc); err != nil {
		if isAlreadyExists(err) {
			return domainerrors.ErrConflict.WrapMessage("report already recorded for this salon and date")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record report log")
	}

	return nil
}

package memory

import (
	"context"
	"fmt"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

type searchLogRepository struct {
	store *Store
}

// NewSearchLogRepository is the constructor for searchLogRepository.
func NewSearchLogRepository(store *Store) repository.SearchLogRepository {
	return &searchLogRepository{store: store}
}

func (repo *searchLogRepository) Create(_ context.Context, log *entity.SearchLog) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	log.ID = ensureID(log.ID)
	log.CreatedAt = nowOr(log.CreatedAt)
	repo.store.searchLogs = append(repo.store.searchLogs, *log)

	return nil
}

// SearchLogs returns a copy of the recorded search terms, oldest first.
// Exported for tests and the mock-data analytics view.
func (s *Store) SearchLogs() []entity.SearchLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.SearchLog, len(s.searchLogs))
	copy(out, s.searchLogs)

	return out
}

type reportLogRepository struct {
	store *Store
}

// NewReportLogRepository is the constructor for reportLogRepository.
func NewReportLogRepository(store *Store) repository.ReportLogRepository {
	return &reportLogRepository{store: store}
}

func reportLogKey(salonID uuid.UUID, reportDate string) string {
	return fmt.Sprintf("%s_%s", salonID, reportDate)
}

func (repo *reportLogRepository) AlreadySent(_ context.Context, salonID uuid.UUID, reportDate string) (bool, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	_, ok := repo.store.reportLogs[reportLogKey(salonID, reportDate)]

	return ok, nil
}

func (repo *reportLogRepository) MarkSent(_ context.Context, log *entity.ReportLog) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	key := reportLogKey(log.SalonID, log.ReportDate)
	if _, ok := repo.store.reportLogs[key]; ok {
		return domainerrors.ErrConflict.WrapMessage("report already recorded for this salon and date")
	}

	log.ID = ensureID(log.ID)
	repo.store.reportLogs[key] = *log

	return nil
}

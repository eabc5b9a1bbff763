// Package memory is the in-process persistence adapter. It backs the
// mock-data development mode and the usecase tests, so its semantics mirror
// the relational adapter: same defaults, same sentinels, one-decimal rating
// rounding excepted (it follows the relational contract).
package memory

import (
	"context"
	"sync"
	"time"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

// Store is the shared state behind every memory repository. One mutex guards
// all maps; the adapter is meant for development and tests, not throughput.
type Store struct {
	mu sync.RWMutex

	users         map[uuid.UUID]entity.User
	salons        map[uuid.UUID]entity.Salon
	services      map[uuid.UUID]entity.Service
	bookings      map[uuid.UUID]entity.Booking
	reviews       map[uuid.UUID]entity.Review
	promotions    map[uuid.UUID]entity.Promotion
	refreshTokens map[uuid.UUID]entity.RefreshToken
	searchLogs    []entity.SearchLog
	reportLogs    map[string]entity.ReportLog // key: salonID_date
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[uuid.UUID]entity.User),
		salons:        make(map[uuid.UUID]entity.Salon),
		services:      make(map[uuid.UUID]entity.Service),
		bookings:      make(map[uuid.UUID]entity.Booking),
		reviews:       make(map[uuid.UUID]entity.Review),
		promotions:    make(map[uuid.UUID]entity.Promotion),
		refreshTokens: make(map[uuid.UUID]entity.RefreshToken),
		reportLogs:    make(map[string]entity.ReportLog),
	}
}

func ensureID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}

	return id
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}

	return t
}

// transactionManager satisfies the domain contract without real transactions:
// operations apply immediately and a returned error does not roll them back.
type transactionManager struct {
	store *Store
}

type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.store)
}

func (f *repositoryFactory) SalonRepo() repository.SalonRepository {
	return NewSalonRepository(f.store)
}

func (f *repositoryFactory) BookingRepo() repository.BookingRepository {
	return NewBookingRepository(f.store)
}

func (f *repositoryFactory) ReviewRepo() repository.ReviewRepository {
	return NewReviewRepository(f.store)
}

// NewTransactionManager is the constructor for transactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs the given function against the shared store.
func (tm *transactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(&repositoryFactory{store: tm.store})
}

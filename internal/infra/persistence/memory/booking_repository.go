package memory

import (
	"context"
	"sort"
	"time"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

type bookingRepository struct {
	store *Store
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(store *Store) repository.BookingRepository {
	return &bookingRepository{store: store}
}

func (repo *bookingRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	booking, ok := repo.store.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}

	return &booking, nil
}

func (repo *bookingRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	return repo.collect(func(b entity.Booking) bool { return b.UserID == userID }, true), nil
}

func (repo *bookingRepository) FindBySalon(_ context.Context, salonID uuid.UUID) ([]*entity.Booking, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	return repo.collect(func(b entity.Booking) bool { return b.SalonID == salonID }, true), nil
}

func (repo *bookingRepository) FindBySalonBetween(_ context.Context, salonID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	match := func(b entity.Booking) bool {
		return b.SalonID == salonID && !b.CreatedAt.Before(from) && b.CreatedAt.Before(to)
	}

	return repo.collect(match, false), nil
}

func (repo *bookingRepository) Create(_ context.Context, booking *entity.Booking) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if booking.Status == "" {
		booking.Status = entity.BookingPending
	}
	booking.ID = ensureID(booking.ID)
	booking.CreatedAt = nowOr(booking.CreatedAt)
	booking.UpdatedAt = booking.CreatedAt

	repo.store.bookings[booking.ID] = *booking

	return nil
}

func (repo *bookingRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	booking, ok := repo.store.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}

	booking.Status = status
	booking.UpdatedAt = updatedAt
	repo.store.bookings[id] = booking

	return nil
}

// collect filters bookings under a held read lock; newestFirst flips the sort.
func (repo *bookingRepository) collect(match func(entity.Booking) bool, newestFirst bool) []*entity.Booking {
	var bookings []*entity.Booking
	for _, booking := range repo.store.bookings {
		if match(booking) {
			b := booking
			bookings = append(bookings, &b)
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		if newestFirst {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}

		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})

	return bookings
}

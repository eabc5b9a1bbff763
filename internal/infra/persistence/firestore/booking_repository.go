package firestore

import (
	"context"
	"sort"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// bookingRepository implements repository.BookingRepository on Firestore.
type bookingRepository struct {
	client *firestore.Client
	w      writer
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(client *firestore.Client) repository.BookingRepository {
	return &bookingRepository{client: client}
}

func newTxBookingRepository(client *firestore.Client, tx *firestore.Transaction) repository.BookingRepository {
	return &bookingRepository{client: client, w: writer{tx: tx}}
}

func (repo *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	snap, err := repo.client.Collection(colBookings).Doc(id.String()).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking by id")
	}

	var doc bookingDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode booking document")
	}

	return toBookingDomain(&doc), nil
}

func (repo *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	docs, err := collectDocs[bookingDoc](
		repo.client.Collection(colBookings).Where("userId", "==", userID.String()).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by user")
	}

	return sortedBookingsNewestFirst(docs), nil
}

func (repo *bookingRepository) FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Booking, error) {
	docs, err := collectDocs[bookingDoc](
		repo.client.Collection(colBookings).Where("salonId", "==", salonID.String()).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by salon")
	}

	return sortedBookingsNewestFirst(docs), nil
}

func (repo *bookingRepository) FindBySalonBetween(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	docs, err := collectDocs[bookingDoc](
		repo.client.Collection(colBookings).Where("salonId", "==", salonID.String()).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by salon and period")
	}

	bookings := make([]*entity.Booking, 0, len(docs))
	for _, doc := range docs {
		if doc.CreatedAt.Before(from) || !doc.CreatedAt.Before(to) {
			continue
		}
		bookings = append(bookings, toBookingDomain(doc))
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.Before(bookings[j].CreatedAt) })

	return bookings, nil
}

func (repo *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.Status == "" {
		booking.Status = entity.BookingPending
	}
	booking.ID = newDocID(booking.ID)
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	doc := fromBookingDomain(booking)
	if err := repo.w.create(ctx, repo.client.Collection(colBookings).Doc(doc.ID), doc); err != nil {
		if isAlreadyExists(err) {
			return domainerrors.ErrConflict.WrapMessage("booking document already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking")
	}

	return nil
}

func (repo *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	err := repo.w.update(ctx, repo.client.Collection(colBookings).Doc(id.String()), []firestore.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: updatedAt},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrBookingNotFound
		}

		return errors.Wrap(err, "failed to update booking status")
	}

	return nil
}

func sortedBookingsNewestFirst(docs []*bookingDoc) []*entity.Booking {
	bookings := make([]*entity.Booking, 0, len(docs))
	for _, doc := range docs {
		bookings = append(bookings, toBookingDomain(doc))
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })

	return bookings
}

// --- Mapper functions ---

func toBookingDomain(data *bookingDoc) *entity.Booking {
	if data == nil {
		return nil
	}

	return &entity.Booking{
		ID:           mustParseUUID(data.ID),
		UserID:       mustParseUUID(data.UserID),
		SalonID:      mustParseUUID(data.SalonID),
		ServiceID:    mustParseUUID(data.ServiceID),
		Datetime:     data.Datetime,
		Status:       entity.BookingStatus(data.Status),
		Notes:        data.Notes,
		PointsEarned: data.PointsEarned,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromBookingDomain(data *entity.Booking) *bookingDoc {
	if data == nil {
		return nil
	}

	return &bookingDoc{
		ID:           data.ID.String(),
		UserID:       data.UserID.String(),
		SalonID:      data.SalonID.String(),
		ServiceID:    data.ServiceID.String(),
		Datetime:     data.Datetime,
		Status:       string(data.Status),
		Notes:        data.Notes,
		PointsEarned: data.PointsEarned,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

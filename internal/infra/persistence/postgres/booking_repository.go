package postgres

import (
	"context"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookingRepository implements repository.BookingRepository using GORM.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// FindByID retrieves a single booking by its unique ID.
func (repo *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var bookingM model.BookingModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&bookingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking by id")
	}

	return toBookingDomain(&bookingM), nil
}

// FindByUser retrieves all bookings placed by the user, newest first.
func (repo *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by user")
	}

	return toBookingDomainSlice(bookingModels), nil
}

// FindBySalon retrieves all bookings of the salon, newest first.
func (repo *bookingRepository) FindBySalon(ctx context.Context, salonID uuid.UUID) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at DESC").
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by salon")
	}

	return toBookingDomainSlice(bookingModels), nil
}

// FindBySalonBetween retrieves the salon's bookings created inside [from, to).
func (repo *bookingRepository) FindBySalonBetween(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("salon_id = ? AND created_at >= ? AND created_at < ?", salonID, from, to).
		Order("created_at").
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by salon and period")
	}

	return toBookingDomainSlice(bookingModels), nil
}

// Create persists a new booking.
func (repo *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.Status == "" {
		booking.Status = entity.BookingPending
	}

	bookingM := fromBookingDomain(booking)

	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("referenced user, salon or service does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required booking information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking")
	}

	booking.ID = bookingM.ID
	booking.CreatedAt = bookingM.CreatedAt
	booking.UpdatedAt = bookingM.UpdatedAt

	return nil
}

// UpdateStatus persists a status transition with the caller's timestamp.
func (repo *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update booking status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBookingNotFound
	}

	return nil
}

// --- Mapper functions ---

func toBookingDomain(data *model.BookingModel) *entity.Booking {
	if data == nil {
		return nil
	}

	return &entity.Booking{
		ID:           data.ID,
		UserID:       data.UserID,
		SalonID:      data.SalonID,
		ServiceID:    data.ServiceID,
		Datetime:     data.Datetime,
		Status:       entity.BookingStatus(data.Status),
		Notes:        data.Notes,
		PointsEarned: data.PointsEarned,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromBookingDomain(data *entity.Booking) *model.BookingModel {
	if data == nil {
		return nil
	}

	return &model.BookingModel{
		ID:           data.ID,
		UserID:       data.UserID,
		SalonID:      data.SalonID,
		ServiceID:    data.ServiceID,
		Datetime:     data.Datetime,
		Status:       string(data.Status),
		Notes:        data.Notes,
		PointsEarned: data.PointsEarned,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toBookingDomainSlice(models []*model.BookingModel) []*entity.Booking {
	bookings := make([]*entity.Booking, 0, len(models))
	for _, bookingM := range models {
		bookings = append(bookings, toBookingDomain(bookingM))
	}

	return bookings
}

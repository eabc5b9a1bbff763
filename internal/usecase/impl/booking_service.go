package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/domain/service"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	txManager   repository.TransactionManager
	bookingRepo repository.BookingRepository
	salonRepo   repository.SalonRepository
	serviceRepo repository.ServiceRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// BookingServiceParams holds dependencies for bookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	BookingRepo repository.BookingRepository
	SalonRepo   repository.SalonRepository
	ServiceRepo repository.ServiceRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		txManager:   params.TxManager,
		bookingRepo: params.BookingRepo,
		salonRepo:   params.SalonRepo,
		serviceRepo: params.ServiceRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateBooking places a pending booking. PointsEarned is computed from the
// service price once, here; the insert and the loyalty credit run in one
// transaction so the points are applied exactly once or not at all.
func (srv *bookingService) CreateBooking(ctx context.Context, actor usecase.Actor, input *usecase.CreateBookingInput) (*entity.Booking, error) {
	svc, err := srv.serviceRepo.FindByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, domainerrors.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service for booking")
	}
	if svc.SalonID != input.SalonID {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("service does not belong to the salon")
	}

	booking := &entity.Booking{
		UserID:       actor.UserID,
		SalonID:      input.SalonID,
		ServiceID:    input.ServiceID,
		Datetime:     input.Datetime,
		Status:       entity.BookingPending,
		Notes:        input.Notes,
		PointsEarned: svc.LoyaltyPointsValue(),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.BookingRepo().Create(ctx, booking); err != nil {
			return errors.Wrap(err, "failed to create booking")
		}

		if booking.PointsEarned > 0 {
			if err := repoFactory.UserRepo().AddLoyaltyPoints(ctx, actor.UserID, booking.PointsEarned); err != nil {
				return errors.Wrap(err, "failed to credit loyalty points")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute booking creation transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute booking creation transaction")
	}

	srv.publishEvent(ctx, booking, service.BookingEventCreated, "")

	srv.log(ctx).Info("Booking created",
		slog.Any("bookingID", booking.ID),
		slog.Any("userID", actor.UserID),
		slog.Int("pointsEarned", booking.PointsEarned))

	return booking, nil
}

func (srv *bookingService) UserBookings(ctx context.Context, actor usecase.Actor, userID uuid.UUID) ([]*entity.Booking, error) {
	if actor.UserID != userID && !actor.IsAdmin() {
		return nil, domainerrors.ErrOwnershipViolation.WrapMessage("cannot read another user's bookings")
	}

	bookings, err := srv.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user bookings")
	}

	return bookings, nil
}

func (srv *bookingService) OwnerBookings(ctx context.Context, ownerID uuid.UUID) ([]*entity.Booking, error) {
	salons, err := srv.salonRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner salons")
	}

	var bookings []*entity.Booking
	for _, salon := range salons {
		salonBookings, err := srv.bookingRepo.FindBySalon(ctx, salon.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find salon bookings")
		}
		bookings = append(bookings, salonBookings...)
	}

	return bookings, nil
}

// UpdateBookingStatus enforces the transition table, then who may move the
// booking: the customer may only cancel their own, the salon owner acts per
// the table, admins always may. Any refusal is a 403.
func (srv *bookingService) UpdateBookingStatus(ctx context.Context, actor usecase.Actor, bookingID uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	if !status.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown booking status")
	}

	booking, err := srv.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, domainerrors.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking")
	}

	salon, err := srv.salonRepo.FindByID(ctx, booking.SalonID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find booking salon")
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, domainerrors.ErrInvalidTransition
	}

	bookingActor := entity.BookingActor{
		UserID:    actor.UserID,
		Role:      actor.Role,
		OwnsSalon: salon.OwnerID == actor.UserID,
	}
	if !booking.AuthorizeTransition(bookingActor, status) {
		return nil, domainerrors.ErrOwnershipViolation.WrapMessage("not allowed to change this booking")
	}

	// One timestamp for the row and the returned booking.
	now := time.Now()
	if err := srv.bookingRepo.UpdateStatus(ctx, bookingID, status, now); err != nil {
		return nil, errors.Wrap(err, "failed to update booking status")
	}

	prev := booking.Status
	booking.Status = status
	booking.UpdatedAt = now

	srv.publishEvent(ctx, booking, service.BookingEventStatusChanged, string(prev))

	srv.log(ctx).Info("Booking status changed",
		slog.Any("bookingID", bookingID),
		slog.String("from", string(prev)),
		slog.String("to", string(status)))

	return booking, nil
}

// publishEvent is fire-and-forget: a publish failure is logged and never
// fails the write that triggered it.
func (srv *bookingService) publishEvent(ctx context.Context, booking *entity.Booking, kind, prevStatus string) {
	event := &service.BookingEvent{
		Kind:       kind,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		SalonID:    booking.SalonID,
		ServiceID:  booking.ServiceID,
		Status:     string(booking.Status),
		PrevStatus: prevStatus,
		Datetime:   booking.Datetime,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OccurredAt: time.Now(),
	}

	if err := srv.publisher.PublishBookingEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish booking event",
			slog.String("kind", kind),
			slog.Any("bookingID", booking.ID),
			slog.Any("error", err))
	}
}

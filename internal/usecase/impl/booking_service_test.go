package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/service"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture(t *testing.T) (*testEnv, usecase.BookingUsecase, *capturingPublisher) {
	t.Helper()

	env := newTestEnv()
	publisher := &capturingPublisher{}
	uc := NewBookingService(BookingServiceParams{
		TxManager:   memory.NewTransactionManager(env.store),
		BookingRepo: memory.NewBookingRepository(env.store),
		SalonRepo:   memory.NewSalonRepository(env.store),
		ServiceRepo: memory.NewServiceRepository(env.store),
		Publisher:   publisher,
		Logger:      newDiscardLogger(),
	})

	return env, uc, publisher
}

func TestBookingService_CreateBooking_CreditsPointsExactlyOnce(t *testing.T) {
	env, uc, publisher := newBookingFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 150, "hair")

	actor := usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}
	booking, err := uc.CreateBooking(ctx, actor, &usecase.CreateBookingInput{
		SalonID:   salon.ID,
		ServiceID: svc.ID,
		Datetime:  time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingPending, booking.Status)
	assert.Equal(t, 150, booking.PointsEarned)

	// Points are credited once, atomically with the insert.
	reloaded, err := memory.NewUserRepository(env.store).FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, reloaded.LoyaltyPoints)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, service.BookingEventCreated, events[0].Kind)
	assert.Equal(t, booking.ID, events[0].BookingID)
}

func TestBookingService_CreateBooking_ServiceNotInSalon(t *testing.T) {
	env, uc, _ := newBookingFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salonA := env.createSalon(t, owner.ID)
	salonB := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salonA.ID, 80, "nails")

	_, err := uc.CreateBooking(ctx, usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}, &usecase.CreateBookingInput{
		SalonID:   salonB.ID,
		ServiceID: svc.ID,
		Datetime:  time.Now(),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestBookingService_CreateBooking_UnknownService(t *testing.T) {
	env, uc, _ := newBookingFixture(t)

	customer := env.createUser(t, entity.RoleCustomer)
	_, err := uc.CreateBooking(context.Background(), usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}, &usecase.CreateBookingInput{
		SalonID:   uuid.New(),
		ServiceID: uuid.New(),
		Datetime:  time.Now(),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrServiceNotFound))
}

func TestBookingService_UpdateBookingStatus_Lifecycle(t *testing.T) {
	env, uc, publisher := newBookingFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 100, "spa")

	customerActor := usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}
	ownerActor := usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}

	booking, err := uc.CreateBooking(ctx, customerActor, &usecase.CreateBookingInput{
		SalonID:   salon.ID,
		ServiceID: svc.ID,
		Datetime:  time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// The customer may not confirm their own booking.
	_, err = uc.UpdateBookingStatus(ctx, customerActor, booking.ID, entity.BookingConfirmed)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnershipViolation))

	// The owner confirms, then completes.
	confirmed, err := uc.UpdateBookingStatus(ctx, ownerActor, booking.ID, entity.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingConfirmed, confirmed.Status)

	completed, err := uc.UpdateBookingStatus(ctx, ownerActor, booking.ID, entity.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCompleted, completed.Status)

	// Terminal states absorb every further transition.
	_, err = uc.UpdateBookingStatus(ctx, ownerActor, booking.ID, entity.BookingCancelled)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

	events := publisher.published()
	require.Len(t, events, 3)
	assert.Equal(t, service.BookingEventStatusChanged, events[1].Kind)
	assert.Equal(t, string(entity.BookingPending), events[1].PrevStatus)
}

func TestBookingService_UpdateBookingStatus_CustomerCancelsOwn(t *testing.T) {
	env, uc, _ := newBookingFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	other := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 60, "makeup")

	customerActor := usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}
	booking, err := uc.CreateBooking(ctx, customerActor, &usecase.CreateBookingInput{
		SalonID:   salon.ID,
		ServiceID: svc.ID,
		Datetime:  time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// Another customer may not cancel someone else's booking.
	_, err = uc.UpdateBookingStatus(ctx, usecase.Actor{UserID: other.ID, Role: entity.RoleCustomer}, booking.ID, entity.BookingCancelled)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnershipViolation))

	cancelled, err := uc.UpdateBookingStatus(ctx, customerActor, booking.ID, entity.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelled, cancelled.Status)
}

func TestBookingService_UpdateBookingStatus_TimestampMatchesStore(t *testing.T) {
	env, uc, _ := newBookingFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 70, "hair")

	booking, err := uc.CreateBooking(ctx, usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}, &usecase.CreateBookingInput{
		SalonID:   salon.ID,
		ServiceID: svc.ID,
		Datetime:  time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	confirmed, err := uc.UpdateBookingStatus(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, booking.ID, entity.BookingConfirmed)
	require.NoError(t, err)

	// The returned booking and the stored row carry the same timestamp.
	reloaded, err := memory.NewBookingRepository(env.store).FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, confirmed.UpdatedAt.Equal(reloaded.UpdatedAt))
	assert.Equal(t, entity.BookingConfirmed, reloaded.Status)
}

func TestBookingService_UserBookings_OwnershipScoped(t *testing.T) {
	env, uc, _ := newBookingFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	other := env.createUser(t, entity.RoleCustomer)

	_, err := uc.UserBookings(ctx, usecase.Actor{UserID: other.ID, Role: entity.RoleCustomer}, customer.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnershipViolation))

	// Admins may read anyone's bookings.
	_, err = uc.UserBookings(ctx, usecase.Actor{UserID: other.ID, Role: entity.RoleAdmin}, customer.ID)
	assert.NoError(t, err)
}

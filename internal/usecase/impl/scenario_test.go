package impl

import (
	"context"
	"testing"
	"time"

	"lamsa/config"
	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/infra/auth"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenario_RegisterThroughBooking walks the happy path end to end over
// one shared store: register both parties, open a salon with a service, book
// it and drive the booking to completed.
func TestScenario_RegisterThroughBooking(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "scenario-access"
	cfg.SecretKey.Refresh = "scenario-refresh"
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authUC := NewAuthService(AuthServiceParams{
		UserRepo:         memory.NewUserRepository(store),
		RefreshTokenRepo: memory.NewRefreshTokenRepository(store),
		Hasher:           auth.NewBcryptHasher(),
		TokenService:     tokenSvc,
		Logger:           newDiscardLogger(),
	})
	salonUC := NewSalonService(SalonServiceParams{
		SalonRepo:   memory.NewSalonRepository(store),
		ServiceRepo: memory.NewServiceRepository(store),
		ReviewRepo:  memory.NewReviewRepository(store),
		ImageStore:  &fakeImageStore{},
		Logger:      newDiscardLogger(),
	})
	catalogUC := NewServiceCatalogService(ServiceCatalogParams{
		ServiceRepo: memory.NewServiceRepository(store),
		SalonRepo:   memory.NewSalonRepository(store),
		Logger:      newDiscardLogger(),
	})
	bookingUC := NewBookingService(BookingServiceParams{
		TxManager:   memory.NewTransactionManager(store),
		BookingRepo: memory.NewBookingRepository(store),
		SalonRepo:   memory.NewSalonRepository(store),
		ServiceRepo: memory.NewServiceRepository(store),
		Publisher:   &capturingPublisher{},
		Logger:      newDiscardLogger(),
	})

	owner, err := authUC.Register(ctx, &usecase.RegisterInput{
		Username: "ownerjoud",
		Email:    "joud@example.com",
		Password: "password123",
		FullName: "Joud",
		Role:     entity.RoleSalonOwner,
	})
	require.NoError(t, err)

	customer, err := authUC.Register(ctx, &usecase.RegisterInput{
		Username: "maya",
		Email:    "maya@example.com",
		Password: "password123",
		FullName: "Maya",
	})
	require.NoError(t, err)

	login, err := authUC.Login(ctx, &usecase.LoginInput{Username: "maya", Password: "password123"})
	require.NoError(t, err)
	claims, err := tokenSvc.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, claims.UserID)

	ownerActor := usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}
	customerActor := usecase.Actor{UserID: claims.UserID, Role: entity.Role(claims.Role)}

	salon, err := salonUC.CreateSalon(ctx, ownerActor, &usecase.CreateSalonInput{
		NameEn: "Joud Beauty Lounge",
		NameAr: "صالون جود",
		City:   "Beirut",
	})
	require.NoError(t, err)

	svc, err := catalogUC.CreateService(ctx, ownerActor, &usecase.CreateServiceInput{
		SalonID:         salon.ID,
		NameEn:          "Keratin treatment",
		DurationMinutes: 120,
		Price:           120,
		Category:        "hair",
	})
	require.NoError(t, err)

	booking, err := bookingUC.CreateBooking(ctx, customerActor, &usecase.CreateBookingInput{
		SalonID:   salon.ID,
		ServiceID: svc.ID,
		Datetime:  time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingPending, booking.Status)
	assert.Equal(t, 120, booking.PointsEarned)

	_, err = bookingUC.UpdateBookingStatus(ctx, ownerActor, booking.ID, entity.BookingConfirmed)
	require.NoError(t, err)

	// Confirmed or not, the customer still cannot drive the lifecycle.
	_, err = bookingUC.UpdateBookingStatus(ctx, customerActor, booking.ID, entity.BookingCompleted)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnershipViolation))

	completed, err := bookingUC.UpdateBookingStatus(ctx, ownerActor, booking.ID, entity.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCompleted, completed.Status)

	me, err := authUC.Session(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, me.LoyaltyPoints)
}

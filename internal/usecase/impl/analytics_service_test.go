package impl

import (
	"context"
	"testing"
	"time"

	"lamsa/internal/domain/entity"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsFixture(t *testing.T) (*testEnv, usecase.AnalyticsUsecase) {
	t.Helper()

	env := newTestEnv()
	uc := NewAnalyticsService(AnalyticsServiceParams{
		SalonRepo:   memory.NewSalonRepository(env.store),
		BookingRepo: memory.NewBookingRepository(env.store),
		ServiceRepo: memory.NewServiceRepository(env.store),
		ReviewRepo:  memory.NewReviewRepository(env.store),
		Logger:      newDiscardLogger(),
	})

	return env, uc
}

func TestAnalyticsService_OwnerAnalytics(t *testing.T) {
	env, uc := newAnalyticsFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	hair := env.createSvc(t, salon.ID, 100, "hair")
	nails := env.createSvc(t, salon.ID, 40, "nails")

	seedBooking(t, env, customer.ID, salon.ID, hair.ID, entity.BookingCompleted)
	seedBooking(t, env, customer.ID, salon.ID, hair.ID, entity.BookingCompleted)
	seedBooking(t, env, customer.ID, salon.ID, nails.ID, entity.BookingCompleted)
	seedBooking(t, env, customer.ID, salon.ID, nails.ID, entity.BookingCancelled)

	for _, rating := range []int{3, 5} {
		err := memory.NewReviewRepository(env.store).Create(ctx, &entity.Review{
			ID:      uuid.New(),
			SalonID: salon.ID,
			UserID:  customer.ID,
			Rating:  rating,
		})
		require.NoError(t, err)
	}

	// Zero bounds fall back to the default 30-day window.
	reports, err := uc.OwnerAnalytics(ctx, owner.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, salon.ID, report.SalonID)
	assert.Equal(t, 4, report.TotalBookings)
	assert.Equal(t, 3, report.BookingsByStatus[string(entity.BookingCompleted)])
	assert.Equal(t, 1, report.BookingsByStatus[string(entity.BookingCancelled)])

	// Revenue counts completed bookings only: 2x100 + 1x40.
	assert.InDelta(t, 240.0, report.CompletedRevenue, 1e-9)
	assert.InDelta(t, 4.0, report.AverageRating, 1e-9)
	assert.Equal(t, 2, report.ReviewCount)

	require.Len(t, report.TopServices, 2)
	assert.Equal(t, hair.ID, report.TopServices[0].ServiceID)
	assert.Equal(t, 2, report.TopServices[0].Bookings)
	assert.InDelta(t, 200.0, report.TopServices[0].Revenue, 1e-9)
}

func TestAnalyticsService_WindowExcludesOldBookings(t *testing.T) {
	env, uc := newAnalyticsFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 60, "spa")

	err := memory.NewBookingRepository(env.store).Create(ctx, &entity.Booking{
		ID:        uuid.New(),
		UserID:    customer.ID,
		SalonID:   salon.ID,
		ServiceID: svc.ID,
		Status:    entity.BookingCompleted,
		CreatedAt: time.Now().AddDate(0, -3, 0),
	})
	require.NoError(t, err)
	seedBooking(t, env, customer.ID, salon.ID, svc.ID, entity.BookingCompleted)

	reports, err := uc.OwnerAnalytics(ctx, owner.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].TotalBookings)
}

func TestAnalyticsService_NoSalons(t *testing.T) {
	env, uc := newAnalyticsFixture(t)

	owner := env.createUser(t, entity.RoleSalonOwner)
	reports, err := uc.OwnerAnalytics(context.Background(), owner.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestTopServices_RanksByBookingsThenRevenue(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	stats := map[uuid.UUID]*entity.ServiceBookingStat{
		a: {ServiceID: a, Bookings: 2, Revenue: 50},
		b: {ServiceID: b, Bookings: 2, Revenue: 200},
		c: {ServiceID: c, Bookings: 5, Revenue: 10},
	}

	ranked := topServices(stats)
	require.Len(t, ranked, 3)
	assert.Equal(t, c, ranked[0].ServiceID)
	assert.Equal(t, b, ranked[1].ServiceID)
	assert.Equal(t, a, ranked[2].ServiceID)
}

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

func newReportFixture(t *testing.T) (*testEnv, usecase.ReportUsecase, *capturingMailer) {
	t.Helper()

	env := newTestEnv()
	mailer := &capturingMailer{}
	uc := NewReportService(ReportServiceParams{
		SalonRepo:     memory.NewSalonRepository(env.store),
		BookingRepo:   memory.NewBookingRepository(env.store),
		ServiceRepo:   memory.NewServiceRepository(env.store),
		UserRepo:      memory.NewUserRepository(env.store),
		ReportLogRepo: memory.NewReportLogRepository(env.store),
		Mailer:        mailer,
		Logger:        newDiscardLogger(),
	})

	return env, uc, mailer
}

// seedBooking inserts a booking created yesterday so it falls inside the
// daily report window.
func seedBooking(t *testing.T, env *testEnv, userID, salonID, serviceID uuid.UUID, status entity.BookingStatus) {
	t.Helper()

	err := memory.NewBookingRepository(env.store).Create(context.Background(), &entity.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		SalonID:   salonID,
		ServiceID: serviceID,
		Datetime:  time.Now().AddDate(0, 0, -1),
		Status:    status,
		CreatedAt: time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
}

func TestReportService_RunDailyReports_IdempotentPerDay(t *testing.T) {
	env, uc, mailer := newReportFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 100, "hair")
	seedBooking(t, env, customer.ID, salon.ID, svc.ID, entity.BookingCompleted)
	seedBooking(t, env, customer.ID, salon.ID, svc.ID, entity.BookingCancelled)

	now := time.Now()

	sent, err := uc.RunDailyReports(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	mails := mailer.sent()
	require.Len(t, mails, 1)
	assert.Equal(t, owner.Email, mails[0].To)
	assert.Contains(t, mails[0].Subject, salon.NameEn)
	assert.Contains(t, mails[0].Body, "Total bookings: 2")
	assert.Contains(t, mails[0].Body, "Completed: 1")
	assert.Contains(t, mails[0].Body, "Cancelled: 1")

	// A re-triggered run for the same date sends nothing.
	sent, err = uc.RunDailyReports(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Len(t, mailer.sent(), 1)
}

func TestReportService_SkipsSalonsWithoutBookings(t *testing.T) {
	env, uc, mailer := newReportFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 40, "nails")

	sent, err := uc.RunDailyReports(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, mailer.sent())

	// An empty day leaves no ledger entry, so a later run for the same
	// date still reports bookings that have shown up since.
	seedBooking(t, env, customer.ID, salon.ID, svc.ID, entity.BookingCompleted)

	sent, err = uc.RunDailyReports(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, mailer.sent(), 1)
}

func TestReportService_ArabicOwnerGetsArabicMail(t *testing.T) {
	env, uc, mailer := newReportFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := &entity.User{
		ID:                uuid.New(),
		Username:          "owner-" + uuid.NewString()[:8],
		Email:             uuid.NewString()[:8] + "@example.com",
		PasswordHash:      "x",
		Role:              entity.RoleSalonOwner,
		PreferredLanguage: entity.LanguageArabic,
	}
	require.NoError(t, memory.NewUserRepository(env.store).Create(ctx, owner))

	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 75, "spa")
	seedBooking(t, env, customer.ID, salon.ID, svc.ID, entity.BookingCompleted)

	sent, err := uc.RunDailyReports(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	mails := mailer.sent()
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].Subject, salon.NameAr)
	assert.Contains(t, mails[0].Subject, "التقرير اليومي")
}

func TestBuildDailyReport_RevenueCountsCompletedOnly(t *testing.T) {
	salonID := uuid.New()
	hair := &entity.Service{ID: uuid.New(), SalonID: salonID, Price: 100}
	nails := &entity.Service{ID: uuid.New(), SalonID: salonID, Price: 50}

	bookings := []*entity.Booking{
		{ServiceID: hair.ID, Status: entity.BookingCompleted},
		{ServiceID: nails.ID, Status: entity.BookingConfirmed},
		{ServiceID: nails.ID, Status: entity.BookingCancelled},
	}

	report := buildDailyReport(salonID, "2026-08-28", bookings, []*entity.Service{hair, nails})

	assert.Equal(t, 3, report.TotalBookings)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 1, report.Cancelled)
	assert.InDelta(t, 100.0, report.CompletedRevenue, 1e-9)
}

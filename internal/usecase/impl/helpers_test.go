package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/service"
	"lamsa/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// capturingPublisher records published booking events.
type capturingPublisher struct {
	mu     sync.Mutex
	events []*service.BookingEvent
}

func (p *capturingPublisher) PublishBookingEvent(_ context.Context, event *service.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) published() []*service.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.BookingEvent(nil), p.events...)
}

// capturingMailer records outbound mail.
type capturingMailer struct {
	mu    sync.Mutex
	mails []service.Mail
}

func (m *capturingMailer) Send(_ context.Context, mail service.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = append(m.mails, mail)

	return nil
}

func (m *capturingMailer) sent() []service.Mail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]service.Mail(nil), m.mails...)
}

// capturingSearchLogRepo hands each logged query to a channel so tests can
// wait for the async write.
type capturingSearchLogRepo struct {
	queries chan string
}

func newCapturingSearchLogRepo() *capturingSearchLogRepo {
	return &capturingSearchLogRepo{queries: make(chan string, 16)}
}

func (r *capturingSearchLogRepo) Create(_ context.Context, log *entity.SearchLog) error {
	r.queries <- log.Query

	return nil
}

// testEnv bundles a memory-backed repository set for usecase tests.
type testEnv struct {
	store *memory.Store
}

func newTestEnv() *testEnv {
	return &testEnv{store: memory.NewStore()}
}

func (e *testEnv) createUser(t *testing.T, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		ID:                uuid.New(),
		Username:          "user-" + uuid.NewString()[:8],
		Email:             uuid.NewString()[:8] + "@example.com",
		PasswordHash:      "x",
		FullName:          "Test User",
		Phone:             "+96170000000",
		Role:              role,
		PreferredLanguage: entity.LanguageEnglish,
	}
	require.NoError(t, memory.NewUserRepository(e.store).Create(context.Background(), user))

	return user
}

func (e *testEnv) createSalon(t *testing.T, ownerID uuid.UUID) *entity.Salon {
	t.Helper()

	salon := &entity.Salon{
		ID:      uuid.New(),
		OwnerID: ownerID,
		NameEn:  "Salon " + uuid.NewString()[:8],
		NameAr:  "صالون",
		City:    "Beirut",
	}
	require.NoError(t, memory.NewSalonRepository(e.store).Create(context.Background(), salon))

	return salon
}

func (e *testEnv) createSvc(t *testing.T, salonID uuid.UUID, price float64, category string) *entity.Service {
	t.Helper()

	svc := &entity.Service{
		ID:              uuid.New(),
		SalonID:         salonID,
		NameEn:          "Service " + uuid.NewString()[:8],
		DurationMinutes: 45,
		Price:           price,
		Category:        category,
	}
	require.NoError(t, memory.NewServiceRepository(e.store).Create(context.Background(), svc))

	return svc
}

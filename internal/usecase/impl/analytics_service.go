package impl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// topServicesLimit caps the per-salon top service list.
const topServicesLimit = 5

// analyticsService implements the AnalyticsUsecase interface.
type analyticsService struct {
	salonRepo   repository.SalonRepository
	bookingRepo repository.BookingRepository
	serviceRepo repository.ServiceRepository
	reviewRepo  repository.ReviewRepository
	logger      *slog.Logger
}

// AnalyticsServiceParams holds dependencies for analyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	SalonRepo   repository.SalonRepository
	BookingRepo repository.BookingRepository
	ServiceRepo repository.ServiceRepository
	ReviewRepo  repository.ReviewRepository
	Logger      *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		salonRepo:   params.SalonRepo,
		bookingRepo: params.BookingRepo,
		serviceRepo: params.ServiceRepo,
		reviewRepo:  params.ReviewRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *analyticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// OwnerAnalytics builds one dashboard aggregate per owned salon.
func (srv *analyticsService) OwnerAnalytics(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*entity.SalonAnalytics, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	salons, err := srv.salonRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner salons")
	}

	analytics := make([]*entity.SalonAnalytics, 0, len(salons))
	for _, salon := range salons {
		report, err := srv.salonAnalytics(ctx, salon.ID, from, to)
		if err != nil {
			return nil, err
		}
		analytics = append(analytics, report)
	}

	srv.log(ctx).Debug("Analytics computed", slog.Any("ownerID", ownerID), slog.Int("salons", len(analytics)))

	return analytics, nil
}

func (srv *analyticsService) salonAnalytics(ctx context.Context, salonID uuid.UUID, from, to time.Time) (*entity.SalonAnalytics, error) {
	bookings, err := srv.bookingRepo.FindBySalonBetween(ctx, salonID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load salon bookings")
	}

	services, err := srv.serviceRepo.FindBySalon(ctx, salonID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load salon services")
	}
	priceByService := make(map[uuid.UUID]*entity.Service, len(services))
	for _, svc := range services {
		priceByService[svc.ID] = svc
	}

	reviews, err := srv.reviewRepo.FindBySalon(ctx, salonID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load salon reviews")
	}

	report := &entity.SalonAnalytics{
		SalonID:          salonID,
		TotalBookings:    len(bookings),
		BookingsByStatus: make(map[string]int),
		ReviewCount:      len(reviews),
		GeneratedAt:      time.Now(),
		PeriodStart:      from,
		PeriodEnd:        to,
	}

	stats := make(map[uuid.UUID]*entity.ServiceBookingStat)
	for _, booking := range bookings {
		report.BookingsByStatus[string(booking.Status)]++

		stat, ok := stats[booking.ServiceID]
		if !ok {
			stat = &entity.ServiceBookingStat{ServiceID: booking.ServiceID}
			if svc := priceByService[booking.ServiceID]; svc != nil {
				stat.NameEn = svc.NameEn
				stat.NameAr = svc.NameAr
			}
			stats[booking.ServiceID] = stat
		}
		stat.Bookings++

		if booking.Status == entity.BookingCompleted {
			if svc := priceByService[booking.ServiceID]; svc != nil {
				stat.Revenue += svc.Price
				report.CompletedRevenue += svc.Price
			}
		}
	}

	if len(reviews) > 0 {
		var sum int
		for _, review := range reviews {
			sum += review.Rating
		}
		report.AverageRating = float64(sum) / float64(len(reviews))
	}

	report.TopServices = topServices(stats)

	return report, nil
}

// topServices ranks services by booking count, revenue breaking ties.
func topServices(stats map[uuid.UUID]*entity.ServiceBookingStat) []entity.ServiceBookingStat {
	ranked := make([]entity.ServiceBookingStat, 0, len(stats))
	for _, stat := range stats {
		ranked = append(ranked, *stat)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Bookings != ranked[j].Bookings {
			return ranked[i].Bookings > ranked[j].Bookings
		}

		return ranked[i].Revenue > ranked[j].Revenue
	})

	if len(ranked) > topServicesLimit {
		ranked = ranked[:topServicesLimit]
	}

	return ranked
}

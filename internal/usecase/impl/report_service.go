package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"
	"lamsa/internal/domain/service"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reportService implements the ReportUsecase interface.
type reportService struct {
	salonRepo     repository.SalonRepository
	bookingRepo   repository.BookingRepository
	serviceRepo   repository.ServiceRepository
	userRepo      repository.UserRepository
	reportLogRepo repository.ReportLogRepository
	mailer        service.Mailer
	logger        *slog.Logger
}

// ReportServiceParams holds dependencies for reportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	SalonRepo     repository.SalonRepository
	BookingRepo   repository.BookingRepository
	ServiceRepo   repository.ServiceRepository
	UserRepo      repository.UserRepository
	ReportLogRepo repository.ReportLogRepository
	Mailer        service.Mailer
	Logger        *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		salonRepo:     params.SalonRepo,
		bookingRepo:   params.BookingRepo,
		serviceRepo:   params.ServiceRepo,
		userRepo:      params.UserRepo,
		reportLogRepo: params.ReportLogRepo,
		mailer:        params.Mailer,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RunDailyReports walks every salon and mails yesterday's summary to its
// owner. The date+salon ledger is checked first and marked after the send,
// so a re-triggered run skips salons already covered. One failing salon is
// logged and skipped; the run continues.
func (srv *reportService) RunDailyReports(ctx context.Context, now time.Time) (int, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	to := from.AddDate(0, 0, 1)
	reportDate := from.Format("2006-01-02")

	salons, err := srv.salonRepo.List(ctx, repository.SalonFilter{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to list salons for daily report")
	}

	sent := 0
	for _, salon := range salons {
		ok, err := srv.reportSalon(ctx, salon, reportDate, from, to)
		if err != nil {
			srv.log(ctx).Error("Daily report failed for salon",
				slog.Any("salonID", salon.ID),
				slog.String("reportDate", reportDate),
				slog.Any("error", err))

			continue
		}
		if ok {
			sent++
		}
	}

	srv.log(ctx).Info("Daily report run finished",
		slog.String("reportDate", reportDate),
		slog.Int("salons", len(salons)),
		slog.Int("sent", sent))

	return sent, nil
}

func (srv *reportService) reportSalon(ctx context.Context, salon *entity.Salon, reportDate string, from, to time.Time) (bool, error) {
	already, err := srv.reportLogRepo.AlreadySent(ctx, salon.ID, reportDate)
	if err != nil {
		return false, errors.Wrap(err, "failed to check report ledger")
	}
	if already {
		return false, nil
	}

	bookings, err := srv.bookingRepo.FindBySalonBetween(ctx, salon.ID, from, to)
	if err != nil {
		return false, errors.Wrap(err, "failed to load bookings for report")
	}
	if len(bookings) == 0 {
		// Nothing to report; no mail and no ledger entry.
		return false, nil
	}

	services, err := srv.serviceRepo.FindBySalon(ctx, salon.ID)
	if err != nil {
		return false, errors.Wrap(err, "failed to load services for report")
	}

	report := buildDailyReport(salon.ID, reportDate, bookings, services)

	owner, err := srv.userRepo.FindByID(ctx, salon.OwnerID)
	if err != nil {
		return false, errors.Wrap(err, "failed to find salon owner")
	}

	mail := buildReportMail(salon, owner, report)
	if err := srv.mailer.Send(ctx, mail); err != nil {
		return false, errors.Wrap(err, "failed to mail daily report")
	}

	err = srv.reportLogRepo.MarkSent(ctx, &entity.ReportLog{
		SalonID:    salon.ID,
		ReportDate: reportDate,
		SentAt:     time.Now(),
	})
	if err != nil {
		// The mail went out but the marker write lost a race or failed;
		// surface it so the run logs the salon.
		return false, errors.Wrap(err, "failed to mark report sent")
	}

	return true, nil
}

func buildDailyReport(salonID uuid.UUID, reportDate string, bookings []*entity.Booking, services []*entity.Service) *entity.DailyReport {
	priceByService := make(map[uuid.UUID]float64, len(services))
	for _, svc := range services {
		priceByService[svc.ID] = svc.Price
	}

	report := &entity.DailyReport{
		SalonID:       salonID,
		ReportDate:    reportDate,
		TotalBookings: len(bookings),
	}
	for _, booking := range bookings {
		switch booking.Status {
		case entity.BookingCompleted:
			report.Completed++
			report.CompletedRevenue += priceByService[booking.ServiceID]
		case entity.BookingCancelled:
			report.Cancelled++
		}
	}

	return report
}

func buildReportMail(salon *entity.Salon, owner *entity.User, report *entity.DailyReport) service.Mail {
	if owner.PreferredLanguage == entity.LanguageArabic {
		return service.Mail{
			To:      owner.Email,
			Subject: fmt.Sprintf("التقرير اليومي - %s - %s", salon.NameAr, report.ReportDate),
			Body: fmt.Sprintf("إجمالي الحجوزات: %d\nالمكتملة: %d\nالملغاة: %d\n",
				report.TotalBookings, report.Completed, report.Cancelled),
		}
	}

	return service.Mail{
		To:      owner.Email,
		Subject: fmt.Sprintf("Daily report - %s - %s", salon.NameEn, report.ReportDate),
		Body: fmt.Sprintf("Total bookings: %d\nCompleted: %d\nCancelled: %d\n",
			report.TotalBookings, report.Completed, report.Cancelled),
	}
}

// Package scheduler runs the recurring background jobs of the service.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"lamsa/config"
	"lamsa/internal/usecase"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// ReportSchedulerParams holds dependencies for the daily report scheduler.
type ReportSchedulerParams struct {
	fx.In

	Lc       fx.Lifecycle
	Config   *config.Config
	Logger   *slog.Logger
	ReportUC usecase.ReportUsecase
}

// reportScheduler triggers the daily salon report on a cron spec. The report
// usecase keeps a date+salon ledger, so an overlapping or repeated run never
// double-sends.
type reportScheduler struct {
	cron     *cron.Cron
	logger   *slog.Logger
	reportUC usecase.ReportUsecase
}

// NewReportScheduler wires the cron job into the fx lifecycle. When the
// report section is absent or disabled the scheduler stays idle.
func NewReportScheduler(params ReportSchedulerParams) (*reportScheduler, error) {
	s := &reportScheduler{
		cron:     cron.New(),
		logger:   params.Logger,
		reportUC: params.ReportUC,
	}

	if params.Config.Report == nil || !params.Config.Report.Enabled {
		params.Logger.Info("Daily report scheduler disabled")

		return s, nil
	}

	spec := params.Config.Report.CronSpec
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, errors.Wrapf(err, "invalid report cron spec %q", spec)
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.logger.Info("Starting daily report scheduler", slog.String("spec", spec))
			s.cron.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("Stopping daily report scheduler")
			stopCtx := s.cron.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}

			return nil
		},
	})

	return s, nil
}

// run executes one report pass. Errors are logged, never fatal; the next
// tick retries whatever the ledger has not marked sent.
func (s *reportScheduler) run() {
	ctx := context.Background()
	start := time.Now()

	sent, err := s.reportUC.RunDailyReports(ctx, start)
	if err != nil {
		s.logger.Error("Daily report run failed", slog.Any("error", err))

		return
	}

	s.logger.Info("Daily report run finished",
		slog.Int("reports_sent", sent),
		slog.Duration("took", time.Since(start)),
	)
}

// Module provides the report scheduler to the application container.
var Module = fx.Options(
	fx.Provide(NewReportScheduler),
	fx.Invoke(func(*reportScheduler) {}),
)

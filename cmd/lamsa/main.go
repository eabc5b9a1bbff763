package main

import (
	"context"
	"log/slog"
	"os"

	"lamsa/config"
	"lamsa/internal/delivery"
	"lamsa/internal/delivery/http"
	"lamsa/internal/delivery/http/middleware"
	"lamsa/internal/delivery/http/router/handler"
	"lamsa/internal/infra/auth"
	logs "lamsa/internal/infra/log"
	"lamsa/internal/infra/mail"
	"lamsa/internal/infra/notification"
	"lamsa/internal/infra/persistence"
	"lamsa/internal/infra/pubsub"
	"lamsa/internal/infra/storage"
	"lamsa/internal/scheduler"
	"lamsa/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		scheduler.Module,
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			persistence.New,
		),
		pubsub.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			mail.NewMailer,
			notification.NewMessenger,
			storage.NewImageStore,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewSalonService,
			impl.NewServiceCatalogService,
			impl.NewBookingService,
			impl.NewReviewService,
			impl.NewPromotionService,
			impl.NewSearchService,
			impl.NewAnalyticsService,
			impl.NewReportService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewSalonHandler,
			handler.NewServiceHandler,
			handler.NewBookingHandler,
			handler.NewReviewHandler,
			handler.NewPromotionHandler,
			handler.NewSearchHandler,
			handler.NewAnalyticsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}

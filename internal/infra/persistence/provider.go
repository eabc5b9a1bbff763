// Package persistence selects the storage backend once at startup and hands
// the rest of the application nothing but repository interfaces.
package persistence

import (
	"context"
	"log/slog"

	"lamsa/config"
	"lamsa/internal/domain/repository"
	"lamsa/internal/errors"
	fsadapter "lamsa/internal/infra/persistence/firestore"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/infra/persistence/postgres"

	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
)

// Params defines the dependencies of the backend selection.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Result bundles every repository implementation of the selected backend.
type Result struct {
	fx.Out

	Users         repository.UserRepository
	Salons        repository.SalonRepository
	Services      repository.ServiceRepository
	Bookings      repository.BookingRepository
	Reviews       repository.ReviewRepository
	Promotions    repository.PromotionRepository
	RefreshTokens repository.RefreshTokenRepository
	SearchLogs    repository.SearchLogRepository
	ReportLogs    repository.ReportLogRepository
	TxManager     repository.TransactionManager
}

// New builds the repository set for the configured backend. The choice is
// made exactly once; no handler or usecase ever branches on it again.
func New(params Params) (Result, error) {
	appendHook := func(onStart, onStop func(context.Context) error) {
		params.Lifecycle.Append(fx.Hook{OnStart: onStart, OnStop: onStop})
	}

	switch params.Config.Storage.Backend {
	case config.StorageBackendPostgres:
		db, err := postgres.Open(params.Config, params.Logger, appendHook)
		if err != nil {
			return Result{}, err
		}

		return Result{
			Users:         postgres.NewUserRepository(db),
			Salons:        postgres.NewSalonRepository(db),
			Services:      postgres.NewServiceRepository(db),
			Bookings:      postgres.NewBookingRepository(db),
			Reviews:       postgres.NewReviewRepository(db),
			Promotions:    postgres.NewPromotionRepository(db),
			RefreshTokens: postgres.NewRefreshTokenRepository(db),
			SearchLogs:    postgres.NewSearchLogRepository(db),
			ReportLogs:    postgres.NewReportLogRepository(db),
			TxManager:     postgres.NewTransactionManager(db),
		}, nil

	case config.StorageBackendFirestore:
		client, err := fsadapter.Open(params.Ctx, params.Config, params.Logger, appendHook)
		if err != nil {
			return Result{}, err
		}

		return Result{
			Users:         fsadapter.NewUserRepository(client),
			Salons:        fsadapter.NewSalonRepository(client),
			Services:      fsadapter.NewServiceRepository(client),
			Bookings:      fsadapter.NewBookingRepository(client),
			Reviews:       fsadapter.NewReviewRepository(client),
			Promotions:    fsadapter.NewPromotionRepository(client),
			RefreshTokens: fsadapter.NewRefreshTokenRepository(client),
			SearchLogs:    fsadapter.NewSearchLogRepository(client),
			ReportLogs:    fsadapter.NewReportLogRepository(client),
			TxManager:     fsadapter.NewTransactionManager(client),
		}, nil

	case config.StorageBackendMemory:
		store := memory.NewStore()

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return Result{}, errors.Wrap(err, "failed to hash seed password")
		}
		store.Seed(string(hash))
		params.Logger.Info("memory backend seeded with sample data")

		return Result{
			Users:         memory.NewUserRepository(store),
			Salons:        memory.NewSalonRepository(store),
			Services:      memory.NewServiceRepository(store),
			Bookings:      memory.NewBookingRepository(store),
			Reviews:       memory.NewReviewRepository(store),
			Promotions:    memory.NewPromotionRepository(store),
			RefreshTokens: memory.NewRefreshTokenRepository(store),
			SearchLogs:    memory.NewSearchLogRepository(store),
			ReportLogs:    memory.NewReportLogRepository(store),
			TxManager:     memory.NewTransactionManager(store),
		}, nil
	}

	return Result{}, errors.Errorf("unknown storage backend: %q", params.Config.Storage.Backend)
}

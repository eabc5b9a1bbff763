package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// searchService implements the SearchUsecase interface.
type searchService struct {
	salonRepo     repository.SalonRepository
	serviceRepo   repository.ServiceRepository
	searchLogRepo repository.SearchLogRepository
	logger        *slog.Logger
}

// SearchServiceParams holds dependencies for searchService, injected by Fx.
type SearchServiceParams struct {
	fx.In

	SalonRepo     repository.SalonRepository
	ServiceRepo   repository.ServiceRepository
	SearchLogRepo repository.SearchLogRepository
	Logger        *slog.Logger
}

// NewSearchService is the constructor for searchService.
func NewSearchService(params SearchServiceParams) usecase.SearchUsecase {
	return &searchService{
		salonRepo:     params.SalonRepo,
		serviceRepo:   params.ServiceRepo,
		searchLogRepo: params.SearchLogRepo,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *searchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *searchService) SearchSalons(ctx context.Context, input *usecase.SearchInput) (*repository.SalonSearchResult, error) {
	filter := repository.SalonFilter{
		IsLadiesOnly:    input.LadiesOnly,
		HasPrivateRooms: input.PrivateRoom,
		IsHijabFriendly: input.HijabFriendly,
		City:            input.City,
	}

	if category := strings.TrimSpace(input.ServiceCategory); category != "" {
		ids, err := srv.salonIDsWithCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		filter.IDs = ids
	}

	result, err := srv.salonRepo.Search(ctx, repository.SalonSearchParams{
		Query:     input.Query,
		Filter:    filter,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Page:      input.Page,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search salons")
	}

	if q := strings.TrimSpace(input.Query); q != "" {
		srv.logSearchAsync(ctx, q)
	}

	return result, nil
}

// salonIDsWithCategory resolves a service category to the salons offering it.
// An empty allowlist (no salon has the category) yields zero search hits.
func (srv *searchService) salonIDsWithCategory(ctx context.Context, category string) ([]uuid.UUID, error) {
	services, err := srv.serviceRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list services for category filter")
	}

	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, svc := range services {
		if !strings.EqualFold(svc.Category, category) {
			continue
		}
		if _, ok := seen[svc.SalonID]; ok {
			continue
		}
		seen[svc.SalonID] = struct{}{}
		ids = append(ids, svc.SalonID)
	}

	return ids, nil
}

// logSearchAsync records the query without delaying the response. The write
// survives request cancellation; a failure is logged and dropped.
func (srv *searchService) logSearchAsync(ctx context.Context, query string) {
	logger := srv.log(ctx)
	detached := context.WithoutCancel(ctx)

	go func() {
		if err := srv.searchLogRepo.Create(detached, &entity.SearchLog{Query: query}); err != nil {
			logger.Warn("Failed to record search query", slog.Any("error", err))
		}
	}()
}

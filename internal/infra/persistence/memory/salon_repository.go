package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

type salonRepository struct {
	store *Store
}

// NewSalonRepository is the constructor for salonRepository.
func NewSalonRepository(store *Store) repository.SalonRepository {
	return &salonRepository{store: store}
}

func (repo *salonRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Salon, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	salon, ok := repo.store.salons[id]
	if !ok {
		return nil, repository.ErrSalonNotFound
	}

	return &salon, nil
}

func (repo *salonRepository) List(_ context.Context, filter repository.SalonFilter) ([]*entity.Salon, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	salons := repo.filtered(filter)
	sort.Slice(salons, func(i, j int) bool { return salons[i].CreatedAt.After(salons[j].CreatedAt) })

	return salons, nil
}

func (repo *salonRepository) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Salon, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var salons []*entity.Salon
	for _, salon := range repo.store.salons {
		if salon.OwnerID == ownerID {
			s := salon
			salons = append(salons, &s)
		}
	}
	sort.Slice(salons, func(i, j int) bool { return salons[i].CreatedAt.Before(salons[j].CreatedAt) })

	return salons, nil
}

func (repo *salonRepository) Create(_ context.Context, salon *entity.Salon) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	salon.ID = ensureID(salon.ID)
	salon.Rating = 0
	salon.IsVerified = false
	salon.CreatedAt = nowOr(salon.CreatedAt)
	salon.UpdatedAt = salon.CreatedAt

	repo.store.salons[salon.ID] = *salon

	return nil
}

func (repo *salonRepository) Update(_ context.Context, salon *entity.Salon) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.salons[salon.ID]; !ok {
		return repository.ErrSalonNotFound
	}

	salon.UpdatedAt = time.Now()
	repo.store.salons[salon.ID] = *salon

	return nil
}

// RecalculateRating follows the relational contract: mean rounded to one
// decimal, zero when no reviews exist.
func (repo *salonRepository) RecalculateRating(_ context.Context, salonID uuid.UUID) (float64, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	salon, ok := repo.store.salons[salonID]
	if !ok {
		return 0, repository.ErrSalonNotFound
	}

	var sum, count int
	for _, review := range repo.store.reviews {
		if review.SalonID == salonID {
			sum += review.Rating
			count++
		}
	}

	var rating float64
	if count > 0 {
		rating = math.Round(float64(sum)/float64(count)*10) / 10
	}

	salon.Rating = rating
	salon.UpdatedAt = time.Now()
	repo.store.salons[salonID] = salon

	return rating, nil
}

func (repo *salonRepository) Search(_ context.Context, params repository.SalonSearchParams) (*repository.SalonSearchResult, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	salons := repo.filtered(params.Filter)

	if q := strings.TrimSpace(params.Query); q != "" {
		needle := strings.ToLower(q)
		matched := salons[:0]
		for _, salon := range salons {
			if strings.Contains(strings.ToLower(salon.NameEn), needle) ||
				strings.Contains(salon.NameAr, needle) ||
				strings.Contains(strings.ToLower(salon.DescriptionEn), needle) ||
				strings.Contains(salon.DescriptionAr, needle) {
				matched = append(matched, salon)
			}
		}
		salons = matched
	}

	sortSalons(salons, params.SortBy, params.SortOrder)

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 20
	}

	total := len(salons)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &repository.SalonSearchResult{
		Salons: salons[start:end],
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

func (repo *salonRepository) filtered(filter repository.SalonFilter) []*entity.Salon {
	var allowed map[uuid.UUID]struct{}
	if filter.IDs != nil {
		allowed = make(map[uuid.UUID]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			allowed[id] = struct{}{}
		}
	}

	salons := make([]*entity.Salon, 0, len(repo.store.salons))
	for _, salon := range repo.store.salons {
		if allowed != nil {
			if _, ok := allowed[salon.ID]; !ok {
				continue
			}
		}
		if filter.IsLadiesOnly != nil && salon.IsLadiesOnly != *filter.IsLadiesOnly {
			continue
		}
		if filter.HasPrivateRooms != nil && salon.HasPrivateRooms != *filter.HasPrivateRooms {
			continue
		}
		if filter.IsHijabFriendly != nil && salon.IsHijabFriendly != *filter.IsHijabFriendly {
			continue
		}
		if filter.City != "" && salon.City != filter.City {
			continue
		}
		s := salon
		salons = append(salons, &s)
	}

	return salons
}

func sortSalons(salons []*entity.Salon, sortBy, sortOrder string) {
	var less func(i, j int) bool
	switch sortBy {
	case "name":
		less = func(i, j int) bool { return salons[i].NameEn < salons[j].NameEn }
	case "createdAt":
		less = func(i, j int) bool { return salons[i].CreatedAt.Before(salons[j].CreatedAt) }
	default:
		less = func(i, j int) bool { return salons[i].Rating < salons[j].Rating }
	}

	if !strings.EqualFold(sortOrder, "asc") {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(salons, less)
}

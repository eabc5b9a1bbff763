package memory

import (
	"context"
	"sort"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

type promotionRepository struct {
	store *Store
}

// NewPromotionRepository is the constructor for promotionRepository.
func NewPromotionRepository(store *Store) repository.PromotionRepository {
	return &promotionRepository{store: store}
}

func (repo *promotionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Promotion, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	promotion, ok := repo.store.promotions[id]
	if !ok {
		return nil, repository.ErrPromotionNotFound
	}

	return &promotion, nil
}

func (repo *promotionRepository) FindBySalon(_ context.Context, salonID uuid.UUID) ([]*entity.Promotion, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var promotions []*entity.Promotion
	for _, promotion := range repo.store.promotions {
		if promotion.SalonID == salonID {
			p := promotion
			promotions = append(promotions, &p)
		}
	}
	sort.Slice(promotions, func(i, j int) bool { return promotions[i].StartDate.After(promotions[j].StartDate) })

	return promotions, nil
}

func (repo *promotionRepository) Create(_ context.Context, promotion *entity.Promotion) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	promotion.ID = ensureID(promotion.ID)
	promotion.CreatedAt = nowOr(promotion.CreatedAt)

	repo.store.promotions[promotion.ID] = *promotion

	return nil
}

func (repo *promotionRepository) Update(_ context.Context, promotion *entity.Promotion) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.promotions[promotion.ID]; !ok {
		return repository.ErrPromotionNotFound
	}

	repo.store.promotions[promotion.ID] = *promotion

	return nil
}

func (repo *promotionRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.promotions[id]; !ok {
		return false, nil
	}

	delete(repo.store.promotions, id)

	return true, nil
}

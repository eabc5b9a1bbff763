package memory

import (
	"context"
	"sort"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

type reviewRepository struct {
	store *Store
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store}
}

func (repo *reviewRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	return repo.collect(func(r entity.Review) bool { return r.UserID == userID }), nil
}

func (repo *reviewRepository) FindBySalon(_ context.Context, salonID uuid.UUID) ([]*entity.Review, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	return repo.collect(func(r entity.Review) bool { return r.SalonID == salonID }), nil
}

func (repo *reviewRepository) List(_ context.Context) ([]*entity.Review, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	return repo.collect(func(entity.Review) bool { return true }), nil
}

func (repo *reviewRepository) Create(_ context.Context, review *entity.Review) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	review.ID = ensureID(review.ID)
	review.CreatedAt = nowOr(review.CreatedAt)

	repo.store.reviews[review.ID] = *review

	return nil
}

func (repo *reviewRepository) collect(match func(entity.Review) bool) []*entity.Review {
	var reviews []*entity.Review
	for _, review := range repo.store.reviews {
		if match(review) {
			r := review
			reviews = append(reviews, &r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })

	return reviews
}

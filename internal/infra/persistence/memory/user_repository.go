package memory

import (
	"context"
	"sort"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	user, ok := repo.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	for _, user := range repo.store.users {
		if user.Username == username {
			u := user

			return &u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	for _, user := range repo.store.users {
		if user.Email == email {
			u := user

			return &u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) List(_ context.Context) ([]*entity.User, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	users := make([]*entity.User, 0, len(repo.store.users))
	for _, user := range repo.store.users {
		u := user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })

	return users, nil
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for _, existing := range repo.store.users {
		if existing.Username == user.Username {
			return domainerrors.ErrUsernameTaken
		}
		if existing.Email == user.Email {
			return domainerrors.ErrEmailTaken
		}
	}

	if user.Role == "" {
		user.Role = entity.RoleCustomer
	}
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = entity.LanguageEnglish
	}
	user.ID = ensureID(user.ID)
	user.CreatedAt = nowOr(user.CreatedAt)
	user.UpdatedAt = user.CreatedAt

	repo.store.users[user.ID] = *user

	return nil
}

func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()
	repo.store.users[user.ID] = *user

	return nil
}

func (repo *userRepository) AddLoyaltyPoints(_ context.Context, id uuid.UUID, points int) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	user, ok := repo.store.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.LoyaltyPoints += points
	user.UpdatedAt = time.Now()
	repo.store.users[id] = user

	return nil
}

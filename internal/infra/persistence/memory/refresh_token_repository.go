package memory

import (
	"context"
	"time"

	"lamsa/internal/domain/entity"
	"lamsa/internal/domain/repository"

	"github.com/google/uuid"
)

type refreshTokenRepository struct {
	store *Store
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(store *Store) repository.RefreshTokenRepository {
	return &refreshTokenRepository{store: store}
}

func (repo *refreshTokenRepository) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	for _, token := range repo.store.refreshTokens {
		if token.TokenHash == tokenHash {
			t := token

			return &t, nil
		}
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (repo *refreshTokenRepository) Create(_ context.Context, token *entity.RefreshToken) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	token.ID = ensureID(token.ID)
	token.CreatedAt = nowOr(token.CreatedAt)

	repo.store.refreshTokens[token.ID] = *token

	return nil
}

func (repo *refreshTokenRepository) Revoke(_ context.Context, id uuid.UUID) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	token, ok := repo.store.refreshTokens[id]
	if !ok || token.RevokedAt != nil {
		return repository.ErrRefreshTokenNotFound
	}

	now := time.Now()
	token.RevokedAt = &now
	repo.store.refreshTokens[id] = token

	return nil
}

func (repo *refreshTokenRepository) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	now := time.Now()
	for id, token := range repo.store.refreshTokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
			repo.store.refreshTokens[id] = token
		}
	}

	return nil
}

package firestore

import (
	"context"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// refreshTokenRepository implements repository.RefreshTokenRepository on Firestore.
type refreshTokenRepository struct {
	client *firestore.Client
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(client *firestore.Client) repository.RefreshTokenRepository {
	return &refreshTokenRepository{client: client}
}

func (repo *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	docs, err := collectDocs[refreshTokenDoc](
		repo.client.Collection(colRefreshTokens).Where("tokenHash", "==", tokenHash).Limit(1).Documents(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find refresh token by hash")
	}
	if len(docs) == 0 {
		return nil, repository.ErrRefreshTokenNotFound
	}

	return toRefreshTokenDomain(docs[0]), nil
}

func (repo *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	token.ID = newDocID(token.ID)
	token.CreatedAt = time.Now()

	doc := fromRefreshTokenDomain(token)
	if _, err := repo.client.Collection(colRefreshTokens).Doc(doc.ID).Create(ctx, doc); err != nil {
		if isAlreadyExists(err) {
			return domainerrors.ErrConflict.WrapMessage("refresh token document already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh token")
	}

	return nil
}

func (repo *refreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	_, err := repo.client.Collection(colRefreshTokens).Doc(id.String()).Update(ctx, []firestore.Update{
		{Path: "revokedAt", Value: time.Now()},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrRefreshTokenNotFound
		}

		return errors.Wrap(err, "failed to revoke refresh token")
	}

	return nil
}

func (repo *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	docs, err := collectDocs[refreshTokenDoc](
		repo.client.Collection(colRefreshTokens).Where("userId", "==", userID.String()).Documents(ctx))
	if err != nil {
		return errors.Wrap(err, "failed to load user refresh tokens")
	}

	now := time.Now()
	for _, doc := range docs {
		if doc.RevokedAt != nil {
			continue
		}
		_, err := repo.client.Collection(colRefreshTokens).Doc(doc.ID).Update(ctx, []firestore.Update{
			{Path: "revokedAt", Value: now},
		})
		if err != nil && !isNotFound(err) {
			return errors.Wrap(err, "failed to revoke user refresh token")
		}
	}

	return nil
}

// --- Mapper functions ---

func toRefreshTokenDomain(data *refreshTokenDoc) *entity.RefreshToken {
	if data == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:        mustParseUUID(data.ID),
		UserID:    mustParseUUID(data.UserID),
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		RevokedAt: data.RevokedAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromRefreshTokenDomain(data *entity.RefreshToken) *refreshTokenDoc {
	if data == nil {
		return nil
	}

	return &refreshTokenDoc{
		ID:        data.ID.String(),
		UserID:    data.UserID.String(),
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		RevokedAt: data.RevokedAt,
		CreatedAt: data.CreatedAt,
	}
}

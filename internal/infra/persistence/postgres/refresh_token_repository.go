package postgres

import (
	"context"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// refreshTokenRepository implements repository.RefreshTokenRepository using GORM.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// FindByHash retrieves a stored token by its hash.
func (repo *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel

	if err := repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token by hash")
	}

	return toRefreshTokenDomain(&tokenM), nil
}

// Create persists a new refresh token.
func (repo *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	tokenM := fromRefreshTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("token user does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// Revoke marks the token unusable.
func (repo *refreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to revoke refresh token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

// RevokeAllForUser marks every token of the user unusable. Revoking a user
// with no live tokens is not an error.
func (repo *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
	if err != nil {
		return errors.Wrap(err, "failed to revoke user refresh tokens")
	}

	return nil
}

// --- Mapper functions ---

func toRefreshTokenDomain(data *model.RefreshTokenModel) *entity.RefreshToken {
	if data == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		RevokedAt: data.RevokedAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromRefreshTokenDomain(data *entity.RefreshToken) *model.RefreshTokenModel {
	if data == nil {
		return nil
	}

	return &model.RefreshTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		RevokedAt: data.RevokedAt,
		CreatedAt: data.CreatedAt,
	}
}

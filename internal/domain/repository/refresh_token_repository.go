package repository

import (
	"context"
	"errors"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRefreshTokenNotFound is returned when no refresh token matches the lookup.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores revocable login sessions.
type RefreshTokenRepository interface {
	// FindByHash retrieves a stored token by its hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// Create persists a new refresh token.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// Revoke marks the token unusable.
	Revoke(ctx context.Context, id uuid.UUID) error

	// RevokeAllForUser marks every token of the user unusable (logout).
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

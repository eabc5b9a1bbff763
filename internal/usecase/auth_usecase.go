// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username          string
	Email             string
	Password          string
	FullName          string
	Phone             string
	Role              entity.Role
	PreferredLanguage entity.Language
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the issued token pair together with the account.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the interface for authentication operations.
// This is the contract that the delivery layer (API handlers) depends on.
type AuthUsecase interface {
	// Register creates a new account. Duplicate username or email is a
	// conflict, reported before any insert happens.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials and issues an access/refresh token pair.
	// The refresh token is persisted hashed so it can be revoked.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a fresh pair, rotating
	// the stored token.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes every refresh token of the user.
	Logout(ctx context.Context, userID uuid.UUID) error

	// Session returns the account behind an authenticated request.
	Session(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

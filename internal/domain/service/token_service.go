package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the identity embedded in an issued token.
type Claims struct {
	UserID uuid.UUID
	Role   string
	Type   string
	jwt.RegisteredClaims
}

// TokenService issues and validates the signed tokens used for API auth.
type TokenService interface {
	// GenerateTokens creates an access token and a refresh token for the
	// user. The role is embedded in the access token only.
	GenerateTokens(userID uuid.UUID, role string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken parses and verifies an access token.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken parses and verifies a refresh token.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// HashToken derives the storage hash of a refresh token. Only hashes are
	// persisted; the raw token never touches the database.
	HashToken(token string) string

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}

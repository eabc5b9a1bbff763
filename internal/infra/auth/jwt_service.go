package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"lamsa/config"
	"lamsa/internal/domain/service"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     time.Minute * 15,
		refreshTTL:    time.Hour * 24 * 7,
	}, nil
}

// GenerateTokens creates a new access token and refresh token for a given user and role.
func (s *jwtService) GenerateTokens(userID uuid.UUID, role string) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.generateToken(userID, role, s.accessTTL, s.accessSecret, tokenTypeAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.generateToken(userID, "", s.refreshTTL, s.refreshSecret, tokenTypeRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAccessToken parses and verifies an access token.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, tokenTypeAccess)
}

// ValidateRefreshToken parses and verifies a refresh token.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, tokenTypeRefresh)
}

// HashToken derives the storage hash of a refresh token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// RefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) validateToken(tokenString, secret, wantType string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	tokenType, _ := mapClaims["type"].(string)
	if tokenType != wantType {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, jwt.ErrTokenInvalidClaims
	}

	role, _ := mapClaims["role"].(string)

	return &service.Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
	}, nil
}

// generateToken is a private helper to create a JWT with specific claims.
// Only the access token carries the role, for stateless authorization.
func (s *jwtService) generateToken(userID uuid.UUID, role string, ttl time.Duration, secret, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
		"type": tokenType,
	}
	if role != "" {
		claims["role"] = role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

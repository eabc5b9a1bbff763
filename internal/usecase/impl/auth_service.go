// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/domain/service"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account after checking both unique fields, so a
// duplicate reports 409 before any insert is attempted.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	if _, err := srv.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domainerrors.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check username")
	}
	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	role := input.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	language := input.PreferredLanguage
	if language == "" {
		language = entity.LanguageEnglish
	}

	user := &entity.User{
		Username:          input.Username,
		Email:             input.Email,
		PasswordHash:      passwordHash,
		FullName:          input.FullName,
		Phone:             input.Phone,
		Role:              role,
		PreferredLanguage: language,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return user, nil
}

// Login verifies the credentials and issues a token pair. Lookup failure and
// password mismatch are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	output, err := srv.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return output, nil
}

// Refresh validates and rotates a refresh token: the presented token is
// revoked and a fresh pair is issued.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token validation failed")
	}

	stored, err := srv.refreshTokenRepo.FindByHash(ctx, srv.tokenService.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to look up refresh token")
	}
	if !stored.Usable(time.Now()) || stored.UserID != claims.UserID {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find user for refresh")
	}

	if err := srv.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, errors.Wrap(err, "failed to revoke rotated refresh token")
	}

	return srv.issueTokens(ctx, user)
}

// Logout revokes every refresh token the user holds.
func (srv *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := srv.refreshTokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to revoke refresh tokens")
	}

	srv.log(ctx).Info("Logged out", slog.Any("userID", userID))

	return nil
}

// Session returns the account behind the authenticated request.
func (srv *authService) Session(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}

func (srv *authService) issueTokens(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	stored := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.Create(ctx, stored); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

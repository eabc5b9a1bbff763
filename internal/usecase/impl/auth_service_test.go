package impl

import (
	"context"
	"testing"

	"lamsa/config"
	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/infra/auth"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) usecase.AuthUsecase {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	store := memory.NewStore()

	return NewAuthService(AuthServiceParams{
		UserRepo:         memory.NewUserRepository(store),
		RefreshTokenRepo: memory.NewRefreshTokenRepository(store),
		Hasher:           auth.NewBcryptHasher(),
		TokenService:     tokenSvc,
		Logger:           newDiscardLogger(),
	})
}

func registerInput(username, email string) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username: username,
		Email:    email,
		Password: "password123",
		FullName: "Test User",
	}
}

func TestAuthService_Register_DefaultsAndDuplicates(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	user, err := uc.Register(ctx, registerInput("layla", "layla@example.com"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.Equal(t, entity.LanguageEnglish, user.PreferredLanguage)
	assert.NotEqual(t, "password123", user.PasswordHash, "password must not be stored raw")

	// Duplicates are reported before any insert.
	_, err = uc.Register(ctx, registerInput("layla", "other@example.com"))
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))

	_, err = uc.Register(ctx, registerInput("other", "layla@example.com"))
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAuthService_Login(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, registerInput("nour", "nour@example.com"))
	require.NoError(t, err)

	output, err := uc.Login(ctx, &usecase.LoginInput{Username: "nour", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
	assert.Equal(t, "nour", output.User.Username)

	// Wrong password and unknown user are indistinguishable.
	_, err = uc.Login(ctx, &usecase.LoginInput{Username: "nour", Password: "wrong"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = uc.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "password123"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, registerInput("dalia", "dalia@example.com"))
	require.NoError(t, err)

	login, err := uc.Login(ctx, &usecase.LoginInput{Username: "dalia", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The presented token was revoked by the rotation.
	_, err = uc.Refresh(ctx, login.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))

	// The rotated token still works.
	_, err = uc.Refresh(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_Logout_RevokesAllTokens(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	user, err := uc.Register(ctx, registerInput("rania", "rania@example.com"))
	require.NoError(t, err)

	first, err := uc.Login(ctx, &usecase.LoginInput{Username: "rania", Password: "password123"})
	require.NoError(t, err)
	second, err := uc.Login(ctx, &usecase.LoginInput{Username: "rania", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, user.ID))

	_, err = uc.Refresh(ctx, first.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
	_, err = uc.Refresh(ctx, second.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestAuthService_Session(t *testing.T) {
	uc := newAuthFixture(t)
	ctx := context.Background()

	user, err := uc.Register(ctx, registerInput("hiba", "hiba@example.com"))
	require.NoError(t, err)

	session, err := uc.Session(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.ID)
}

package impl

import (
	"context"
	"io"
	"strings"
	"testing"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/domain/repository"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImageStore records the last saved key and returns a predictable URL.
type fakeImageStore struct {
	lastKey         string
	lastContentType string
}

func (s *fakeImageStore) Save(_ context.Context, key, contentType string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.lastKey = key
	s.lastContentType = contentType

	return "https://images.example.com/" + key, nil
}

func newSalonFixture(t *testing.T) (*testEnv, usecase.SalonUsecase, *fakeImageStore) {
	t.Helper()

	env := newTestEnv()
	images := &fakeImageStore{}
	uc := NewSalonService(SalonServiceParams{
		SalonRepo:   memory.NewSalonRepository(env.store),
		ServiceRepo: memory.NewServiceRepository(env.store),
		ReviewRepo:  memory.NewReviewRepository(env.store),
		ImageStore:  images,
		Logger:      newDiscardLogger(),
	})

	return env, uc, images
}

func TestSalonService_CreateSalon_RequiresOwnerRole(t *testing.T) {
	env, uc, _ := newSalonFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	_, err := uc.CreateSalon(ctx, usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}, &usecase.CreateSalonInput{NameEn: "Nope"})
	assert.True(t, errors.Is(err, domainerrors.ErrNotSalonOwner))

	owner := env.createUser(t, entity.RoleSalonOwner)
	salon, err := uc.CreateSalon(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, &usecase.CreateSalonInput{
		NameEn:       "Glow Studio",
		NameAr:       "استوديو التألق",
		City:         "Beirut",
		IsLadiesOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, salon.OwnerID)
	assert.NotEqual(t, uuid.Nil, salon.ID)
	assert.True(t, salon.IsLadiesOnly)
}

func TestSalonService_GetSalon_NestsServicesAndReviews(t *testing.T) {
	env, uc, _ := newSalonFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	env.createSvc(t, salon.ID, 90, "hair")
	env.createSvc(t, salon.ID, 40, "nails")

	err := memory.NewReviewRepository(env.store).Create(ctx, &entity.Review{
		ID:      uuid.New(),
		SalonID: salon.ID,
		UserID:  customer.ID,
		Rating:  5,
	})
	require.NoError(t, err)

	details, err := uc.GetSalon(ctx, salon.ID)
	require.NoError(t, err)
	assert.Equal(t, salon.ID, details.Salon.ID)
	assert.Len(t, details.Services, 2)
	assert.Len(t, details.Reviews, 1)

	_, err = uc.GetSalon(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrSalonNotFound))
}

func TestSalonService_UpdateSalon_PartialAndOwned(t *testing.T) {
	env, uc, _ := newSalonFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	stranger := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)

	newName := "Renamed"
	ladies := true

	// Only the owner (or an admin) may update.
	_, err := uc.UpdateSalon(ctx, usecase.Actor{UserID: stranger.ID, Role: entity.RoleSalonOwner}, salon.ID, &usecase.UpdateSalonInput{NameEn: &newName})
	assert.True(t, errors.Is(err, domainerrors.ErrNotSalonOwner))

	updated, err := uc.UpdateSalon(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, salon.ID, &usecase.UpdateSalonInput{
		NameEn:       &newName,
		IsLadiesOnly: &ladies,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.NameEn)
	assert.True(t, updated.IsLadiesOnly)

	// Unset fields are untouched.
	assert.Equal(t, salon.NameAr, updated.NameAr)
	assert.Equal(t, salon.City, updated.City)
}

func TestSalonService_UploadSalonImage(t *testing.T) {
	env, uc, images := newSalonFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)

	updated, err := uc.UploadSalonImage(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, salon.ID, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "image/png", images.lastContentType)
	assert.Contains(t, updated.ImageURL, salon.ID.String())

	reloaded, err := memory.NewSalonRepository(env.store).FindByID(ctx, salon.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ImageURL, reloaded.ImageURL)
}

func TestSalonService_OwnerSalons(t *testing.T) {
	env, uc, _ := newSalonFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	other := env.createUser(t, entity.RoleSalonOwner)
	env.createSalon(t, owner.ID)
	env.createSalon(t, owner.ID)
	env.createSalon(t, other.ID)

	salons, err := uc.OwnerSalons(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, salons, 2)
}

func TestSalonService_ListSalons_Filtered(t *testing.T) {
	env, uc, _ := newSalonFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	ladies := env.createSalon(t, owner.ID)
	ladies.IsLadiesOnly = true
	require.NoError(t, memory.NewSalonRepository(env.store).Update(ctx, ladies))
	env.createSalon(t, owner.ID)

	want := true
	salons, err := uc.ListSalons(ctx, repository.SalonFilter{IsLadiesOnly: &want})
	require.NoError(t, err)
	require.Len(t, salons, 1)
	assert.Equal(t, ladies.ID, salons[0].ID)
}

package impl

import (
	"context"
	"testing"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T) (*testEnv, usecase.ServiceUsecase) {
	t.Helper()

	env := newTestEnv()
	uc := NewServiceCatalogService(ServiceCatalogParams{
		ServiceRepo: memory.NewServiceRepository(env.store),
		SalonRepo:   memory.NewSalonRepository(env.store),
		Logger:      newDiscardLogger(),
	})

	return env, uc
}

func TestServiceCatalog_CreateService_OwnedSalonOnly(t *testing.T) {
	env, uc := newCatalogFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	stranger := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)

	input := &usecase.CreateServiceInput{
		SalonID:         salon.ID,
		NameEn:          "Blowout",
		DurationMinutes: 30,
		Price:           55,
		Category:        "hair",
	}

	_, err := uc.CreateService(ctx, usecase.Actor{UserID: stranger.ID, Role: entity.RoleSalonOwner}, input)
	assert.True(t, errors.Is(err, domainerrors.ErrNotSalonOwner))

	svc, err := uc.CreateService(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, input)
	require.NoError(t, err)
	assert.Equal(t, salon.ID, svc.SalonID)
	assert.NotEqual(t, uuid.Nil, svc.ID)

	input.SalonID = uuid.New()
	_, err = uc.CreateService(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, input)
	assert.True(t, errors.Is(err, domainerrors.ErrSalonNotFound))
}

func TestServiceCatalog_DurationMustBePositive(t *testing.T) {
	env, uc := newCatalogFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	actor := usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}

	for _, minutes := range []int{0, -30} {
		_, err := uc.CreateService(ctx, actor, &usecase.CreateServiceInput{
			SalonID:         salon.ID,
			NameEn:          "Express trim",
			DurationMinutes: minutes,
			Price:           25,
			Category:        "hair",
		})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "duration %d", minutes)
	}

	// A valid service cannot be patched down to zero either.
	svc := env.createSvc(t, salon.ID, 25, "hair")
	zero := 0
	_, err := uc.UpdateService(ctx, actor, svc.ID, &usecase.UpdateServiceInput{DurationMinutes: &zero})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	reloaded, err := memory.NewServiceRepository(env.store).FindByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, svc.DurationMinutes, reloaded.DurationMinutes)
}

func TestServiceCatalog_UpdateService_Partial(t *testing.T) {
	env, uc := newCatalogFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 80, "nails")
	actor := usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}

	newPrice := 95.0
	updated, err := uc.UpdateService(ctx, actor, svc.ID, &usecase.UpdateServiceInput{Price: &newPrice})
	require.NoError(t, err)
	assert.InDelta(t, 95.0, updated.Price, 1e-9)
	assert.Equal(t, svc.NameEn, updated.NameEn)
	assert.Equal(t, "nails", updated.Category)

	_, err = uc.UpdateService(ctx, actor, uuid.New(), &usecase.UpdateServiceInput{Price: &newPrice})
	assert.True(t, errors.Is(err, domainerrors.ErrServiceNotFound))
}

func TestServiceCatalog_DeleteService(t *testing.T) {
	env, uc := newCatalogFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	stranger := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	svc := env.createSvc(t, salon.ID, 80, "spa")

	err := uc.DeleteService(ctx, usecase.Actor{UserID: stranger.ID, Role: entity.RoleSalonOwner}, svc.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotSalonOwner))

	require.NoError(t, uc.DeleteService(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, svc.ID))

	err = uc.DeleteService(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, svc.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrServiceNotFound))
}

func TestServiceCatalog_OwnerServices_SpansSalons(t *testing.T) {
	env, uc := newCatalogFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	other := env.createUser(t, entity.RoleSalonOwner)
	salonA := env.createSalon(t, owner.ID)
	salonB := env.createSalon(t, owner.ID)
	foreign := env.createSalon(t, other.ID)

	env.createSvc(t, salonA.ID, 10, "hair")
	env.createSvc(t, salonB.ID, 20, "nails")
	env.createSvc(t, foreign.ID, 30, "spa")

	services, err := uc.OwnerServices(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, services, 2)
}

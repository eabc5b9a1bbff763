package impl

import (
	"context"
	"testing"
	"time"

	"lamsa/internal/domain/entity"
	domainerrors "lamsa/internal/domain/errors"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromotionFixture(t *testing.T) (*testEnv, usecase.PromotionUsecase) {
	t.Helper()

	env := newTestEnv()
	uc := NewPromotionService(PromotionServiceParams{
		PromotionRepo: memory.NewPromotionRepository(env.store),
		SalonRepo:     memory.NewSalonRepository(env.store),
		Logger:        newDiscardLogger(),
	})

	return env, uc
}

func TestPromotionService_CreatePromotion(t *testing.T) {
	env, uc := newPromotionFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	stranger := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)

	input := &usecase.CreatePromotionInput{
		SalonID:            salon.ID,
		TitleEn:            "Summer sale",
		DiscountPercentage: 20,
		StartDate:          time.Now().Add(-time.Hour),
		EndDate:            time.Now().Add(24 * time.Hour),
	}

	// Only the salon's owner may run promotions on it.
	_, err := uc.CreatePromotion(ctx, usecase.Actor{UserID: stranger.ID, Role: entity.RoleSalonOwner}, input)
	assert.True(t, errors.Is(err, domainerrors.ErrNotSalonOwner))

	promotion, err := uc.CreatePromotion(ctx, usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}, input)
	require.NoError(t, err)
	assert.Equal(t, entity.PromotionScopeAll, promotion.Scope)
	assert.True(t, promotion.IsActive)
}

func TestPromotionService_CreatePromotion_Validation(t *testing.T) {
	env, uc := newPromotionFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	actor := usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}

	start := time.Now()
	end := start.Add(24 * time.Hour)

	_, err := uc.CreatePromotion(ctx, actor, &usecase.CreatePromotionInput{
		SalonID:            salon.ID,
		DiscountPercentage: 20,
		StartDate:          end,
		EndDate:            start,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "end before start")

	for _, discount := range []int{0, 101} {
		_, err = uc.CreatePromotion(ctx, actor, &usecase.CreatePromotionInput{
			SalonID:            salon.ID,
			DiscountPercentage: discount,
			StartDate:          start,
			EndDate:            end,
		})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "discount %d", discount)
	}

	// Specific scope needs at least one service.
	_, err = uc.CreatePromotion(ctx, actor, &usecase.CreatePromotionInput{
		SalonID:            salon.ID,
		DiscountPercentage: 20,
		StartDate:          start,
		EndDate:            end,
		Scope:              entity.PromotionScopeSpecific,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestPromotionService_SalonPromotions_ComputesIsActive(t *testing.T) {
	env, uc := newPromotionFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	actor := usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}

	_, err := uc.CreatePromotion(ctx, actor, &usecase.CreatePromotionInput{
		SalonID:            salon.ID,
		TitleEn:            "Running",
		DiscountPercentage: 10,
		StartDate:          time.Now().Add(-time.Hour),
		EndDate:            time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	expired, err := uc.CreatePromotion(ctx, actor, &usecase.CreatePromotionInput{
		SalonID:            salon.ID,
		TitleEn:            "Over",
		DiscountPercentage: 10,
		StartDate:          time.Now().Add(-48 * time.Hour),
		EndDate:            time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, expired.IsActive)

	promotions, err := uc.SalonPromotions(ctx, salon.ID)
	require.NoError(t, err)
	require.Len(t, promotions, 2)

	active := map[string]bool{}
	for _, p := range promotions {
		active[p.TitleEn] = p.IsActive
	}
	assert.True(t, active["Running"])
	assert.False(t, active["Over"])
}

func TestPromotionService_UpdateAndDelete_Owned(t *testing.T) {
	env, uc := newPromotionFixture(t)
	ctx := context.Background()

	owner := env.createUser(t, entity.RoleSalonOwner)
	stranger := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)
	actor := usecase.Actor{UserID: owner.ID, Role: entity.RoleSalonOwner}

	promotion, err := uc.CreatePromotion(ctx, actor, &usecase.CreatePromotionInput{
		SalonID:            salon.ID,
		TitleEn:            "Opening offer",
		DiscountPercentage: 15,
		StartDate:          time.Now(),
		EndDate:            time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)

	newDiscount := 30
	_, err = uc.UpdatePromotion(ctx, usecase.Actor{UserID: stranger.ID, Role: entity.RoleSalonOwner}, promotion.ID, &usecase.UpdatePromotionInput{DiscountPercentage: &newDiscount})
	assert.True(t, errors.Is(err, domainerrors.ErrNotSalonOwner))

	updated, err := uc.UpdatePromotion(ctx, actor, promotion.ID, &usecase.UpdatePromotionInput{DiscountPercentage: &newDiscount})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.DiscountPercentage)
	assert.Equal(t, "Opening offer", updated.TitleEn)

	err = uc.DeletePromotion(ctx, usecase.Actor{UserID: stranger.ID, Role: entity.RoleSalonOwner}, promotion.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotSalonOwner))

	require.NoError(t, uc.DeletePromotion(ctx, actor, promotion.ID))

	err = uc.DeletePromotion(ctx, actor, promotion.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrPromotionNotFound))

	_, err = uc.UpdatePromotion(ctx, actor, uuid.New(), &usecase.UpdatePromotionInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrPromotionNotFound))
}

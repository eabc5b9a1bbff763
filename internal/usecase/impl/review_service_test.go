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

func newReviewFixture(t *testing.T) (*testEnv, usecase.ReviewUsecase) {
	t.Helper()

	env := newTestEnv()
	uc := NewReviewService(ReviewServiceParams{
		ReviewRepo: memory.NewReviewRepository(env.store),
		SalonRepo:  memory.NewSalonRepository(env.store),
		Logger:     newDiscardLogger(),
	})

	return env, uc
}

func TestReviewService_CreateReview_RecomputesRating(t *testing.T) {
	env, uc := newReviewFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salon := env.createSalon(t, owner.ID)

	actor := usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}

	_, err := uc.CreateReview(ctx, actor, &usecase.CreateReviewInput{SalonID: salon.ID, Rating: 4})
	require.NoError(t, err)
	_, err = uc.CreateReview(ctx, actor, &usecase.CreateReviewInput{SalonID: salon.ID, Rating: 5})
	require.NoError(t, err)

	// The rating is the mean over all reviews: (4+5)/2 = 4.5.
	reloaded, err := memory.NewSalonRepository(env.store).FindByID(ctx, salon.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, reloaded.Rating, 1e-9)
}

func TestReviewService_CreateReview_RatingOrderIndependent(t *testing.T) {
	ratings := [][]int{{2, 5, 5}, {5, 2, 5}, {5, 5, 2}}

	for _, order := range ratings {
		env, uc := newReviewFixture(t)
		ctx := context.Background()

		customer := env.createUser(t, entity.RoleCustomer)
		owner := env.createUser(t, entity.RoleSalonOwner)
		salon := env.createSalon(t, owner.ID)
		actor := usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}

		for _, rating := range order {
			_, err := uc.CreateReview(ctx, actor, &usecase.CreateReviewInput{SalonID: salon.ID, Rating: rating})
			require.NoError(t, err)
		}

		reloaded, err := memory.NewSalonRepository(env.store).FindByID(ctx, salon.ID)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, reloaded.Rating, 1e-9)
	}
}

func TestReviewService_CreateReview_RejectsOutOfRangeRating(t *testing.T) {
	env, uc := newReviewFixture(t)
	customer := env.createUser(t, entity.RoleCustomer)
	actor := usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}

	for _, rating := range []int{0, -1, 6} {
		_, err := uc.CreateReview(context.Background(), actor, &usecase.CreateReviewInput{SalonID: uuid.New(), Rating: rating})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "rating %d", rating)
	}
}

func TestReviewService_CreateReview_UnknownSalon(t *testing.T) {
	env, uc := newReviewFixture(t)
	customer := env.createUser(t, entity.RoleCustomer)

	_, err := uc.CreateReview(context.Background(), usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}, &usecase.CreateReviewInput{
		SalonID: uuid.New(),
		Rating:  3,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrSalonNotFound))
}

func TestReviewService_ListReviews_FilterBySalon(t *testing.T) {
	env, uc := newReviewFixture(t)
	ctx := context.Background()

	customer := env.createUser(t, entity.RoleCustomer)
	owner := env.createUser(t, entity.RoleSalonOwner)
	salonA := env.createSalon(t, owner.ID)
	salonB := env.createSalon(t, owner.ID)
	actor := usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer}

	_, err := uc.CreateReview(ctx, actor, &usecase.CreateReviewInput{SalonID: salonA.ID, Rating: 5})
	require.NoError(t, err)
	_, err = uc.CreateReview(ctx, actor, &usecase.CreateReviewInput{SalonID: salonB.ID, Rating: 3})
	require.NoError(t, err)

	all, err := uc.ListReviews(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := uc.ListReviews(ctx, &salonA.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, salonA.ID, scoped[0].SalonID)
}

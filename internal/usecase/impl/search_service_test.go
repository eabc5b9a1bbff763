package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lamsa/internal/domain/entity"
	"lamsa/internal/infra/persistence/memory"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFixture(t *testing.T) (*testEnv, usecase.SearchUsecase, *capturingSearchLogRepo) {
	t.Helper()

	env := newTestEnv()
	searchLogs := newCapturingSearchLogRepo()
	uc := NewSearchService(SearchServiceParams{
		SalonRepo:     memory.NewSalonRepository(env.store),
		ServiceRepo:   memory.NewServiceRepository(env.store),
		SearchLogRepo: searchLogs,
		Logger:        newDiscardLogger(),
	})

	return env, uc, searchLogs
}

func seedSalons(t *testing.T, env *testEnv, ownerID uuid.UUID, n int) []*entity.Salon {
	t.Helper()

	repo := memory.NewSalonRepository(env.store)
	salons := make([]*entity.Salon, 0, n)
	for i := 1; i <= n; i++ {
		salon := &entity.Salon{
			ID:      uuid.New(),
			OwnerID: ownerID,
			NameEn:  fmt.Sprintf("Salon %02d", i),
			City:    "Beirut",
		}
		require.NoError(t, repo.Create(context.Background(), salon))
		salons = append(salons, salon)
	}

	return salons
}

func TestSearchService_Pagination(t *testing.T) {
	env, uc, _ := newSearchFixture(t)
	owner := env.createUser(t, entity.RoleSalonOwner)
	seedSalons(t, env, owner.ID, 25)

	result, err := uc.SearchSalons(context.Background(), &usecase.SearchInput{
		SortBy:    "name",
		SortOrder: "asc",
		Page:      2,
		Limit:     10,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.Limit)
	require.Len(t, result.Salons, 10)

	// Page 2 with limit 10 holds items 11 through 20.
	assert.Equal(t, "Salon 11", result.Salons[0].NameEn)
	assert.Equal(t, "Salon 20", result.Salons[9].NameEn)
}

func TestSearchService_FreeTextQuery(t *testing.T) {
	env, uc, _ := newSearchFixture(t)
	owner := env.createUser(t, entity.RoleSalonOwner)

	repo := memory.NewSalonRepository(env.store)
	match := &entity.Salon{ID: uuid.New(), OwnerID: owner.ID, NameEn: "Glow Studio", City: "Beirut"}
	miss := &entity.Salon{ID: uuid.New(), OwnerID: owner.ID, NameEn: "Cut Corner", City: "Beirut"}
	require.NoError(t, repo.Create(context.Background(), match))
	require.NoError(t, repo.Create(context.Background(), miss))

	result, err := uc.SearchSalons(context.Background(), &usecase.SearchInput{Query: "glow"})
	require.NoError(t, err)
	require.Len(t, result.Salons, 1)
	assert.Equal(t, "Glow Studio", result.Salons[0].NameEn)
}

func TestSearchService_ServiceCategoryAllowlist(t *testing.T) {
	env, uc, _ := newSearchFixture(t)
	owner := env.createUser(t, entity.RoleSalonOwner)

	hairSalon := env.createSalon(t, owner.ID)
	nailSalon := env.createSalon(t, owner.ID)
	env.createSvc(t, hairSalon.ID, 100, "hair")
	env.createSvc(t, nailSalon.ID, 50, "nails")

	result, err := uc.SearchSalons(context.Background(), &usecase.SearchInput{ServiceCategory: "HAIR"})
	require.NoError(t, err)
	require.Len(t, result.Salons, 1)
	assert.Equal(t, hairSalon.ID, result.Salons[0].ID)

	// A category no salon offers yields zero hits, not an unfiltered list.
	empty, err := uc.SearchSalons(context.Background(), &usecase.SearchInput{ServiceCategory: "henna"})
	require.NoError(t, err)
	assert.Empty(t, empty.Salons)
	assert.Zero(t, empty.Total)
}

func TestSearchService_LogsNonEmptyQueryAsync(t *testing.T) {
	env, uc, searchLogs := newSearchFixture(t)
	owner := env.createUser(t, entity.RoleSalonOwner)
	seedSalons(t, env, owner.ID, 1)

	_, err := uc.SearchSalons(context.Background(), &usecase.SearchInput{Query: "  balayage  "})
	require.NoError(t, err)

	select {
	case q := <-searchLogs.queries:
		assert.Equal(t, "balayage", q)
	case <-time.After(2 * time.Second):
		t.Fatal("search query was never logged")
	}
}

func TestSearchService_EmptyQueryNotLogged(t *testing.T) {
	env, uc, searchLogs := newSearchFixture(t)
	owner := env.createUser(t, entity.RoleSalonOwner)
	seedSalons(t, env, owner.ID, 3)

	result, err := uc.SearchSalons(context.Background(), &usecase.SearchInput{Query: "   "})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)

	select {
	case q := <-searchLogs.queries:
		t.Fatalf("blank query %q must not be logged", q)
	case <-time.After(100 * time.Millisecond):
	}
}

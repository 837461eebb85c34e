package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/realty/internal/lib/utils"
	"github.com/deppfellow/realty/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCity(t *testing.T, f *fixture, name, state string) *model.City {
	t.Helper()

	p := &model.CreateCityPayload{Name: name, State: state, ZipCode: "13000-000"}
	require.NoError(t, p.Validate())
	city, err := f.services.City.Create(context.Background(), p)
	require.NoError(t, err)
	return city
}

func TestCityService_CreateDefaultsToActive(t *testing.T) {
	f := newFixture(t)

	city := createCity(t, f, "Campinas", "sp")
	assert.True(t, city.Active)
	assert.Equal(t, "SP", city.State)
	assert.NotEqual(t, uuid.Nil, city.ID)
}

func TestCityService_RejectsDuplicateNameInState(t *testing.T) {
	f := newFixture(t)
	createCity(t, f, "Campinas", "SP")

	_, err := f.services.City.Create(context.Background(), &model.CreateCityPayload{Name: "CAMPINAS", State: "SP", ZipCode: "13000-000"})
	requireHTTPError(t, err, http.StatusBadRequest, "CITY_ALREADY_EXISTS")

	other, err := f.services.City.Create(context.Background(), &model.CreateCityPayload{Name: "Campinas", State: "GO", ZipCode: "74000-000"})
	require.NoError(t, err)
	assert.Equal(t, "GO", other.State)
}

func TestCityService_UpdateKeepsOwnName(t *testing.T) {
	f := newFixture(t)
	city := createCity(t, f, "Campinas", "SP")

	updated, err := f.services.City.Update(context.Background(), &model.UpdateCityPayload{
		ID:     city.ID,
		Name:   utils.Ptr("Campinas"),
		Active: utils.Ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "Campinas", updated.Name)
}

func TestCityService_DeleteRefusesWhileNeighborhoodsExist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	city := createCity(t, f, "Campinas", "SP")

	n, err := f.services.Neighborhood.Create(ctx, &model.CreateNeighborhoodPayload{Name: "Cambuí", CityID: city.ID})
	require.NoError(t, err)

	err = f.services.City.Delete(ctx, city.ID)
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "CITY_IN_USE")
	assert.Equal(t, map[string]int64{"neighborhoods": 1}, httpErr.Details)

	require.NoError(t, f.services.Neighborhood.Delete(ctx, n.ID))
	require.NoError(t, f.services.City.Delete(ctx, city.ID))

	_, err = f.services.City.Get(ctx, city.ID)
	requireHTTPError(t, err, http.StatusNotFound, "CITY_NOT_FOUND")
}

func TestCityService_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	city := createCity(t, f, "Campinas", "SP")

	state, err := f.services.City.ToggleStatus(ctx, city.ID)
	require.NoError(t, err)
	assert.False(t, state.Active)

	list, err := f.services.City.ListByState(ctx, &model.CitiesByStateQuery{State: "SP"})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.services.City.ListByState(ctx, &model.CitiesByStateQuery{State: "SP", Active: utils.Ptr(false)})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCityService_ListPagination(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Americana", "Barueri", "Campinas"} {
		createCity(t, f, name, "SP")
	}

	result, err := f.services.City.List(context.Background(), &model.ListCitiesQuery{PageQuery: model.PageQuery{Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, result.Cities, 2)
	assert.Equal(t, model.Pagination{Total: 3, Page: 1, Limit: 2, TotalPages: 2}, result.Pagination)
}

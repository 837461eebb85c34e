package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/realty/internal/lib/utils"
	"github.com/deppfellow/realty/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyTypeService_RejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	createPropertyType(t, f, "Apartment")
	house := createPropertyType(t, f, "House")

	_, err := f.services.PropertyType.Create(ctx, &model.CreatePropertyTypePayload{Name: "APARTMENT", Category: model.CategoryCommercial})
	requireHTTPError(t, err, http.StatusBadRequest, "PROPERTY_TYPE_ALREADY_EXISTS")

	_, err = f.services.PropertyType.Update(ctx, &model.UpdatePropertyTypePayload{ID: house.ID, Name: utils.Ptr("Apartment")})
	requireHTTPError(t, err, http.StatusBadRequest, "PROPERTY_TYPE_ALREADY_EXISTS")

	updated, err := f.services.PropertyType.Update(ctx, &model.UpdatePropertyTypePayload{ID: house.ID, Name: utils.Ptr("House"), Category: utils.Ptr(model.CategoryRural)})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryRural, updated.Category)
}

func TestPropertyTypeService_DeleteRefusesWhileInUse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pt := createPropertyType(t, f, "Apartment")

	_, err := f.services.Property.Create(ctx, propertyPayload(pt.ID, "Park view"))
	require.NoError(t, err)

	err = f.services.PropertyType.Delete(ctx, pt.ID)
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "PROPERTY_TYPE_IN_USE")
	assert.Equal(t, map[string]int64{"properties": 1}, httpErr.Details)

	unused := createPropertyType(t, f, "Farm")
	require.NoError(t, f.services.PropertyType.Delete(ctx, unused.ID))

	_, err = f.services.PropertyType.Get(ctx, unused.ID)
	requireHTTPError(t, err, http.StatusNotFound, "PROPERTY_TYPE_NOT_FOUND")
}

func TestPropertyTypeService_Categories(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []model.CategoryOption{
		{Value: model.CategoryResidential, Label: "Residential"},
		{Value: model.CategoryCommercial, Label: "Commercial"},
		{Value: model.CategoryRural, Label: "Rural"},
		{Value: model.CategoryLot, Label: "Lot"},
	}, f.services.PropertyType.Categories())
}

func TestPropertyTypeService_ListByCategoryOnlyActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	createPropertyType(t, f, "Apartment")
	house := createPropertyType(t, f, "House")
	_, err := f.services.PropertyType.Create(ctx, &model.CreatePropertyTypePayload{Name: "Office", Category: model.CategoryCommercial})
	require.NoError(t, err)

	state, err := f.services.PropertyType.ToggleStatus(ctx, house.ID)
	require.NoError(t, err)
	assert.False(t, state.Active)

	types, err := f.services.PropertyType.ListByCategory(ctx, &model.PropertyTypesByCategoryQuery{Category: model.CategoryResidential})
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Apartment", types[0].Name)
}

func TestPropertyTypesByCategoryQuery_RejectsUnknownCategory(t *testing.T) {
	q := &model.PropertyTypesByCategoryQuery{Category: "castle"}
	assert.Error(t, q.Validate())

	q.Category = model.CategoryLot
	assert.NoError(t, q.Validate())
}

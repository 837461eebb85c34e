package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/realty/internal/lib/utils"
	"github.com/deppfellow/realty/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPropertyType(t *testing.T, f *fixture, name string) *model.PropertyType {
	t.Helper()

	pt, err := f.services.PropertyType.Create(context.Background(), &model.CreatePropertyTypePayload{
		Name:     name,
		Category: model.CategoryResidential,
	})
	require.NoError(t, err)
	return pt
}

func propertyPayload(typeID uuid.UUID, title string) *model.CreatePropertyPayload {
	return &model.CreatePropertyPayload{
		Title:        title,
		Description:  "Bright apartment close to the park",
		TypeID:       typeID,
		Purpose:      model.PurposeRent,
		Price:        decimal.RequireFromString("2500.50"),
		Neighborhood: "Cambuí",
		City:         "Campinas",
		UsableArea:   decimal.NewFromInt(72),
		Images:       []string{"/uploads/a.jpg"},
	}
}

func TestPropertyService_CreateAppliesDefaults(t *testing.T) {
	f := newFixture(t)
	pt := createPropertyType(t, f, "Apartment")

	p, err := f.services.Property.Create(context.Background(), propertyPayload(pt.ID, "Park view"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusActive, p.Status)
	assert.Equal(t, 0, p.Bedrooms)
	assert.Equal(t, 1, p.Bathrooms)
	assert.Equal(t, 0, p.ParkingSpaces)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("2500.5")))
	require.NotNil(t, p.Type)
	assert.Equal(t, "Apartment", p.Type.Name)
}

func TestPropertyService_CreateRejectsUnknownType(t *testing.T) {
	f := newFixture(t)

	_, err := f.services.Property.Create(context.Background(), propertyPayload(uuid.New(), "Orphan"))
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "PROPERTY_TYPE_NOT_FOUND")
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "typeId", httpErr.Errors[0].Field)
}

func TestPropertyService_SinglePropertyOfMonth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pt := createPropertyType(t, f, "Apartment")

	first := propertyPayload(pt.ID, "First")
	first.PropertyOfMonth = true
	holder, err := f.services.Property.Create(ctx, first)
	require.NoError(t, err)

	second := propertyPayload(pt.ID, "Second")
	second.PropertyOfMonth = true
	_, err = f.services.Property.Create(ctx, second)
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "PROPERTY_OF_MONTH_ALREADY_SET")
	details, ok := httpErr.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, &model.PropertyRef{ID: holder.ID, Title: "First"}, details["existingProperty"])

	second.PropertyOfMonth = false
	other, err := f.services.Property.Create(ctx, second)
	require.NoError(t, err)

	_, err = f.services.Property.TogglePropertyOfMonth(ctx, other.ID)
	requireHTTPError(t, err, http.StatusBadRequest, "PROPERTY_OF_MONTH_ALREADY_SET")

	// The holder can be saved with the flag still set.
	_, err = f.services.Property.Update(ctx, &model.UpdatePropertyPayload{ID: holder.ID, PropertyOfMonth: utils.Ptr(true)})
	require.NoError(t, err)

	state, err := f.services.Property.TogglePropertyOfMonth(ctx, holder.ID)
	require.NoError(t, err)
	assert.False(t, state.PropertyOfMonth)

	state, err = f.services.Property.TogglePropertyOfMonth(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, state.PropertyOfMonth)

	current, err := f.services.Property.PropertyOfMonth(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, other.ID, current.ID)
}

func TestPropertyService_AnonymousCallersOnlySeeActiveListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pt := createPropertyType(t, f, "Apartment")

	active, err := f.services.Property.Create(ctx, propertyPayload(pt.ID, "Visible"))
	require.NoError(t, err)

	hidden := propertyPayload(pt.ID, "Hidden")
	hidden.Status = model.StatusSold
	sold, err := f.services.Property.Create(ctx, hidden)
	require.NoError(t, err)

	_, err = f.services.Property.Get(ctx, sold.ID, false)
	requireHTTPError(t, err, http.StatusNotFound, "PROPERTY_NOT_FOUND")

	got, err := f.services.Property.Get(ctx, sold.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSold, got.Status)

	public, err := f.services.Property.List(ctx, &model.ListPropertiesQuery{Status: model.StatusSold}, false)
	require.NoError(t, err)
	require.Len(t, public.Properties, 1)
	assert.Equal(t, active.ID, public.Properties[0].ID)
	assert.Nil(t, public.Stats)

	private, err := f.services.Property.List(ctx, &model.ListPropertiesQuery{}, true)
	require.NoError(t, err)
	assert.Len(t, private.Properties, 2)
	require.NotNil(t, private.Stats)
	assert.Len(t, private.Stats.ByStatus, 2)
}

func TestPropertyService_ToggleStatusReactivatesSoldListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pt := createPropertyType(t, f, "Apartment")

	payload := propertyPayload(pt.ID, "Rented out")
	payload.Status = model.StatusRented
	p, err := f.services.Property.Create(ctx, payload)
	require.NoError(t, err)

	state, err := f.services.Property.ToggleStatus(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, state.Status)

	state, err = f.services.Property.ToggleStatus(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, state.Status)
}

func TestPropertyService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pt := createPropertyType(t, f, "Apartment")

	p, err := f.services.Property.Create(ctx, propertyPayload(pt.ID, "Before"))
	require.NoError(t, err)

	images := []string{"/uploads/b.jpg"}
	updated, err := f.services.Property.Update(ctx, &model.UpdatePropertyPayload{
		ID:     p.ID,
		Title:  utils.Ptr("After"),
		Images: &images,
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, images, updated.Images)
	assert.Equal(t, p.Description, updated.Description)

	featured, err := f.services.Property.Featured(ctx, &model.FeaturedPropertiesQuery{Limit: 6})
	require.NoError(t, err)
	assert.Empty(t, featured)

	fs, err := f.services.Property.ToggleFeatured(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, fs.Featured)

	featured, err = f.services.Property.Featured(ctx, &model.FeaturedPropertiesQuery{Limit: 6})
	require.NoError(t, err)
	assert.Len(t, featured, 1)

	err = f.services.PropertyType.Delete(ctx, pt.ID)
	requireHTTPError(t, err, http.StatusBadRequest, "PROPERTY_TYPE_IN_USE")

	require.NoError(t, f.services.Property.Delete(ctx, p.ID))
	err = f.services.Property.Delete(ctx, p.ID)
	requireHTTPError(t, err, http.StatusNotFound, "PROPERTY_NOT_FOUND")

	require.NoError(t, f.services.PropertyType.Delete(ctx, pt.ID))
}

package repository_test

import (
	"context"
	"testing"

	"github.com/deppfellow/realty/internal/lib/utils"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/sqlerr"
	"github.com/deppfellow/realty/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPropertyType(t *testing.T, repo *repository.PropertyTypeRepository, name string) *model.PropertyType {
	t.Helper()

	pt := &model.PropertyType{Name: name, Category: model.CategoryResidential, Active: true}
	require.NoError(t, repo.Create(context.Background(), pt))
	return pt
}

func newProperty(t *testing.T, repo *repository.PropertyRepository, typeID uuid.UUID, title string, price int64, mutate func(*model.Property)) *model.Property {
	t.Helper()

	p := &model.Property{
		Title:         title,
		Description:   "A listing used by the repository tests",
		TypeID:        typeID,
		Purpose:       model.PurposeSale,
		Price:         decimal.NewFromInt(price),
		Neighborhood:  "Centro",
		City:          "Campinas",
		UsableArea:    decimal.NewFromInt(80),
		Bedrooms:      2,
		Bathrooms:     1,
		ParkingSpaces: 1,
		Images:        []string{"/uploads/" + uuid.NewString() + ".jpg"},
		Status:        model.StatusActive,
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCityRepository_ListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCityRepository(testutil.NewDB(t))

	for _, c := range []model.City{
		{Name: "Campinas", State: "SP", ZipCode: "13000-000", Active: true},
		{Name: "Santos", State: "SP", ZipCode: "11000-000", Active: true},
		{Name: "Sorocaba", State: "SP", ZipCode: "18000-000", Active: false},
		{Name: "Curitiba", State: "PR", ZipCode: "80000-000", Active: true},
	} {
		city := c
		require.NoError(t, repo.Create(ctx, &city))
	}

	q := &model.ListCitiesQuery{State: "SP"}
	q.Normalize()
	cities, total, err := repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, cities, 3)
	assert.Equal(t, "Campinas", cities[0].Name)

	q = &model.ListCitiesQuery{State: "SP", Active: utils.Ptr(true), PageQuery: model.PageQuery{Limit: 1, Page: 2}}
	q.Normalize()
	cities, total, err = repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, cities, 1)
	assert.Equal(t, "Santos", cities[0].Name)

	q = &model.ListCitiesQuery{Search: "CURI"}
	q.Normalize()
	cities, total, err = repo.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Curitiba", cities[0].Name)
}

func TestCityRepository_ExistsByNameAndState(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCityRepository(testutil.NewDB(t))

	city := &model.City{Name: "Campinas", State: "SP", ZipCode: "13000-000", Active: true}
	require.NoError(t, repo.Create(ctx, city))

	taken, err := repo.ExistsByNameAndState(ctx, "campinas", "SP", nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByNameAndState(ctx, "Campinas", "MG", nil)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.ExistsByNameAndState(ctx, "Campinas", "SP", &city.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestCityRepository_GetByIDMissing(t *testing.T) {
	repo := repository.NewCityRepository(testutil.NewDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, sqlerr.IsNotFound(err))
}

func TestNeighborhoodRepository_PreloadsCity(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	cities := repository.NewCityRepository(db)
	repo := repository.NewNeighborhoodRepository(db)

	city := &model.City{Name: "Campinas", State: "SP", ZipCode: "13000-000", Active: true}
	require.NoError(t, cities.Create(ctx, city))

	n := &model.Neighborhood{Name: "Cambuí", CityID: city.ID, Active: true}
	require.NoError(t, repo.Create(ctx, n))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	require.NotNil(t, got.City)
	assert.Equal(t, "Campinas", got.City.Name)
	assert.Equal(t, "SP", got.City.State)

	count, err := repo.CountByCity(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	items, total, err := repo.List(ctx, &model.ListNeighborhoodsQuery{PageQuery: model.PageQuery{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, &model.CityRef{ID: city.ID, Name: "Campinas", State: "SP"}, items[0].City)

	byCity, err := repo.ListByCity(ctx, city.ID, true)
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	require.NotNil(t, byCity[0].City)
	assert.Equal(t, city.ID, byCity[0].City.ID)
}

func TestPropertyRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewPropertyRepository(db)
	house := newPropertyType(t, repository.NewPropertyTypeRepository(db), "House")

	newProperty(t, repo, house.ID, "Cheap house", 200000, nil)
	newProperty(t, repo, house.ID, "Mid house", 500000, func(p *model.Property) { p.Bedrooms = 3 })
	newProperty(t, repo, house.ID, "Expensive house", 900000, func(p *model.Property) { p.Status = model.StatusInactive })

	q := &model.ListPropertiesQuery{
		MinPrice: utils.Ptr(decimal.NewFromInt(300000)),
		MaxPrice: utils.Ptr(decimal.NewFromInt(1000000)),
	}
	q.Normalize()

	items, total, err := repo.List(ctx, q, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	items, total, err = repo.List(ctx, q, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Mid house", items[0].Title)
	require.NotNil(t, items[0].Type)
	assert.Equal(t, "House", items[0].Type.Name)

	q = &model.ListPropertiesQuery{Bedrooms: utils.Ptr(3), OrderBy: "price"}
	q.Normalize()
	items, total, err = repo.List(ctx, q, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Mid house", items[0].Title)

	q = &model.ListPropertiesQuery{OrderBy: "price", PageQuery: model.PageQuery{OrderDirection: "ASC"}}
	q.Normalize()
	items, _, err = repo.List(ctx, q, false)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Cheap house", items[0].Title)
	assert.Equal(t, "Expensive house", items[2].Title)
}

func TestPropertyRepository_Stats(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewPropertyRepository(db)
	house := newPropertyType(t, repository.NewPropertyTypeRepository(db), "House")

	newProperty(t, repo, house.ID, "One", 100000, func(p *model.Property) { p.Featured = true })
	newProperty(t, repo, house.ID, "Two", 100000, func(p *model.Property) { p.PropertyOfMonth = true })
	newProperty(t, repo, house.ID, "Three", 100000, func(p *model.Property) { p.Status = model.StatusSold })

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFeatured)
	assert.Equal(t, int64(1), stats.TotalPropertyOfMonth)

	counts := make(map[model.PropertyStatus]int64)
	for _, c := range stats.ByStatus {
		counts[c.Status] = c.Count
	}
	assert.Equal(t, map[model.PropertyStatus]int64{model.StatusActive: 2, model.StatusSold: 1}, counts)
}

func TestPropertyRepository_PropertyOfMonth(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewPropertyRepository(db)
	house := newPropertyType(t, repository.NewPropertyTypeRepository(db), "House")

	got, err := repo.PropertyOfMonth(ctx, true)
	require.NoError(t, err)
	assert.Nil(t, got)

	holder := newProperty(t, repo, house.ID, "Holder", 100000, func(p *model.Property) {
		p.PropertyOfMonth = true
		p.Status = model.StatusInactive
	})

	got, err = repo.PropertyOfMonth(ctx, true)
	require.NoError(t, err)
	assert.Nil(t, got, "inactive holder is hidden")

	got, err = repo.PropertyOfMonth(ctx, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, holder.ID, got.ID)

	ref, err := repo.PropertyOfMonthHolder(ctx, uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "Holder", ref.Title)

	ref, err = repo.PropertyOfMonthHolder(ctx, holder.ID)
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestPropertyRepository_IsImageReferenced(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewPropertyRepository(db)
	house := newPropertyType(t, repository.NewPropertyTypeRepository(db), "House")

	newProperty(t, repo, house.ID, "With image", 100000, func(p *model.Property) {
		p.Images = []string{"/uploads/front.jpg", "/uploads/back.jpg"}
	})

	found, err := repo.IsImageReferenced(ctx, "/uploads/back.jpg")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.IsImageReferenced(ctx, "/uploads/other.jpg")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPropertyRepository_UpdateReloadsType(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	types := repository.NewPropertyTypeRepository(db)
	repo := repository.NewPropertyRepository(db)
	house := newPropertyType(t, types, "House")
	office := newPropertyType(t, types, "Office")

	p := newProperty(t, repo, house.ID, "Switching", 100000, nil)
	require.Equal(t, "House", p.Type.Name)

	p.TypeID = office.ID
	require.NoError(t, repo.Update(ctx, p))
	assert.Equal(t, "Office", p.Type.Name)

	count, err := repo.CountByType(ctx, office.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSettingsRepository_LatestAndSave(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSettingsRepository(testutil.NewDB(t))

	_, err := repo.Latest(ctx)
	assert.True(t, sqlerr.IsNotFound(err))

	found, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	s := model.DefaultSettings()
	require.NoError(t, repo.Save(ctx, &s))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.CompanyInfo.Name, got.CompanyInfo.Name)
	assert.Equal(t, s.SiteContent.About.Values, got.SiteContent.About.Values)
}

func TestUserRepository_GetByLogin(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUserRepository(testutil.NewDB(t))

	u := &model.User{Username: "maria", Email: "maria@example.com", FullName: "Maria", AccessLevel: model.AccessEditor, PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, u))

	byName, err := repo.GetByLogin(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := repo.GetByLogin(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	taken, err := repo.ExistsByEmail(ctx, "maria@example.com", u.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

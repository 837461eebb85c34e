package service_test

import (
	"context"
	"testing"

	"github.com/deppfellow/realty/internal/config"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/service"
	"github.com/deppfellow/realty/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedService_RunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.services.Seed.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, &service.SeedResult{UsersCreated: 2, PropertyTypesCreated: 12, SettingsCreated: true}, first)

	second, err := f.services.Seed.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, &service.SeedResult{}, second)

	login, err := f.services.Auth.Login(ctx, &model.LoginPayload{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, model.AccessAdmin, login.User.AccessLevel)

	types, err := f.services.PropertyType.ListByCategory(ctx, &model.PropertyTypesByCategoryQuery{Category: model.CategoryLot})
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestSeedService_SkipsExistingAccounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.services.User.Create(ctx, &model.CreateUserPayload{
		Username: "someone",
		Email:    "admin@admin.com",
		FullName: "Existing Owner",
		Password: "secret123",
	})
	require.NoError(t, err)

	result, err := f.services.Seed.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UsersCreated)
}

func TestSeedService_RefusesInProduction(t *testing.T) {
	cfg := testutil.NewConfig(t)
	cfg.Primary.Env = config.EnvProduction
	s := testutil.NewServerWithConfig(t, cfg)
	services := service.NewService(s, repository.NewRepositories(s))

	_, err := services.Seed.Run(context.Background())
	assert.ErrorIs(t, err, service.ErrSeedInProduction)
}

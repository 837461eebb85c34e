package service_test

import (
	"testing"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/deppfellow/realty/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server   *server.Server
	repos    *repository.Repositories
	services *service.Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := testutil.NewServer(t)
	repos := repository.NewRepositories(s)
	return &fixture{server: s, repos: repos, services: service.NewService(s, repos)}
}

func requireHTTPError(t *testing.T, err error, status int, code string) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
	return httpErr
}

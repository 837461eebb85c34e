package router_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/realty/internal/handler"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/router"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/deppfellow/realty/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

type testAPI struct {
	t        *testing.T
	server   *server.Server
	services *service.Services
	echo     *echo.Echo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	s := testutil.NewServer(t)
	services := service.NewService(s, repository.NewRepositories(s))
	return &testAPI{
		t:        t,
		server:   s,
		services: services,
		echo:     router.NewRouter(s, handler.NewHandlers(s, services)),
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Status  int             `json:"status"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return a.send(req, token)
}

func (a *testAPI) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

// send serves req and decodes the JSON response envelope.
func (a *testAPI) send(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	rec := a.serve(req, token)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (a *testAPI) user(username string, level model.AccessLevel) (*model.User, string) {
	a.t.Helper()

	user, err := a.services.User.Create(context.Background(), &model.CreateUserPayload{
		Username:    username,
		Email:       username + "@example.com",
		FullName:    "Test " + username,
		AccessLevel: level,
		Password:    "secret123",
	})
	require.NoError(a.t, err)
	return user, testutil.Token(a.t, a.server, user)
}

func TestPublicListUsesEnvelope(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/api/cities", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var data model.CityList
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Cities)
	assert.Equal(t, model.Pagination{Total: 0, Page: 1, Limit: 10, TotalPages: 0}, data.Pagination)
}

func TestWriteRoutesRequireAuth(t *testing.T) {
	api := newTestAPI(t)
	payload := map[string]any{"name": "Campinas", "state": "SP", "zipCode": "13000-000"}

	rec, env := api.do(http.MethodPost, "/api/cities", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_REQUIRED", env.Code)
	assert.False(t, env.Success)

	rec, env = api.do(http.MethodPost, "/api/cities", "garbage", payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", env.Code)

	_, token := api.user("helper", model.AccessEditor)
	rec, env = api.do(http.MethodPost, "/api/cities", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var city model.City
	require.NoError(t, json.Unmarshal(env.Data, &city))
	assert.Equal(t, "Campinas", city.Name)
	assert.True(t, city.Active)
}

func TestAdminOnlyRoutes(t *testing.T) {
	api := newTestAPI(t)
	_, editorToken := api.user("helper", model.AccessEditor)
	_, adminToken := api.user("boss", model.AccessAdmin)

	rec, env := api.do(http.MethodGet, "/api/users", editorToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", env.Code)

	rec, env = api.do(http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list model.UserList
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(2), list.Pagination.Total)
	assert.NotContains(t, string(env.Data), "password")
}

func TestValidationErrors(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("helper", model.AccessEditor)

	rec, env := api.do(http.MethodPost, "/api/cities", token, map[string]any{"name": "C", "state": "SPX", "zipCode": "abc"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", env.Code)

	fields := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"name", "state", "zipCode"}, fields)
}

func TestNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/api/cities/8c7a3f0e-5b1d-4f6a-9e2c-3d4b5a6c7e8f", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CITY_NOT_FOUND", env.Code)

	rec, env = api.do(http.MethodGet, "/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", env.Code)
}

func TestCatalogueLookups(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/api/property-types/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	require.Len(t, categories, 4)
	assert.Equal(t, map[string]string{"value": "residential", "label": "Residential"}, categories[0])

	rec, env = api.do(http.MethodGet, "/api/property-types/category/castle", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", env.Code)

	rec, env = api.do(http.MethodGet, "/api/property-types/category/lot", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	rec, env = api.do(http.MethodGet, "/api/neighborhoods/city/8c7a3f0e-5b1d-4f6a-9e2c-3d4b5a6c7e8f", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CITY_NOT_FOUND", env.Code)
}

func TestPasswordResetRoutes(t *testing.T) {
	api := newTestAPI(t)
	user, _ := api.user("maria", model.AccessEditor)

	rec, env := api.do(http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "maria@example.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = api.do(http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", env.Code)

	rec, env = api.do(http.MethodPost, "/api/auth/reset-password", "", map[string]string{"token": "garbage", "newPassword": "brand-new1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_RESET_TOKEN", env.Code)

	stored, err := repository.NewRepositories(api.server).User.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	resetToken, _, err := api.server.Tokens.IssuePasswordReset(stored)
	require.NoError(t, err)

	rec, env = api.do(http.MethodPost, "/api/auth/reset-password", "", map[string]string{"token": resetToken, "newPassword": "brand-new1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, _ = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "maria", "password": "brand-new1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	api := newTestAPI(t)
	user, _ := api.user("maria", model.AccessEditor)

	rec, env := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "maria", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Code)

	rec, env = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "maria", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var login model.LoginResult
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	rec, env = api.do(http.MethodGet, "/api/auth/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile model.User
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "maria", profile.Username)

	rec, env = api.do(http.MethodGet, "/api/auth/verify-token", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"valid":true`)
}

func TestPropertyVisibility(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	_, token := api.user("helper", model.AccessEditor)

	pt, err := api.services.PropertyType.Create(ctx, &model.CreatePropertyTypePayload{Name: "House", Category: model.CategoryResidential})
	require.NoError(t, err)

	payload := map[string]any{
		"title":        "Inactive house",
		"description":  "A quiet house with a large garden",
		"typeId":       pt.ID,
		"purpose":      "sale",
		"price":        "450000.00",
		"neighborhood": "Centro",
		"city":         "Campinas",
		"usableArea":   "120.5",
		"images":       []string{"/uploads/house.jpg"},
		"status":       "inactive",
	}
	rec, env := api.do(http.MethodPost, "/api/properties", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, string(rec.Body.Bytes()))

	var created model.Property
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = api.do(http.MethodGet, "/api/properties/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROPERTY_NOT_FOUND", env.Code)

	rec, _ = api.do(http.MethodGet, "/api/properties/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), `"stats"`)

	rec, env = api.do(http.MethodGet, "/api/properties", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"stats"`)

	rec, env = api.do(http.MethodGet, "/api/properties/property-of-month", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(env.Data))
}

func TestSettingsRoutes(t *testing.T) {
	api := newTestAPI(t)
	_, editorToken := api.user("helper", model.AccessEditor)
	_, adminToken := api.user("boss", model.AccessAdmin)
	section := map[string]any{"name": "Casa Nova"}

	rec, _ := api.do(http.MethodPut, "/api/settings/section/companyInfo", editorToken, section)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := api.do(http.MethodPut, "/api/settings/section/unknown", adminToken, section)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "section", env.Errors[0].Field)

	rec, env = api.do(http.MethodPut, "/api/settings/section/companyInfo", adminToken, section)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"name":"Casa Nova"`)

	rec, env = api.do(http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"updatedBy":"boss"`)
}

func TestUploadLifecycle(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("helper", model.AccessEditor)

	img, err := base64.StdEncoding.DecodeString(pixelPNG)
	require.NoError(t, err)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", "pixel.png")
	require.NoError(t, err)
	_, err = part.Write(img)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &body)
	req.Header.Set(echo.HeaderContentType, form.FormDataContentType())
	rec, env := api.send(req, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stored))
	assert.Equal(t, "/uploads/"+stored.Filename, stored.URL)

	rec, _ = api.do(http.MethodGet, stored.URL, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000", rec.Header().Get("Cache-Control"))
	assert.Equal(t, img, rec.Body.Bytes())

	rec, _ = api.do(http.MethodDelete, "/api/upload/image/"+stored.Filename, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodGet, stored.URL, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "FILE_NOT_FOUND", env.Code)
}

func TestUploadRequiresFile(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("helper", model.AccessEditor)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("other", "value"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &body)
	req.Header.Set(echo.HeaderContentType, form.FormDataContentType())
	rec, env := api.send(req, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NO_FILE", env.Code)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.serve(httptest.NewRequest(http.MethodGet, "/api/health", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Contains(t, checks, "database")
	assert.NotContains(t, checks, "redis")
}

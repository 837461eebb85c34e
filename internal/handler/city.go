package handler

import (
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/labstack/echo/v4"
)

type CityHandler struct {
	Handler
	cities *service.CityService
}

func NewCityHandler(s *server.Server, cities *service.CityService) *CityHandler {
	return &CityHandler{Handler: NewHandler(s), cities: cities}
}

func (h *CityHandler) List(c echo.Context, q *model.ListCitiesQuery) (*model.Response, error) {
	list, err := h.cities.List(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return model.OK(list), nil
}

func (h *CityHandler) ListByState(c echo.Context, q *model.CitiesByStateQuery) (*model.Response, error) {
	cities, err := h.cities.ListByState(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return model.OK(cities), nil
}

func (h *CityHandler) Get(c echo.Context, p *model.IDParam) (*model.Response, error) {
	city, err := h.cities.Get(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	return model.OK(city), nil
}

func (h *CityHandler) Create(c echo.Context, p *model.CreateCityPayload) (*model.Response, error) {
	city, err := h.cities.Create(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(city, "City created successfully"), nil
}

func (h *CityHandler) Update(c echo.Context, p *model.UpdateCityPayload) (*model.Response, error) {
	city, err := h.cities.Update(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(city, "City updated successfully"), nil
}

func (h *CityHandler) Delete(c echo.Context, p *model.IDParam) (*model.Response, error) {
	if err := h.cities.Delete(c.Request().Context(), p.ID); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "City deleted successfully"), nil
}

func (h *CityHandler) ToggleStatus(c echo.Context, p *model.IDParam) (*model.Response, error) {
	state, err := h.cities.ToggleStatus(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(state, statusMessage("City", state.Active)), nil
}

func statusMessage(entity string, active bool) string {
	if active {
		return entity + " activated successfully"
	}
	return entity + " deactivated successfully"
}

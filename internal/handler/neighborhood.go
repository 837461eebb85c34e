package handler

import (
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/labstack/echo/v4"
)

type NeighborhoodHandler struct {
	Handler
	neighborhoods *service.NeighborhoodService
}

func NewNeighborhoodHandler(s *server.Server, neighborhoods *service.NeighborhoodService) *NeighborhoodHandler {
	return &NeighborhoodHandler{Handler: NewHandler(s), neighborhoods: neighborhoods}
}

func (h *NeighborhoodHandler) List(c echo.Context, q *model.ListNeighborhoodsQuery) (*model.Response, error) {
	list, err := h.neighborhoods.List(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return model.OK(list), nil
}

func (h *NeighborhoodHandler) ListByCity(c echo.Context, q *model.NeighborhoodsByCityQuery) (*model.Response, error) {
	neighborhoods, err := h.neighborhoods.ListByCity(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return model.OK(neighborhoods), nil
}

func (h *NeighborhoodHandler) Get(c echo.Context, p *model.IDParam) (*model.Response, error) {
	n, err := h.neighborhoods.Get(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	return model.OK(n), nil
}

func (h *NeighborhoodHandler) Create(c echo.Context, p *model.CreateNeighborhoodPayload) (*model.Response, error) {
	n, err := h.neighborhoods.Create(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(n, "Neighborhood created successfully"), nil
}

func (h *NeighborhoodHandler) Update(c echo.Context, p *model.UpdateNeighborhoodPayload) (*model.Response, error) {
	n, err := h.neighborhoods.Update(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(n, "Neighborhood updated successfully"), nil
}

func (h *NeighborhoodHandler) Delete(c echo.Context, p *model.IDParam) (*model.Response, error) {
	if err := h.neighborhoods.Delete(c.Request().Context(), p.ID); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "Neighborhood deleted successfully"), nil
}

func (h *NeighborhoodHandler) ToggleStatus(c echo.Context, p *model.IDParam) (*model.Response, error) {
	state, err := h.neighborhoods.ToggleStatus(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(state, statusMessage("Neighborhood", state.Active)), nil
}

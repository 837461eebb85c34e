package handler

import (
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/labstack/echo/v4"
)

type PropertyTypeHandler struct {
	Handler
	types *service.PropertyTypeService
}

func NewPropertyTypeHandler(s *server.Server, types *service.PropertyTypeService) *PropertyTypeHandler {
	return &PropertyTypeHandler{Handler: NewHandler(s), types: types}
}

func (h *PropertyTypeHandler) List(c echo.Context, q *model.ListPropertyTypesQuery) (*model.Response, error) {
	list, err := h.types.List(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return model.OK(list), nil
}

func (h *PropertyTypeHandler) Categories(c echo.Context, _ *model.EmptyPayload) (*model.Response, error) {
	return model.OK(h.types.Categories()), nil
}

func (h *PropertyTypeHandler) ListByCategory(c echo.Context, q *model.PropertyTypesByCategoryQuery) (*model.Response, error) {
	types, err := h.types.ListByCategory(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return model.OK(types), nil
}

func (h *PropertyTypeHandler) Get(c echo.Context, p *model.IDParam) (*model.Response, error) {
	t, err := h.types.Get(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	return model.OK(t), nil
}

func (h *PropertyTypeHandler) Create(c echo.Context, p *model.CreatePropertyTypePayload) (*model.Response, error) {
	t, err := h.types.Create(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(t, "Property type created successfully"), nil
}

func (h *PropertyTypeHandler) Update(c echo.Context, p *model.UpdatePropertyTypePayload) (*model.Response, error) {
	t, err := h.types.Update(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(t, "Property type updated successfully"), nil
}

func (h *PropertyTypeHandler) Delete(c echo.Context, p *model.IDParam) (*model.Response, error) {
	if err := h.types.Delete(c.Request().Context(), p.ID); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "Property type deleted successfully"), nil
}

func (h *PropertyTypeHandler) ToggleStatus(c echo.Context, p *model.IDParam) (*model.Response, error) {
	state, err := h.types.ToggleStatus(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(state, statusMessage("Property type", state.Active)), nil
}

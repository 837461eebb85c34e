package handler

import (
	"github.com/deppfellow/realty/internal/middleware"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/labstack/echo/v4"
)

type PropertyHandler struct {
	Handler
	properties *service.PropertyService
}

func NewPropertyHandler(s *server.Server, properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{Handler: NewHandler(s), properties: properties}
}

// List and Get run behind OptionalAuth: anonymous callers only see
// active listings.
func (h *PropertyHandler) List(c echo.Context, q *model.ListPropertiesQuery) (*model.Response, error) {
	list, err := h.properties.List(c.Request().Context(), q, middleware.IsAuthenticated(c))
	if err != nil {
		return nil, err
	}
	return model.OK(list), nil
}

func (h *PropertyHandler) Featured(c echo.Context, q *model.FeaturedPropertiesQuery) (*model.Response, error) {
	properties, err := h.properties.Featured(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return model.OK(properties), nil
}

// PropertyOfMonth answers data: null when no listing holds the flag.
func (h *PropertyHandler) PropertyOfMonth(c echo.Context, _ *model.EmptyPayload) (*model.Response, error) {
	property, err := h.properties.PropertyOfMonth(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if property == nil {
		return model.OK(nil), nil
	}
	return model.OK(property), nil
}

func (h *PropertyHandler) Get(c echo.Context, p *model.IDParam) (*model.Response, error) {
	property, err := h.properties.Get(c.Request().Context(), p.ID, middleware.IsAuthenticated(c))
	if err != nil {
		return nil, err
	}
	return model.OK(property), nil
}

func (h *PropertyHandler) Create(c echo.Context, p *model.CreatePropertyPayload) (*model.Response, error) {
	property, err := h.properties.Create(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(property, "Property created successfully"), nil
}

func (h *PropertyHandler) Update(c echo.Context, p *model.UpdatePropertyPayload) (*model.Response, error) {
	property, err := h.properties.Update(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(property, "Property updated successfully"), nil
}

func (h *PropertyHandler) Delete(c echo.Context, p *model.IDParam) (*model.Response, error) {
	if err := h.properties.Delete(c.Request().Context(), p.ID); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "Property deleted successfully"), nil
}

func (h *PropertyHandler) ToggleStatus(c echo.Context, p *model.IDParam) (*model.Response, error) {
	state, err := h.properties.ToggleStatus(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(state, "Property status changed to "+string(state.Status)), nil
}

func (h *PropertyHandler) ToggleFeatured(c echo.Context, p *model.IDParam) (*model.Response, error) {
	state, err := h.properties.ToggleFeatured(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	msg := "Property removed from featured"
	if state.Featured {
		msg = "Property marked as featured"
	}
	return model.OKWithMessage(state, msg), nil
}

func (h *PropertyHandler) TogglePropertyOfMonth(c echo.Context, p *model.IDParam) (*model.Response, error) {
	state, err := h.properties.TogglePropertyOfMonth(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	msg := "Property removed as property of the month"
	if state.PropertyOfMonth {
		msg = "Property set as property of the month"
	}
	return model.OKWithMessage(state, msg), nil
}

package handler

import (
	"github.com/deppfellow/realty/internal/middleware"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/labstack/echo/v4"
)

type SettingsHandler struct {
	Handler
	settings *service.SettingsService
}

func NewSettingsHandler(s *server.Server, settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{Handler: NewHandler(s), settings: settings}
}

func (h *SettingsHandler) Get(c echo.Context, _ *model.EmptyPayload) (*model.Response, error) {
	settings, err := h.settings.Get(c.Request().Context(), middleware.IsAuthenticated(c))
	if err != nil {
		return nil, err
	}
	return model.OK(settings), nil
}

func (h *SettingsHandler) GetSection(c echo.Context, p *model.SettingsSectionParam) (*model.Response, error) {
	section, err := h.settings.GetSection(c.Request().Context(), p.Section, middleware.IsAuthenticated(c))
	if err != nil {
		return nil, err
	}
	return model.OK(section), nil
}

func (h *SettingsHandler) Update(c echo.Context, p *model.UpdateSettingsPayload) (*model.Response, error) {
	settings, err := h.settings.Update(c.Request().Context(), p, updatedBy(c))
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(settings, "Settings updated successfully"), nil
}

func (h *SettingsHandler) UpdateSection(c echo.Context, p *model.UpdateSettingsSectionPayload) (*model.Response, error) {
	section, err := h.settings.UpdateSection(c.Request().Context(), p, updatedBy(c))
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(section, "Settings section updated successfully"), nil
}

func updatedBy(c echo.Context) string {
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.Username
	}
	return ""
}

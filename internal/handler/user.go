package handler

import (
	"github.com/deppfellow/realty/internal/middleware"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{Handler: NewHandler(s), users: users}
}

func (h *UserHandler) List(c echo.Context, q *model.ListUsersQuery) (*model.Response, error) {
	list, err := h.users.List(c.Request().Context(), q)
	if err != nil {
		return nil, err
	}
	return model.OK(list), nil
}

func (h *UserHandler) Get(c echo.Context, p *model.UserIDParam) (*model.Response, error) {
	user, err := h.users.Get(c.Request().Context(), p.ID)
	if err != nil {
		return nil, err
	}
	return model.OK(user), nil
}

func (h *UserHandler) Create(c echo.Context, p *model.CreateUserPayload) (*model.Response, error) {
	user, err := h.users.Create(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(user, "User created successfully"), nil
}

func (h *UserHandler) Update(c echo.Context, p *model.UpdateUserPayload) (*model.Response, error) {
	user, err := h.users.Update(c.Request().Context(), p, middleware.GetUserID(c))
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(user, "User updated successfully"), nil
}

func (h *UserHandler) Delete(c echo.Context, p *model.UserIDParam) (*model.Response, error) {
	if err := h.users.Delete(c.Request().Context(), p.ID, middleware.GetUserID(c)); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "User deleted successfully"), nil
}

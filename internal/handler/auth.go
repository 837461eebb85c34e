package handler

import (
	"github.com/deppfellow/realty/internal/middleware"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Handler: NewHandler(s), auth: auth}
}

func (h *AuthHandler) Login(c echo.Context, p *model.LoginPayload) (*model.Response, error) {
	result, err := h.auth.Login(c.Request().Context(), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(result, "Login successful"), nil
}

// Logout only acknowledges: tokens are stateless and expire on their own.
func (h *AuthHandler) Logout(c echo.Context, _ *model.EmptyPayload) (*model.Response, error) {
	return model.OKWithMessage(nil, "Logout successful"), nil
}

func (h *AuthHandler) Refresh(c echo.Context, _ *model.EmptyPayload) (*model.Response, error) {
	result, err := h.auth.Refresh(c.Request().Context(), middleware.GetClaims(c))
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(result, "Token refreshed successfully"), nil
}

func (h *AuthHandler) VerifyToken(c echo.Context, _ *model.EmptyPayload) (*model.Response, error) {
	result, err := h.auth.Verify(c.Request().Context(), middleware.GetClaims(c))
	if err != nil {
		return nil, err
	}
	return model.OK(result), nil
}

func (h *AuthHandler) Profile(c echo.Context, _ *model.EmptyPayload) (*model.Response, error) {
	user, err := h.auth.Profile(c.Request().Context(), middleware.GetUserID(c))
	if err != nil {
		return nil, err
	}
	return model.OK(user), nil
}

func (h *AuthHandler) UpdateProfile(c echo.Context, p *model.UpdateProfilePayload) (*model.Response, error) {
	user, err := h.auth.UpdateProfile(c.Request().Context(), middleware.GetUserID(c), p)
	if err != nil {
		return nil, err
	}
	return model.OKWithMessage(user, "Profile updated successfully"), nil
}

func (h *AuthHandler) ChangePassword(c echo.Context, p *model.ChangePasswordPayload) (*model.Response, error) {
	if err := h.auth.ChangePassword(c.Request().Context(), middleware.GetUserID(c), p); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "Password changed successfully"), nil
}

func (h *AuthHandler) ForgotPassword(c echo.Context, p *model.ForgotPasswordPayload) (*model.Response, error) {
	if err := h.auth.ForgotPassword(c.Request().Context(), p); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "If the email is registered, a reset link has been sent"), nil
}

func (h *AuthHandler) ResetPassword(c echo.Context, p *model.ResetPasswordPayload) (*model.Response, error) {
	if err := h.auth.ResetPassword(c.Request().Context(), p); err != nil {
		return nil, err
	}
	return model.OKWithMessage(nil, "Password reset successfully"), nil
}

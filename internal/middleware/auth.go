package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/lib/token"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(raw)
}

func (auth *AuthMiddleware) authenticate(c echo.Context, raw string) (*token.Claims, error) {
	claims, err := auth.server.Tokens.Parse(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			e := errs.NewForbiddenError("Token has expired", true)
			e.Code = "TOKEN_EXPIRED"
			e.Action = &errs.Action{Type: errs.ActionTypeRedirect, Message: "Sign in again", Value: "/login"}
			return nil, e
		}
		e := errs.NewForbiddenError("Invalid token", true)
		e.Code = "INVALID_TOKEN"
		return nil, e
	}

	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, claims.UserID)
	c.Set(AccessLevelKey, claims.AccessLevel)
	withUser(c, claims)

	return claims, nil
}

// RequireAuth rejects requests without a bearer token with 401 and
// requests with an invalid or expired one with 403.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		raw := bearerToken(c)
		if raw == "" {
			e := errs.NewUnauthorizedError("Access token required", true)
			e.Code = "TOKEN_REQUIRED"
			return e
		}

		claims, err := auth.authenticate(c, raw)
		if err != nil {
			GetLogger(c).Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("token rejected")
			return err
		}

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Str("username", claims.Username).
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// OptionalAuth attaches the caller when a valid token is presented and
// otherwise lets the request through anonymously.
func (auth *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if raw := bearerToken(c); raw != "" {
			if _, err := auth.authenticate(c, raw); err != nil {
				GetLogger(c).Debug().Err(err).Msg("ignoring invalid token on public route")
			}
		}
		return next(c)
	}
}

// RequireAccessLevel must run after RequireAuth.
func (auth *AuthMiddleware) RequireAccessLevel(levels ...model.AccessLevel) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				e := errs.NewUnauthorizedError("Access token required", true)
				e.Code = "TOKEN_REQUIRED"
				return e
			}

			for _, level := range levels {
				if claims.AccessLevel == level {
					return next(c)
				}
			}

			e := errs.NewForbiddenError("Insufficient permissions", true)
			e.Code = "INSUFFICIENT_PERMISSIONS"
			return e
		}
	}
}

func (auth *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return auth.RequireAccessLevel(model.AccessAdmin)
}

func (auth *AuthMiddleware) RequireEditor() echo.MiddlewareFunc {
	return auth.RequireAccessLevel(model.AccessAdmin, model.AccessEditor)
}

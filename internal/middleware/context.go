package middleware

import (
	"context"

	"github.com/deppfellow/realty/internal/lib/token"
	"github.com/deppfellow/realty/internal/logger"
	"github.com/deppfellow/realty/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	UserIDKey      = "user_id"
	AccessLevelKey = "access_level"
	ClaimsKey      = "claims"
	LoggerKey      = "logger"
)

type loggerCtxKey struct{}

// ContextEnhancer stores a request-scoped logger carrying the request id,
// method, path, client IP and trace context.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			setLogger(c, contextLogger)
			return next(c)
		}
	}
}

func setLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, &l)
	c.SetRequest(c.Request().WithContext(ctx))
}

// withUser adds the authenticated caller to the request logger.
func withUser(c echo.Context, claims *token.Claims) {
	l := GetLogger(c).With().
		Uint("user_id", claims.UserID).
		Str("access_level", string(claims.AccessLevel)).
		Logger()
	setLogger(c, l)
}

// GetUserID returns the authenticated user's id, or 0 for anonymous
// requests.
func GetUserID(c echo.Context) uint {
	if userID, ok := c.Get(UserIDKey).(uint); ok {
		return userID
	}
	return 0
}

// GetClaims returns the verified token claims, or nil for anonymous
// requests.
func GetClaims(c echo.Context) *token.Claims {
	if claims, ok := c.Get(ClaimsKey).(*token.Claims); ok {
		return claims
	}
	return nil
}

func IsAuthenticated(c echo.Context) bool {
	return GetClaims(c) != nil
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}

package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	loginRateLimitPrefix = "ratelimit:login:"

	// Per-IP budget of the in-memory limiter in front of every route.
	globalRate  rate.Limit = 20
	globalBurst            = 40
)

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}

// Global throttles every client IP in memory. Denied requests are
// recorded as RateLimitHit events.
func (r *RateLimitMiddleware) Global() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      globalRate,
			Burst:     globalBurst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, slow down")
		},
	})
}

// LoginLimiter counts attempts per client IP in a fixed Redis window and
// answers 429 once auth.login_attempts is exceeded. Without Redis, or
// when Redis fails, requests pass.
func (r *RateLimitMiddleware) LoginLimiter() echo.MiddlewareFunc {
	limit := int64(r.server.Config.Auth.LoginAttempts)
	window := r.server.Config.Auth.LoginWindow

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if r.server.Redis == nil {
			return next
		}

		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := loginRateLimitPrefix + c.RealIP()

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				GetLogger(c).Error().Err(err).Msg("login rate limiter unavailable")
				return next(c)
			}
			if count == 1 {
				if err := r.server.Redis.Expire(ctx, key, window).Err(); err != nil {
					GetLogger(c).Error().Err(err).Msg("failed to set login rate limit window")
				}
			}

			if count > limit {
				ttl, err := r.server.Redis.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = window
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl.Round(time.Second).Seconds())))

				r.RecordRateLimitHit(c.Path())
				GetLogger(c).Warn().Int64("attempts", count).Msg("login rate limit exceeded")

				return errs.NewTooManyRequestsError(fmt.Sprintf("Too many login attempts, try again in %s", ttl.Round(time.Second)))
			}

			return next(c)
		}
	}
}

// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/realty/internal/handler"
	"github.com/deppfellow/realty/internal/middleware"
	"github.com/deppfellow/realty/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		mw.Global.CORS(),
		mw.Global.Secure(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.RateLimit.Global(),
		mw.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	api.GET("/health", h.Health.CheckHealth)

	registerAuthRoutes(api, h, mw)
	registerUserRoutes(api, h, mw)
	registerCityRoutes(api, h, mw)
	registerNeighborhoodRoutes(api, h, mw)
	registerPropertyTypeRoutes(api, h, mw)
	registerPropertyRoutes(api, h, mw)
	registerSettingsRoutes(api, h, mw)
	registerUploadRoutes(router, s.Config.Upload.PublicPath, api, h, mw)

	return router
}

// ok is the status of every successful JSON endpoint except creation.
const ok = http.StatusOK

package router

import (
	"net/http"
	"strings"

	"github.com/deppfellow/realty/internal/handler"
	"github.com/deppfellow/realty/internal/middleware"
	"github.com/deppfellow/realty/internal/model"
	"github.com/labstack/echo/v4"
)

func registerAuthRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	a := h.Auth
	g := api.Group("/auth")

	g.POST("/login", handler.Handle(a.Handler, a.Login, ok, &model.LoginPayload{}), mw.RateLimit.LoginLimiter())
	g.POST("/forgot-password", handler.Handle(a.Handler, a.ForgotPassword, ok, &model.ForgotPasswordPayload{}), mw.RateLimit.LoginLimiter())
	g.POST("/reset-password", handler.Handle(a.Handler, a.ResetPassword, ok, &model.ResetPasswordPayload{}), mw.RateLimit.LoginLimiter())

	authed := g.Group("", mw.Auth.RequireAuth)
	authed.POST("/logout", handler.Handle(a.Handler, a.Logout, ok, &model.EmptyPayload{}))
	authed.POST("/refresh", handler.Handle(a.Handler, a.Refresh, ok, &model.EmptyPayload{}))
	authed.GET("/verify-token", handler.Handle(a.Handler, a.VerifyToken, ok, &model.EmptyPayload{}))
	authed.GET("/profile", handler.Handle(a.Handler, a.Profile, ok, &model.EmptyPayload{}))
	authed.PUT("/profile", handler.Handle(a.Handler, a.UpdateProfile, ok, &model.UpdateProfilePayload{}))
	authed.POST("/change-password", handler.Handle(a.Handler, a.ChangePassword, ok, &model.ChangePasswordPayload{}))
}

func registerUserRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	u := h.User
	g := api.Group("/users", mw.Auth.RequireAuth, mw.Auth.RequireAdmin())

	g.GET("", handler.Handle(u.Handler, u.List, ok, &model.ListUsersQuery{}))
	g.GET("/:id", handler.Handle(u.Handler, u.Get, ok, &model.UserIDParam{}))
	g.POST("", handler.Handle(u.Handler, u.Create, http.StatusCreated, &model.CreateUserPayload{}))
	g.PUT("/:id", handler.Handle(u.Handler, u.Update, ok, &model.UpdateUserPayload{}))
	g.DELETE("/:id", handler.Handle(u.Handler, u.Delete, ok, &model.UserIDParam{}))
}

func registerCityRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	ch := h.City
	g := api.Group("/cities")

	g.GET("", handler.Handle(ch.Handler, ch.List, ok, &model.ListCitiesQuery{}))
	g.GET("/state/:state", handler.Handle(ch.Handler, ch.ListByState, ok, &model.CitiesByStateQuery{}))
	g.GET("/:id", handler.Handle(ch.Handler, ch.Get, ok, &model.IDParam{}))

	w := g.Group("", mw.Auth.RequireAuth, mw.Auth.RequireEditor())
	w.POST("", handler.Handle(ch.Handler, ch.Create, http.StatusCreated, &model.CreateCityPayload{}))
	w.PUT("/:id", handler.Handle(ch.Handler, ch.Update, ok, &model.UpdateCityPayload{}))
	w.DELETE("/:id", handler.Handle(ch.Handler, ch.Delete, ok, &model.IDParam{}))
	w.PATCH("/:id/toggle-status", handler.Handle(ch.Handler, ch.ToggleStatus, ok, &model.IDParam{}))
}

func registerNeighborhoodRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	nh := h.Neighborhood
	g := api.Group("/neighborhoods")

	g.GET("", handler.Handle(nh.Handler, nh.List, ok, &model.ListNeighborhoodsQuery{}))
	g.GET("/city/:cityId", handler.Handle(nh.Handler, nh.ListByCity, ok, &model.NeighborhoodsByCityQuery{}))
	g.GET("/:id", handler.Handle(nh.Handler, nh.Get, ok, &model.IDParam{}))

	w := g.Group("", mw.Auth.RequireAuth, mw.Auth.RequireEditor())
	w.POST("", handler.Handle(nh.Handler, nh.Create, http.StatusCreated, &model.CreateNeighborhoodPayload{}))
	w.PUT("/:id", handler.Handle(nh.Handler, nh.Update, ok, &model.UpdateNeighborhoodPayload{}))
	w.DELETE("/:id", handler.Handle(nh.Handler, nh.Delete, ok, &model.IDParam{}))
	w.PATCH("/:id/toggle-status", handler.Handle(nh.Handler, nh.ToggleStatus, ok, &model.IDParam{}))
}

func registerPropertyTypeRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	th := h.PropertyType
	g := api.Group("/property-types")

	g.GET("", handler.Handle(th.Handler, th.List, ok, &model.ListPropertyTypesQuery{}))
	g.GET("/categories", handler.Handle(th.Handler, th.Categories, ok, &model.EmptyPayload{}))
	g.GET("/category/:category", handler.Handle(th.Handler, th.ListByCategory, ok, &model.PropertyTypesByCategoryQuery{}))
	g.GET("/:id", handler.Handle(th.Handler, th.Get, ok, &model.IDParam{}))

	w := g.Group("", mw.Auth.RequireAuth, mw.Auth.RequireEditor())
	w.POST("", handler.Handle(th.Handler, th.Create, http.StatusCreated, &model.CreatePropertyTypePayload{}))
	w.PUT("/:id", handler.Handle(th.Handler, th.Update, ok, &model.UpdatePropertyTypePayload{}))
	w.DELETE("/:id", handler.Handle(th.Handler, th.Delete, ok, &model.IDParam{}))
	w.PATCH("/:id/toggle-status", handler.Handle(th.Handler, th.ToggleStatus, ok, &model.IDParam{}))
}

func registerPropertyRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	ph := h.Property
	g := api.Group("/properties")

	g.GET("", handler.Handle(ph.Handler, ph.List, ok, &model.ListPropertiesQuery{}), mw.Auth.OptionalAuth)
	g.GET("/featured", handler.Handle(ph.Handler, ph.Featured, ok, &model.FeaturedPropertiesQuery{}))
	g.GET("/property-of-month", handler.Handle(ph.Handler, ph.PropertyOfMonth, ok, &model.EmptyPayload{}))
	g.GET("/:id", handler.Handle(ph.Handler, ph.Get, ok, &model.IDParam{}), mw.Auth.OptionalAuth)

	w := g.Group("", mw.Auth.RequireAuth, mw.Auth.RequireEditor())
	w.POST("", handler.Handle(ph.Handler, ph.Create, http.StatusCreated, &model.CreatePropertyPayload{}))
	w.PUT("/:id", handler.Handle(ph.Handler, ph.Update, ok, &model.UpdatePropertyPayload{}))
	w.DELETE("/:id", handler.Handle(ph.Handler, ph.Delete, ok, &model.IDParam{}))
	w.PATCH("/:id/toggle-status", handler.Handle(ph.Handler, ph.ToggleStatus, ok, &model.IDParam{}))
	w.PATCH("/:id/toggle-featured", handler.Handle(ph.Handler, ph.ToggleFeatured, ok, &model.IDParam{}))
	w.PATCH("/:id/toggle-property-of-month", handler.Handle(ph.Handler, ph.TogglePropertyOfMonth, ok, &model.IDParam{}))
}

func registerSettingsRoutes(api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	sh := h.Settings
	g := api.Group("/settings")

	g.GET("", handler.Handle(sh.Handler, sh.Get, ok, &model.EmptyPayload{}), mw.Auth.OptionalAuth)
	g.GET("/section/:section", handler.Handle(sh.Handler, sh.GetSection, ok, &model.SettingsSectionParam{}), mw.Auth.OptionalAuth)

	w := g.Group("", mw.Auth.RequireAuth, mw.Auth.RequireAdmin())
	w.PUT("", handler.Handle(sh.Handler, sh.Update, ok, &model.UpdateSettingsPayload{}))
	w.PUT("/section/:section", handler.Handle(sh.Handler, sh.UpdateSection, ok, &model.UpdateSettingsSectionPayload{}))
}

func registerUploadRoutes(r *echo.Echo, publicPath string, api *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	uh := h.Upload

	r.GET(strings.TrimSuffix(publicPath, "/")+"/:filename", uh.ServeImage)

	g := api.Group("/upload", mw.Auth.RequireAuth, mw.Auth.RequireEditor())
	g.POST("/image", handler.Handle(uh.Handler, uh.UploadImage, ok, &model.EmptyPayload{}))
	g.DELETE("/image/:filename", handler.Handle(uh.Handler, uh.DeleteImage, ok, &model.FilenameParam{}))
}

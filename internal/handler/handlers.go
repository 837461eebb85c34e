// Package handler is the HTTP layer.
//
// Handlers receive payloads already bound and validated by the Handle
// pipeline, call the matching service and wrap the result in the
// response envelope.
package handler

import (
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
)

type Handlers struct {
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Auth         *AuthHandler
	User         *UserHandler
	City         *CityHandler
	Neighborhood *NeighborhoodHandler
	PropertyType *PropertyTypeHandler
	Property     *PropertyHandler
	Settings     *SettingsHandler
	Upload       *UploadHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Auth:         NewAuthHandler(s, services.Auth),
		User:         NewUserHandler(s, services.User),
		City:         NewCityHandler(s, services.City),
		Neighborhood: NewNeighborhoodHandler(s, services.Neighborhood),
		PropertyType: NewPropertyTypeHandler(s, services.PropertyType),
		Property:     NewPropertyHandler(s, services.Property),
		Settings:     NewSettingsHandler(s, services.Settings),
		Upload:       NewUploadHandler(s, services.Upload),
	}
}

package repository

import (
	"github.com/deppfellow/realty/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	City         *CityRepository
	Neighborhood *NeighborhoodRepository
	PropertyType *PropertyTypeRepository
	Property     *PropertyRepository
	Settings     *SettingsRepository
	User         *UserRepository
}

func NewRepositories(s *server.Server) *Repositories {
	db := s.DB.ORM

	return &Repositories{
		City:         NewCityRepository(db),
		Neighborhood: NewNeighborhoodRepository(db),
		PropertyType: NewPropertyTypeRepository(db),
		Property:     NewPropertyRepository(db),
		Settings:     NewSettingsRepository(db),
		User:         NewUserRepository(db),
	}
}

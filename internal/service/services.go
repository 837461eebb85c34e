package service

import (
	"github.com/deppfellow/realty/internal/lib/job"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
)

type Services struct {
	Auth         *AuthService
	User         *UserService
	City         *CityService
	Neighborhood *NeighborhoodService
	PropertyType *PropertyTypeService
	Property     *PropertyService
	Settings     *SettingsService
	Upload       *UploadService
	Seed         *SeedService
	Job          *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) *Services {
	settings := NewSettingsService(s, repos)

	return &Services{
		Auth:         NewAuthService(s, repos),
		User:         NewUserService(s, repos),
		City:         NewCityService(s, repos),
		Neighborhood: NewNeighborhoodService(s, repos),
		PropertyType: NewPropertyTypeService(s, repos),
		Property:     NewPropertyService(s, repos),
		Settings:     settings,
		Upload:       NewUploadService(s),
		Seed:         NewSeedService(s, repos, settings),
		Job:          s.Job,
	}
}

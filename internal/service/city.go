package service

import (
	"context"

	"github.com/deppfellow/realty/internal/lib/utils"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
	"github.com/google/uuid"
)

type CityService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewCityService(s *server.Server, repos *repository.Repositories) *CityService {
	return &CityService{server: s, repos: repos}
}

func (s *CityService) List(ctx context.Context, q *model.ListCitiesQuery) (*model.CityList, error) {
	q.Normalize()

	cities, total, err := s.repos.City.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &model.CityList{
		Cities:     cities,
		Pagination: model.NewPagination(total, q.Page, q.Limit),
	}, nil
}

func (s *CityService) ListByState(ctx context.Context, q *model.CitiesByStateQuery) ([]model.City, error) {
	return s.repos.City.ListByState(ctx, q.State, utils.Deref(q.Active, true))
}

func (s *CityService) Get(ctx context.Context, id uuid.UUID) (*model.City, error) {
	city, err := s.repos.City.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "City")
	}
	return city, nil
}

func (s *CityService) Create(ctx context.Context, p *model.CreateCityPayload) (*model.City, error) {
	if err := s.ensureUnique(ctx, p.Name, p.State, nil); err != nil {
		return nil, err
	}

	city := &model.City{
		Name:    p.Name,
		State:   p.State,
		ZipCode: p.ZipCode,
		Active:  utils.Deref(p.Active, true),
	}
	if err := s.repos.City.Create(ctx, city); err != nil {
		return nil, err
	}

	s.server.Logger.Info().Str("city_id", city.ID.String()).Str("name", city.Name).Msg("city created")
	return city, nil
}

func (s *CityService) Update(ctx context.Context, p *model.UpdateCityPayload) (*model.City, error) {
	city, err := s.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	name := utils.Deref(p.Name, city.Name)
	state := utils.Deref(p.State, city.State)
	if name != city.Name || state != city.State {
		if err := s.ensureUnique(ctx, name, state, &city.ID); err != nil {
			return nil, err
		}
	}

	city.Name = name
	city.State = state
	city.ZipCode = utils.Deref(p.ZipCode, city.ZipCode)
	city.Active = utils.Deref(p.Active, city.Active)

	if err := s.repos.City.Update(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

// Delete refuses while neighborhoods still point at the city.
func (s *CityService) Delete(ctx context.Context, id uuid.UUID) error {
	city, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repos.Neighborhood.CountByCity(ctx, city.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return conflict("Cannot delete a city that still has neighborhoods", "CITY_IN_USE").
			WithDetails(map[string]int64{"neighborhoods": count})
	}

	if err := s.repos.City.Delete(ctx, city.ID); err != nil {
		return err
	}

	s.server.Logger.Info().Str("city_id", city.ID.String()).Msg("city deleted")
	return nil
}

func (s *CityService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.ActiveState, error) {
	city, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	city.Active = !city.Active
	if err := s.repos.City.Update(ctx, city); err != nil {
		return nil, err
	}
	return &model.ActiveState{Active: city.Active}, nil
}

func (s *CityService) ensureUnique(ctx context.Context, name, state string, excludeID *uuid.UUID) error {
	taken, err := s.repos.City.ExistsByNameAndState(ctx, name, state, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("A city with this name already exists in this state", "CITY_ALREADY_EXISTS")
	}
	return nil
}

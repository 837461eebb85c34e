package service

import (
	"context"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/lib/utils"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/sqlerr"
	"github.com/google/uuid"
)

type NeighborhoodService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewNeighborhoodService(s *server.Server, repos *repository.Repositories) *NeighborhoodService {
	return &NeighborhoodService{server: s, repos: repos}
}

func (s *NeighborhoodService) List(ctx context.Context, q *model.ListNeighborhoodsQuery) (*model.NeighborhoodList, error) {
	q.Normalize()

	items, total, err := s.repos.Neighborhood.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &model.NeighborhoodList{
		Neighborhoods: items,
		Pagination:    model.NewPagination(total, q.Page, q.Limit),
	}, nil
}

// ListByCity returns 404 when the city itself does not exist.
func (s *NeighborhoodService) ListByCity(ctx context.Context, q *model.NeighborhoodsByCityQuery) ([]model.Neighborhood, error) {
	if _, err := s.repos.City.GetByID(ctx, q.CityID); err != nil {
		return nil, notFound(err, "City")
	}
	return s.repos.Neighborhood.ListByCity(ctx, q.CityID, utils.Deref(q.Active, true))
}

func (s *NeighborhoodService) Get(ctx context.Context, id uuid.UUID) (*model.Neighborhood, error) {
	n, err := s.repos.Neighborhood.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Neighborhood")
	}
	return n, nil
}

func (s *NeighborhoodService) Create(ctx context.Context, p *model.CreateNeighborhoodPayload) (*model.Neighborhood, error) {
	if err := s.ensureCity(ctx, p.CityID); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, p.Name, p.CityID, nil); err != nil {
		return nil, err
	}

	n := &model.Neighborhood{
		Name:   p.Name,
		CityID: p.CityID,
		Active: utils.Deref(p.Active, true),
	}
	if err := s.repos.Neighborhood.Create(ctx, n); err != nil {
		return nil, err
	}

	s.server.Logger.Info().Str("neighborhood_id", n.ID.String()).Str("city_id", n.CityID.String()).Msg("neighborhood created")
	return n, nil
}

func (s *NeighborhoodService) Update(ctx context.Context, p *model.UpdateNeighborhoodPayload) (*model.Neighborhood, error) {
	n, err := s.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	cityID := utils.Deref(p.CityID, n.CityID)
	if cityID != n.CityID {
		if err := s.ensureCity(ctx, cityID); err != nil {
			return nil, err
		}
	}

	name := utils.Deref(p.Name, n.Name)
	if name != n.Name || cityID != n.CityID {
		if err := s.ensureUnique(ctx, name, cityID, &n.ID); err != nil {
			return nil, err
		}
	}

	n.Name = name
	n.CityID = cityID
	n.Active = utils.Deref(p.Active, n.Active)

	if err := s.repos.Neighborhood.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NeighborhoodService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repos.Neighborhood.Delete(ctx, n.ID)
}

func (s *NeighborhoodService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.ActiveState, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	n.Active = !n.Active
	if err := s.repos.Neighborhood.Update(ctx, n); err != nil {
		return nil, err
	}
	return &model.ActiveState{Active: n.Active}, nil
}

// ensureCity reports an unknown city as a bad request, since it comes from
// the request body rather than the path.
func (s *NeighborhoodService) ensureCity(ctx context.Context, cityID uuid.UUID) error {
	if _, err := s.repos.City.GetByID(ctx, cityID); err != nil {
		if sqlerr.IsNotFound(err) {
			return errs.NewBadRequestError("City not found", true, errs.Code("CITY_NOT_FOUND"),
				[]errs.FieldError{{Field: "cityId", Message: "does not reference an existing city"}}, nil)
		}
		return err
	}
	return nil
}

func (s *NeighborhoodService) ensureUnique(ctx context.Context, name string, cityID uuid.UUID, excludeID *uuid.UUID) error {
	taken, err := s.repos.Neighborhood.ExistsByNameAndCity(ctx, name, cityID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("A neighborhood with this name already exists in this city", "NEIGHBORHOOD_ALREADY_EXISTS")
	}
	return nil
}

package service

import (
	"context"

	"github.com/deppfellow/realty/internal/lib/utils"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
	"github.com/google/uuid"
)

type PropertyTypeService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewPropertyTypeService(s *server.Server, repos *repository.Repositories) *PropertyTypeService {
	return &PropertyTypeService{server: s, repos: repos}
}

func (s *PropertyTypeService) List(ctx context.Context, q *model.ListPropertyTypesQuery) (*model.PropertyTypeList, error) {
	q.Normalize()

	items, total, err := s.repos.PropertyType.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &model.PropertyTypeList{
		PropertyTypes: items,
		Pagination:    model.NewPagination(total, q.Page, q.Limit),
	}, nil
}

func (s *PropertyTypeService) Categories() []model.CategoryOption {
	return model.CategoryOptions()
}

func (s *PropertyTypeService) ListByCategory(ctx context.Context, q *model.PropertyTypesByCategoryQuery) ([]model.PropertyType, error) {
	return s.repos.PropertyType.ListActiveByCategory(ctx, q.Category)
}

func (s *PropertyTypeService) Get(ctx context.Context, id uuid.UUID) (*model.PropertyType, error) {
	t, err := s.repos.PropertyType.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Property type")
	}
	return t, nil
}

func (s *PropertyTypeService) Create(ctx context.Context, p *model.CreatePropertyTypePayload) (*model.PropertyType, error) {
	if err := s.ensureUnique(ctx, p.Name, nil); err != nil {
		return nil, err
	}

	t := &model.PropertyType{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Active:      utils.Deref(p.Active, true),
	}
	if err := s.repos.PropertyType.Create(ctx, t); err != nil {
		return nil, err
	}

	s.server.Logger.Info().Str("property_type_id", t.ID.String()).Str("name", t.Name).Msg("property type created")
	return t, nil
}

func (s *PropertyTypeService) Update(ctx context.Context, p *model.UpdatePropertyTypePayload) (*model.PropertyType, error) {
	t, err := s.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if p.Name != nil && *p.Name != t.Name {
		if err := s.ensureUnique(ctx, *p.Name, &t.ID); err != nil {
			return nil, err
		}
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	t.Category = utils.Deref(p.Category, t.Category)
	t.Active = utils.Deref(p.Active, t.Active)

	if err := s.repos.PropertyType.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete refuses while properties still use the type.
func (s *PropertyTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repos.Property.CountByType(ctx, t.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return conflict("Cannot delete a property type that is used by properties", "PROPERTY_TYPE_IN_USE").
			WithDetails(map[string]int64{"properties": count})
	}

	return s.repos.PropertyType.Delete(ctx, t.ID)
}

func (s *PropertyTypeService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.ActiveState, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Active = !t.Active
	if err := s.repos.PropertyType.Update(ctx, t); err != nil {
		return nil, err
	}
	return &model.ActiveState{Active: t.Active}, nil
}

func (s *PropertyTypeService) ensureUnique(ctx context.Context, name string, excludeID *uuid.UUID) error {
	taken, err := s.repos.PropertyType.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("A property type with this name already exists", "PROPERTY_TYPE_ALREADY_EXISTS")
	}
	return nil
}

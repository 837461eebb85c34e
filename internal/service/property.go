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

type PropertyService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewPropertyService(s *server.Server, repos *repository.Repositories) *PropertyService {
	return &PropertyService{server: s, repos: repos}
}

// List hides non-active listings and stats from anonymous callers.
func (s *PropertyService) List(ctx context.Context, q *model.ListPropertiesQuery, authenticated bool) (*model.PropertyList, error) {
	q.Normalize()

	items, total, err := s.repos.Property.List(ctx, q, !authenticated)
	if err != nil {
		return nil, err
	}

	result := &model.PropertyList{
		Properties: items,
		Pagination: model.NewPagination(total, q.Page, q.Limit),
	}

	if authenticated {
		stats, err := s.repos.Property.Stats(ctx)
		if err != nil {
			return nil, err
		}
		result.Stats = stats
	}

	return result, nil
}

func (s *PropertyService) Featured(ctx context.Context, q *model.FeaturedPropertiesQuery) ([]model.Property, error) {
	return s.repos.Property.Featured(ctx, q.Limit)
}

// PropertyOfMonth returns nil when no active listing holds the flag.
func (s *PropertyService) PropertyOfMonth(ctx context.Context) (*model.Property, error) {
	return s.repos.Property.PropertyOfMonth(ctx, true)
}

// Get reports non-active listings as missing to anonymous callers.
func (s *PropertyService) Get(ctx context.Context, id uuid.UUID, authenticated bool) (*model.Property, error) {
	p, err := s.repos.Property.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Property")
	}
	if !authenticated && p.Status != model.StatusActive {
		return nil, entityNotFound("Property")
	}
	return p, nil
}

func (s *PropertyService) Create(ctx context.Context, p *model.CreatePropertyPayload) (*model.Property, error) {
	if err := s.ensureType(ctx, p.TypeID); err != nil {
		return nil, err
	}
	if p.PropertyOfMonth {
		if err := s.ensurePropertyOfMonthFree(ctx, uuid.Nil); err != nil {
			return nil, err
		}
	}

	status := p.Status
	if status == "" {
		status = model.StatusActive
	}

	property := &model.Property{
		Title:           p.Title,
		Description:     p.Description,
		TypeID:          p.TypeID,
		Purpose:         p.Purpose,
		Price:           p.Price,
		Neighborhood:    p.Neighborhood,
		City:            p.City,
		UsableArea:      p.UsableArea,
		Bedrooms:        utils.Deref(p.Bedrooms, 0),
		Bathrooms:       utils.Deref(p.Bathrooms, 1),
		ParkingSpaces:   utils.Deref(p.ParkingSpaces, 0),
		Images:          p.Images,
		Featured:        p.Featured,
		PropertyOfMonth: p.PropertyOfMonth,
		Status:          status,
	}
	if err := s.repos.Property.Create(ctx, property); err != nil {
		return nil, err
	}

	s.server.Logger.Info().Str("property_id", property.ID.String()).Str("title", property.Title).Msg("property created")
	return property, nil
}

// Update applies the provided fields. Images dropped from the listing are
// queued for cleanup once the change is stored.
func (s *PropertyService) Update(ctx context.Context, p *model.UpdatePropertyPayload) (*model.Property, error) {
	property, err := s.repos.Property.GetByID(ctx, p.ID)
	if err != nil {
		return nil, notFound(err, "Property")
	}

	if p.TypeID != nil && *p.TypeID != property.TypeID {
		if err := s.ensureType(ctx, *p.TypeID); err != nil {
			return nil, err
		}
		property.TypeID = *p.TypeID
	}
	if p.PropertyOfMonth != nil && *p.PropertyOfMonth && !property.PropertyOfMonth {
		if err := s.ensurePropertyOfMonthFree(ctx, property.ID); err != nil {
			return nil, err
		}
	}

	var removedImages []string
	if p.Images != nil {
		removedImages = utils.Removed(property.Images, *p.Images)
		property.Images = *p.Images
	}

	property.Title = utils.Deref(p.Title, property.Title)
	property.Description = utils.Deref(p.Description, property.Description)
	property.Purpose = utils.Deref(p.Purpose, property.Purpose)
	property.Price = utils.Deref(p.Price, property.Price)
	property.Neighborhood = utils.Deref(p.Neighborhood, property.Neighborhood)
	property.City = utils.Deref(p.City, property.City)
	property.UsableArea = utils.Deref(p.UsableArea, property.UsableArea)
	property.Bedrooms = utils.Deref(p.Bedrooms, property.Bedrooms)
	property.Bathrooms = utils.Deref(p.Bathrooms, property.Bathrooms)
	property.ParkingSpaces = utils.Deref(p.ParkingSpaces, property.ParkingSpaces)
	property.Featured = utils.Deref(p.Featured, property.Featured)
	property.PropertyOfMonth = utils.Deref(p.PropertyOfMonth, property.PropertyOfMonth)
	property.Status = utils.Deref(p.Status, property.Status)

	if err := s.repos.Property.Update(ctx, property); err != nil {
		return nil, err
	}

	s.scheduleImageCleanup(ctx, removedImages)
	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	property, err := s.repos.Property.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Property")
	}

	if err := s.repos.Property.Delete(ctx, property.ID); err != nil {
		return err
	}

	s.server.Logger.Info().Str("property_id", property.ID.String()).Msg("property deleted")
	s.scheduleImageCleanup(ctx, property.Images)
	return nil
}

// ToggleStatus flips active and inactive. Sold and rented listings become
// active again.
func (s *PropertyService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.StatusState, error) {
	property, err := s.repos.Property.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Property")
	}

	if property.Status == model.StatusActive {
		property.Status = model.StatusInactive
	} else {
		property.Status = model.StatusActive
	}

	if err := s.repos.Property.Update(ctx, property); err != nil {
		return nil, err
	}
	return &model.StatusState{Status: property.Status}, nil
}

func (s *PropertyService) ToggleFeatured(ctx context.Context, id uuid.UUID) (*model.FeaturedState, error) {
	property, err := s.repos.Property.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Property")
	}

	property.Featured = !property.Featured
	if err := s.repos.Property.Update(ctx, property); err != nil {
		return nil, err
	}
	return &model.FeaturedState{Featured: property.Featured}, nil
}

func (s *PropertyService) TogglePropertyOfMonth(ctx context.Context, id uuid.UUID) (*model.PropertyOfMonthState, error) {
	property, err := s.repos.Property.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Property")
	}

	if !property.PropertyOfMonth {
		if err := s.ensurePropertyOfMonthFree(ctx, property.ID); err != nil {
			return nil, err
		}
	}

	property.PropertyOfMonth = !property.PropertyOfMonth
	if err := s.repos.Property.Update(ctx, property); err != nil {
		return nil, err
	}
	return &model.PropertyOfMonthState{PropertyOfMonth: property.PropertyOfMonth}, nil
}

func (s *PropertyService) ensureType(ctx context.Context, typeID uuid.UUID) error {
	if _, err := s.repos.PropertyType.GetByID(ctx, typeID); err != nil {
		if sqlerr.IsNotFound(err) {
			return errs.NewBadRequestError("Property type not found", true, errs.Code("PROPERTY_TYPE_NOT_FOUND"),
				[]errs.FieldError{{Field: "typeId", Message: "does not reference an existing property type"}}, nil)
		}
		return err
	}
	return nil
}

// ensurePropertyOfMonthFree fails when a listing other than id already
// holds the flag.
func (s *PropertyService) ensurePropertyOfMonthFree(ctx context.Context, id uuid.UUID) error {
	holder, err := s.repos.Property.PropertyOfMonthHolder(ctx, id)
	if err != nil {
		return err
	}
	if holder != nil {
		return conflict("A property of the month is already set", "PROPERTY_OF_MONTH_ALREADY_SET").
			WithDetails(map[string]any{"existingProperty": holder})
	}
	return nil
}

func (s *PropertyService) scheduleImageCleanup(ctx context.Context, images []string) {
	var uploads []string
	for _, img := range images {
		if s.server.Storage == nil {
			break
		}
		if _, ok := s.server.Storage.FilenameFromURL(img); ok {
			uploads = append(uploads, img)
		}
	}

	if err := s.server.Job.EnqueueImageCleanup(ctx, uploads); err != nil {
		s.server.Logger.Error().Err(err).Strs("images", uploads).Msg("failed to enqueue image cleanup")
	}
}

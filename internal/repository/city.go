package repository

import (
	"context"

	"github.com/deppfellow/realty/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var cityOrderColumns = map[string]string{
	"name":      "name",
	"state":     "state",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) List(ctx context.Context, q *model.ListCitiesQuery) ([]model.City, int64, error) {
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = searchAny(tx, q.Search, "name", "state")
		if q.State != "" {
			tx = tx.Where("state = ?", q.State)
		}
		if q.Active != nil {
			tx = tx.Where("active = ?", *q.Active)
		}
		return tx
	}

	order := orderBy(cityOrderColumns, q.OrderBy, "name", q.Descending(false))
	return findPage[model.City](ctx, r.db, filter, q.PageQuery, order)
}

func (r *CityRepository) ListByState(ctx context.Context, state string, active bool) ([]model.City, error) {
	cities := make([]model.City, 0)
	err := r.db.WithContext(ctx).
		Where("state = ? AND active = ?", state, active).
		Order("name").
		Find(&cities).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cities by state")
	}
	return cities, nil
}

func (r *CityRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.City, error) {
	var city model.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to get city %s", id)
	}
	return &city, nil
}

// ExistsByNameAndState compares names case-insensitively. excludeID skips
// the row being updated.
func (r *CityRepository) ExistsByNameAndState(ctx context.Context, name, state string, excludeID *uuid.UUID) (bool, error) {
	if excludeID != nil {
		return exists[model.City](ctx, r.db, "LOWER(name) = LOWER(?) AND state = ? AND id <> ?", name, state, *excludeID)
	}
	return exists[model.City](ctx, r.db, "LOWER(name) = LOWER(?) AND state = ?", name, state)
}

func (r *CityRepository) Create(ctx context.Context, city *model.City) error {
	if err := r.db.WithContext(ctx).Create(city).Error; err != nil {
		return errors.Wrap(err, "failed to create city")
	}
	return nil
}

func (r *CityRepository) Update(ctx context.Context, city *model.City) error {
	if err := r.db.WithContext(ctx).Save(city).Error; err != nil {
		return errors.Wrap(err, "failed to update city")
	}
	return nil
}

func (r *CityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.City{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete city")
	}
	return nil
}

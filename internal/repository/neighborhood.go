package repository

import (
	"context"

	"github.com/deppfellow/realty/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var neighborhoodOrderColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// NeighborhoodRepository preloads City on every read and never writes it.
type NeighborhoodRepository struct {
	db *gorm.DB
}

func NewNeighborhoodRepository(db *gorm.DB) *NeighborhoodRepository {
	return &NeighborhoodRepository{db: db}
}

func preloadCity(tx *gorm.DB) *gorm.DB {
	return tx.Preload("City", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "state")
	})
}

func (r *NeighborhoodRepository) List(ctx context.Context, q *model.ListNeighborhoodsQuery) ([]model.Neighborhood, int64, error) {
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = searchAny(tx, q.Search, "name")
		if q.CityID != nil {
			tx = tx.Where("city_id = ?", *q.CityID)
		}
		if q.Active != nil {
			tx = tx.Where("active = ?", *q.Active)
		}
		return tx
	}

	order := orderBy(neighborhoodOrderColumns, q.OrderBy, "name", q.Descending(false))
	return findPage[model.Neighborhood](ctx, r.db, filter, q.PageQuery, order, preloadCity)
}

func (r *NeighborhoodRepository) ListByCity(ctx context.Context, cityID uuid.UUID, active bool) ([]model.Neighborhood, error) {
	items := make([]model.Neighborhood, 0)
	err := r.db.WithContext(ctx).
		Scopes(preloadCity).
		Where("city_id = ? AND active = ?", cityID, active).
		Order("name").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list neighborhoods by city")
	}
	return items, nil
}

func (r *NeighborhoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Neighborhood, error) {
	var n model.Neighborhood
	if err := r.db.WithContext(ctx).Scopes(preloadCity).First(&n, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to get neighborhood %s", id)
	}
	return &n, nil
}

func (r *NeighborhoodRepository) ExistsByNameAndCity(ctx context.Context, name string, cityID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	if excludeID != nil {
		return exists[model.Neighborhood](ctx, r.db, "LOWER(name) = LOWER(?) AND city_id = ? AND id <> ?", name, cityID, *excludeID)
	}
	return exists[model.Neighborhood](ctx, r.db, "LOWER(name) = LOWER(?) AND city_id = ?", name, cityID)
}

func (r *NeighborhoodRepository) CountByCity(ctx context.Context, cityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Neighborhood{}).Where("city_id = ?", cityID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count neighborhoods")
	}
	return count, nil
}

// Create and Update refresh n.City after writing.
func (r *NeighborhoodRepository) Create(ctx context.Context, n *model.Neighborhood) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error; err != nil {
		return errors.Wrap(err, "failed to create neighborhood")
	}
	return r.reloadCity(ctx, n)
}

func (r *NeighborhoodRepository) Update(ctx context.Context, n *model.Neighborhood) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(n).Error; err != nil {
		return errors.Wrap(err, "failed to update neighborhood")
	}
	return r.reloadCity(ctx, n)
}

func (r *NeighborhoodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Neighborhood{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete neighborhood")
	}
	return nil
}

func (r *NeighborhoodRepository) reloadCity(ctx context.Context, n *model.Neighborhood) error {
	var ref model.CityRef
	if err := r.db.WithContext(ctx).Select("id", "name", "state").First(&ref, "id = ?", n.CityID).Error; err != nil {
		return errors.Wrap(err, "failed to load neighborhood city")
	}
	n.City = &ref
	return nil
}

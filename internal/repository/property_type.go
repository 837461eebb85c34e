package repository

import (
	"context"

	"github.com/deppfellow/realty/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var propertyTypeOrderColumns = map[string]string{
	"name":      "name",
	"category":  "category",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type PropertyTypeRepository struct {
	db *gorm.DB
}

func NewPropertyTypeRepository(db *gorm.DB) *PropertyTypeRepository {
	return &PropertyTypeRepository{db: db}
}

func (r *PropertyTypeRepository) List(ctx context.Context, q *model.ListPropertyTypesQuery) ([]model.PropertyType, int64, error) {
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = searchAny(tx, q.Search, "name", "description")
		if q.Category != "" {
			tx = tx.Where("category = ?", q.Category)
		}
		if q.Active != nil {
			tx = tx.Where("active = ?", *q.Active)
		}
		return tx
	}

	order := orderBy(propertyTypeOrderColumns, q.OrderBy, "name", q.Descending(false))
	return findPage[model.PropertyType](ctx, r.db, filter, q.PageQuery, order)
}

// ListActiveByCategory returns the active types of one category by name.
func (r *PropertyTypeRepository) ListActiveByCategory(ctx context.Context, category model.PropertyCategory) ([]model.PropertyType, error) {
	items := make([]model.PropertyType, 0)
	err := r.db.WithContext(ctx).
		Where("category = ? AND active = ?", category, true).
		Order("name").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list property types by category")
	}
	return items, nil
}

func (r *PropertyTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PropertyType, error) {
	var t model.PropertyType
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to get property type %s", id)
	}
	return &t, nil
}

func (r *PropertyTypeRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	if excludeID != nil {
		return exists[model.PropertyType](ctx, r.db, "LOWER(name) = LOWER(?) AND id <> ?", name, *excludeID)
	}
	return exists[model.PropertyType](ctx, r.db, "LOWER(name) = LOWER(?)", name)
}

func (r *PropertyTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PropertyType{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count property types")
	}
	return count, nil
}

func (r *PropertyTypeRepository) Create(ctx context.Context, t *model.PropertyType) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return errors.Wrap(err, "failed to create property type")
	}
	return nil
}

func (r *PropertyTypeRepository) CreateBatch(ctx context.Context, types []model.PropertyType) error {
	if len(types) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&types).Error; err != nil {
		return errors.Wrap(err, "failed to create property types")
	}
	return nil
}

func (r *PropertyTypeRepository) Update(ctx context.Context, t *model.PropertyType) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return errors.Wrap(err, "failed to update property type")
	}
	return nil
}

func (r *PropertyTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.PropertyType{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete property type")
	}
	return nil
}

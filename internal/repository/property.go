package repository

import (
	"context"

	"github.com/deppfellow/realty/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var propertyOrderColumns = map[string]string{
	"title":      "title",
	"price":      "price",
	"usableArea": "usable_area",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// PropertyRepository always preloads Type on reads and never writes
// associations.
type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// List applies q. When activeOnly is set the status filter is forced to
// active.
func (r *PropertyRepository) List(ctx context.Context, q *model.ListPropertiesQuery, activeOnly bool) ([]model.Property, int64, error) {
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = searchAny(tx, q.Search, "title", "description", "neighborhood", "city")

		switch {
		case activeOnly:
			tx = tx.Where("status = ?", model.StatusActive)
		case q.Status != "":
			tx = tx.Where("status = ?", q.Status)
		}

		if q.TypeID != nil {
			tx = tx.Where("type_id = ?", *q.TypeID)
		}
		if q.Purpose != "" {
			tx = tx.Where("purpose = ?", q.Purpose)
		}
		if q.City != "" {
			tx = tx.Where("LOWER(city) = LOWER(?)", q.City)
		}
		if q.Neighborhood != "" {
			tx = tx.Where("LOWER(neighborhood) = LOWER(?)", q.Neighborhood)
		}
		if q.MinPrice != nil {
			tx = tx.Where("price >= ?", *q.MinPrice)
		}
		if q.MaxPrice != nil {
			tx = tx.Where("price <= ?", *q.MaxPrice)
		}
		if q.MinArea != nil {
			tx = tx.Where("usable_area >= ?", *q.MinArea)
		}
		if q.MaxArea != nil {
			tx = tx.Where("usable_area <= ?", *q.MaxArea)
		}
		if q.Bedrooms != nil {
			tx = tx.Where("bedrooms = ?", *q.Bedrooms)
		}
		if q.Bathrooms != nil {
			tx = tx.Where("bathrooms = ?", *q.Bathrooms)
		}
		if q.ParkingSpaces != nil {
			tx = tx.Where("parking_spaces = ?", *q.ParkingSpaces)
		}
		if q.Featured != nil {
			tx = tx.Where("featured = ?", *q.Featured)
		}
		if q.PropertyOfMonth != nil {
			tx = tx.Where("property_of_month = ?", *q.PropertyOfMonth)
		}
		return tx
	}

	order := orderBy(propertyOrderColumns, q.OrderBy, "created_at", q.Descending(true))
	return findPage[model.Property](ctx, r.db, filter, q.PageQuery, order, preloadType)
}

// Stats aggregates over the whole table, independent of any list filter.
func (r *PropertyRepository) Stats(ctx context.Context) (*model.PropertyStats, error) {
	stats := &model.PropertyStats{ByStatus: make([]model.StatusCount, 0, len(model.PropertyStatuses))}

	err := r.db.WithContext(ctx).
		Model(&model.Property{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&stats.ByStatus).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count properties by status")
	}

	if err := r.db.WithContext(ctx).Model(&model.Property{}).Where("featured = ?", true).Count(&stats.TotalFeatured).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count featured properties")
	}

	if err := r.db.WithContext(ctx).Model(&model.Property{}).Where("property_of_month = ?", true).Count(&stats.TotalPropertyOfMonth).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count properties of the month")
	}

	return stats, nil
}

// Featured returns active featured listings, newest first.
func (r *PropertyRepository) Featured(ctx context.Context, limit int) ([]model.Property, error) {
	items := make([]model.Property, 0, limit)
	err := r.db.WithContext(ctx).
		Preload("Type").
		Where("status = ? AND featured = ?", model.StatusActive, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured properties")
	}
	return items, nil
}

// PropertyOfMonth returns the flagged listing, or nil when there is none.
// With activeOnly an inactive holder is treated as absent.
func (r *PropertyRepository) PropertyOfMonth(ctx context.Context, activeOnly bool) (*model.Property, error) {
	tx := r.db.WithContext(ctx).Preload("Type").Where("property_of_month = ?", true)
	if activeOnly {
		tx = tx.Where("status = ?", model.StatusActive)
	}

	var items []model.Property
	if err := tx.Order("updated_at DESC").Limit(1).Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get property of the month")
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// PropertyOfMonthHolder returns the listing other than excludeID that
// holds the flag, or nil.
func (r *PropertyRepository) PropertyOfMonthHolder(ctx context.Context, excludeID uuid.UUID) (*model.PropertyRef, error) {
	var items []model.Property
	err := r.db.WithContext(ctx).
		Select("id", "title").
		Where("property_of_month = ? AND id <> ?", true, excludeID).
		Limit(1).
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up property of the month")
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &model.PropertyRef{ID: items[0].ID, Title: items[0].Title}, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	var p model.Property
	if err := r.db.WithContext(ctx).Preload("Type").First(&p, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to get property %s", id)
	}
	return &p, nil
}

func (r *PropertyRepository) CountByType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Property{}).Where("type_id = ?", typeID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count properties by type")
	}
	return count, nil
}

// IsImageReferenced reports whether any listing still lists url among its
// images. It matches on the JSON text so it works for jsonb and SQLite.
func (r *PropertyRepository) IsImageReferenced(ctx context.Context, url string) (bool, error) {
	return exists[model.Property](ctx, r.db, "CAST(images AS TEXT) LIKE ?", `%"`+url+`"%`)
}

// Create and Update reload the row so Type reflects TypeID.
func (r *PropertyRepository) Create(ctx context.Context, p *model.Property) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return errors.Wrap(err, "failed to create property")
	}
	return r.reloadType(ctx, p)
}

func (r *PropertyRepository) Update(ctx context.Context, p *model.Property) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return errors.Wrap(err, "failed to update property")
	}
	return r.reloadType(ctx, p)
}

func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Property{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete property")
	}
	return nil
}

func preloadType(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Type")
}

func (r *PropertyRepository) reloadType(ctx context.Context, p *model.Property) error {
	var t model.PropertyType
	if err := r.db.WithContext(ctx).First(&t, "id = ?", p.TypeID).Error; err != nil {
		return errors.Wrap(err, "failed to load property type")
	}
	p.Type = &t
	return nil
}

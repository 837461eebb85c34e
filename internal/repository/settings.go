package repository

import (
	"context"

	"github.com/deppfellow/realty/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SettingsRepository treats the most recent row as the singleton.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Latest returns the current settings row, or gorm.ErrRecordNotFound
// wrapped when none exists.
func (r *SettingsRepository) Latest(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	if err := r.db.WithContext(ctx).Order("id DESC").First(&s).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get settings")
	}
	return &s, nil
}

func (r *SettingsRepository) Exists(ctx context.Context) (bool, error) {
	return exists[model.Settings](ctx, r.db, "1 = 1")
}

// Save inserts s when it has no id yet and updates it otherwise.
func (r *SettingsRepository) Save(ctx context.Context, s *model.Settings) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return errors.Wrap(err, "failed to save settings")
	}
	return nil
}

package repository

import (
	"context"

	"github.com/deppfellow/realty/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var userOrderColumns = map[string]string{
	"username":  "username",
	"email":     "email",
	"fullName":  "full_name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context, q *model.ListUsersQuery) ([]model.User, int64, error) {
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = searchAny(tx, q.Search, "username", "email", "full_name")
		if q.AccessLevel != "" {
			tx = tx.Where("access_level = ?", q.AccessLevel)
		}
		return tx
	}

	order := orderBy(userOrderColumns, q.OrderBy, "created_at", q.Descending(true))
	return findPage[model.User](ctx, r.db, filter, q.PageQuery, order)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to get user %d", id)
	}
	return &u, nil
}

// GetByLogin finds a user by username or, failing that, by email.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR LOWER(email) = LOWER(?)", login, login).
		Order("id").
		First(&u).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user by login")
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get user by email")
	}
	return &u, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error) {
	return exists[model.User](ctx, r.db, "username = ? AND id <> ?", username, excludeID)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return exists[model.User](ctx, r.db, "LOWER(email) = LOWER(?) AND id <> ?", email, excludeID)
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return errors.Wrap(err, "failed to update user")
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
	if err != nil {
		return errors.Wrap(err, "failed to update password")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.User{}, id).Error; err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return nil
}

// Package repository handles all interactions with the database.
//
// Each entity gets one repository built on the shared GORM handle. Queries
// stay portable between PostgreSQL and SQLite so the test suite can run
// against an in-memory database.
package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/realty/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// filterFunc narrows a query. It is applied once for the count and once for
// the page itself.
type filterFunc func(tx *gorm.DB) *gorm.DB

// findPage counts the rows matched by filter and loads the requested page.
// Preloads only run on the page query.
func findPage[T any](ctx context.Context, db *gorm.DB, filter filterFunc, page model.PageQuery, order clause.OrderByColumn, preloads ...filterFunc) ([]T, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count rows")
	}

	items := make([]T, 0, page.Limit)
	if total == 0 {
		return items, 0, nil
	}

	tx := db.WithContext(ctx).Scopes(filter)
	for _, preload := range preloads {
		tx = preload(tx)
	}
	err := tx.Order(order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to load page")
	}

	return items, total, nil
}

// orderBy resolves a whitelisted orderBy value into a column, falling back
// to def for empty or unknown values.
func orderBy(columns map[string]string, requested, def string, desc bool) clause.OrderByColumn {
	column, ok := columns[requested]
	if !ok {
		column = def
	}
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}
}

// likePattern builds a lowercase substring pattern for LOWER(col) LIKE ?.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// searchAny matches search against any of the given columns.
func searchAny(tx *gorm.DB, search string, columns ...string) *gorm.DB {
	if strings.TrimSpace(search) == "" {
		return tx
	}

	pattern := likePattern(search)
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return tx.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// exists reports whether any row of T matches the condition.
func exists[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check existence")
	}
	return count > 0, nil
}

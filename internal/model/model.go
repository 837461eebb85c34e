// Package model holds the persisted entities, the request payloads that
// create or change them and the shared response envelope.
package model

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Response is the success envelope of every JSON endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func OK(data any) *Response {
	return &Response{Success: true, Data: data}
}

func OKWithMessage(data any, message string) *Response {
	return &Response{Success: true, Data: data, Message: message}
}

type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery carries the paging and ordering parameters shared by every
// list endpoint.
type PageQuery struct {
	Page           int    `query:"page" json:"page" validate:"omitempty,min=1"`
	Limit          int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	OrderDirection string `query:"orderDirection" json:"orderDirection" validate:"omitempty,oneof=ASC DESC asc desc"`
}

// Normalize fills defaults for zero values.
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Descending resolves the requested direction, using def when none was
// given.
func (q PageQuery) Descending(def bool) bool {
	switch strings.ToUpper(q.OrderDirection) {
	case "ASC":
		return false
	case "DESC":
		return true
	default:
		return def
	}
}

// IDParam binds a UUID path parameter.
type IDParam struct {
	ID uuid.UUID `param:"id" json:"-"`
}

func (p *IDParam) Validate() error {
	return nil
}

// ActiveState is returned by the toggle-status endpoints of the catalogue
// entities.
type ActiveState struct {
	Active bool `json:"active"`
}

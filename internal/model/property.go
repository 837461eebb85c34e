package model

import (
	"strings"

	"github.com/deppfellow/realty/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PropertyPurpose string

const (
	PurposeSale PropertyPurpose = "sale"
	PurposeRent PropertyPurpose = "rent"
)

type PropertyStatus string

const (
	StatusActive   PropertyStatus = "active"
	StatusInactive PropertyStatus = "inactive"
	StatusSold     PropertyStatus = "sold"
	StatusRented   PropertyStatus = "rented"
)

var PropertyStatuses = []PropertyStatus{StatusActive, StatusInactive, StatusSold, StatusRented}

var (
	maxPrice      = decimal.RequireFromString("9999999999.99")
	maxUsableArea = decimal.RequireFromString("999999.99")
)

type Property struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string          `json:"title" gorm:"size:255;not null"`
	Description     string          `json:"description" gorm:"type:text;not null"`
	TypeID          uuid.UUID       `json:"typeId" gorm:"type:uuid;not null;index:idx_properties_type_id"`
	Type            *PropertyType   `json:"type,omitempty" gorm:"foreignKey:TypeID"`
	Purpose         PropertyPurpose `json:"purpose" gorm:"size:10;not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Neighborhood    string          `json:"neighborhood" gorm:"size:100;not null"`
	City            string          `json:"city" gorm:"size:100;not null;index:idx_properties_city"`
	UsableArea      decimal.Decimal `json:"usableArea" gorm:"type:numeric(8,2);not null"`
	Bedrooms        int             `json:"bedrooms" gorm:"not null"`
	Bathrooms       int             `json:"bathrooms" gorm:"not null"`
	ParkingSpaces   int             `json:"parkingSpaces" gorm:"not null"`
	Images          []string        `json:"images" gorm:"type:jsonb;serializer:json;not null"`
	Featured        bool            `json:"featured" gorm:"not null"`
	PropertyOfMonth bool            `json:"propertyOfMonth" gorm:"not null"`
	Status          PropertyStatus  `json:"status" gorm:"size:10;not null;index:idx_properties_status"`
	Timestamps
}

func (Property) TableName() string { return "properties" }

func (p *Property) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// PropertyRef identifies the listing that blocks a property-of-month change.
type PropertyRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type StatusCount struct {
	Status PropertyStatus `json:"status"`
	Count  int64          `json:"count"`
}

type PropertyStats struct {
	ByStatus             []StatusCount `json:"byStatus"`
	TotalFeatured        int64         `json:"totalFeatured"`
	TotalPropertyOfMonth int64         `json:"totalPropertyOfMonth"`
}

type PropertyList struct {
	Properties []Property     `json:"properties"`
	Pagination Pagination     `json:"pagination"`
	Stats      *PropertyStats `json:"stats,omitempty"`
}

type CreatePropertyPayload struct {
	Title           string          `json:"title" validate:"required,min=3,max=255"`
	Description     string          `json:"description" validate:"required,min=10,max=2000"`
	TypeID          uuid.UUID       `json:"typeId" validate:"required"`
	Purpose         PropertyPurpose `json:"purpose" validate:"required,oneof=sale rent"`
	Price           decimal.Decimal `json:"price"`
	Neighborhood    string          `json:"neighborhood" validate:"required,min=2,max=100"`
	City            string          `json:"city" validate:"required,min=2,max=100"`
	UsableArea      decimal.Decimal `json:"usableArea"`
	Bedrooms        *int            `json:"bedrooms" validate:"omitempty,min=0,max=20"`
	Bathrooms       *int            `json:"bathrooms" validate:"omitempty,min=1,max=20"`
	ParkingSpaces   *int            `json:"parkingSpaces" validate:"omitempty,min=0,max=20"`
	Images          []string        `json:"images" validate:"required,min=1,max=30,dive,required,imageref"`
	Featured        bool            `json:"featured"`
	PropertyOfMonth bool            `json:"propertyOfMonth"`
	Status          PropertyStatus  `json:"status" validate:"omitempty,oneof=active inactive sold rented"`
}

func (p *CreatePropertyPayload) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	p.Neighborhood = strings.TrimSpace(p.Neighborhood)
	p.City = strings.TrimSpace(p.City)

	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateAmounts(&p.Price, &p.UsableArea)
}

type UpdatePropertyPayload struct {
	ID              uuid.UUID        `param:"id" json:"-"`
	Title           *string          `json:"title" validate:"omitempty,min=3,max=255"`
	Description     *string          `json:"description" validate:"omitempty,min=10,max=2000"`
	TypeID          *uuid.UUID       `json:"typeId"`
	Purpose         *PropertyPurpose `json:"purpose" validate:"omitempty,oneof=sale rent"`
	Price           *decimal.Decimal `json:"price"`
	Neighborhood    *string          `json:"neighborhood" validate:"omitempty,min=2,max=100"`
	City            *string          `json:"city" validate:"omitempty,min=2,max=100"`
	UsableArea      *decimal.Decimal `json:"usableArea"`
	Bedrooms        *int             `json:"bedrooms" validate:"omitempty,min=0,max=20"`
	Bathrooms       *int             `json:"bathrooms" validate:"omitempty,min=1,max=20"`
	ParkingSpaces   *int             `json:"parkingSpaces" validate:"omitempty,min=0,max=20"`
	Images          *[]string        `json:"images" validate:"omitempty,min=1,max=30,dive,required,imageref"`
	Featured        *bool            `json:"featured"`
	PropertyOfMonth *bool            `json:"propertyOfMonth"`
	Status          *PropertyStatus  `json:"status" validate:"omitempty,oneof=active inactive sold rented"`
}

func (p *UpdatePropertyPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateAmounts(p.Price, p.UsableArea)
}

// validateAmounts checks the decimal fields validator tags cannot reach.
// nil pointers are skipped.
func validateAmounts(price, usableArea *decimal.Decimal) error {
	var failures validation.CustomValidationErrors

	if price != nil {
		if !price.IsPositive() {
			failures = append(failures, validation.CustomValidationError{Field: "price", Message: "must be greater than 0"})
		} else if price.GreaterThan(maxPrice) {
			failures = append(failures, validation.CustomValidationError{Field: "price", Message: "must not exceed " + maxPrice.String()})
		}
	}

	if usableArea != nil {
		if !usableArea.IsPositive() {
			failures = append(failures, validation.CustomValidationError{Field: "usableArea", Message: "must be greater than 0"})
		} else if usableArea.GreaterThan(maxUsableArea) {
			failures = append(failures, validation.CustomValidationError{Field: "usableArea", Message: "must not exceed " + maxUsableArea.String()})
		}
	}

	if len(failures) > 0 {
		return failures
	}
	return nil
}

type ListPropertiesQuery struct {
	PageQuery
	Search          string           `query:"search"`
	Status          PropertyStatus   `query:"status" validate:"omitempty,oneof=active inactive sold rented"`
	TypeID          *uuid.UUID       `query:"typeId"`
	Purpose         PropertyPurpose  `query:"purpose" validate:"omitempty,oneof=sale rent"`
	City            string           `query:"city"`
	Neighborhood    string           `query:"neighborhood"`
	MinPrice        *decimal.Decimal `query:"minPrice"`
	MaxPrice        *decimal.Decimal `query:"maxPrice"`
	MinArea         *decimal.Decimal `query:"minArea"`
	MaxArea         *decimal.Decimal `query:"maxArea"`
	Bedrooms        *int             `query:"bedrooms" validate:"omitempty,min=0,max=20"`
	Bathrooms       *int             `query:"bathrooms" validate:"omitempty,min=0,max=20"`
	ParkingSpaces   *int             `query:"parkingSpaces" validate:"omitempty,min=0,max=20"`
	Featured        *bool            `query:"featured"`
	PropertyOfMonth *bool            `query:"propertyOfMonth"`
	OrderBy         string           `query:"orderBy" validate:"omitempty,oneof=title price usableArea createdAt updatedAt"`
}

func (q *ListPropertiesQuery) Validate() error {
	if err := validation.Struct(q); err != nil {
		return err
	}

	var failures validation.CustomValidationErrors
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		failures = append(failures, validation.CustomValidationError{Field: "minPrice", Message: "must not exceed maxPrice"})
	}
	if q.MinArea != nil && q.MaxArea != nil && q.MinArea.GreaterThan(*q.MaxArea) {
		failures = append(failures, validation.CustomValidationError{Field: "minArea", Message: "must not exceed maxArea"})
	}
	if len(failures) > 0 {
		return failures
	}
	return nil
}

type FeaturedPropertiesQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

func (q *FeaturedPropertiesQuery) Validate() error {
	if err := validation.Struct(q); err != nil {
		return err
	}
	if q.Limit == 0 {
		q.Limit = 6
	}
	return nil
}

type StatusState struct {
	Status PropertyStatus `json:"status"`
}

type FeaturedState struct {
	Featured bool `json:"featured"`
}

type PropertyOfMonthState struct {
	PropertyOfMonth bool `json:"propertyOfMonth"`
}

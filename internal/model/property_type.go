package model

import (
	"strings"

	"github.com/deppfellow/realty/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type PropertyCategory string

const (
	CategoryResidential PropertyCategory = "residential"
	CategoryCommercial  PropertyCategory = "commercial"
	CategoryRural       PropertyCategory = "rural"
	CategoryLot         PropertyCategory = "lot"
)

var PropertyCategories = []PropertyCategory{
	CategoryResidential,
	CategoryCommercial,
	CategoryRural,
	CategoryLot,
}

func (c PropertyCategory) Valid() bool {
	for _, known := range PropertyCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c PropertyCategory) Label() string {
	return cases.Title(language.English).String(string(c))
}

type CategoryOption struct {
	Value PropertyCategory `json:"value"`
	Label string           `json:"label"`
}

func CategoryOptions() []CategoryOption {
	options := make([]CategoryOption, 0, len(PropertyCategories))
	for _, c := range PropertyCategories {
		options = append(options, CategoryOption{Value: c, Label: c.Label()})
	}
	return options
}

type PropertyType struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string           `json:"name" gorm:"size:50;not null;uniqueIndex:idx_property_types_name"`
	Description *string          `json:"description"`
	Category    PropertyCategory `json:"category" gorm:"size:20;not null"`
	Active      bool             `json:"active" gorm:"not null"`
	Timestamps
}

func (PropertyType) TableName() string { return "property_types" }

func (t *PropertyType) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

type CreatePropertyTypePayload struct {
	Name        string           `json:"name" validate:"required,min=2,max=50"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Category    PropertyCategory `json:"category" validate:"required,oneof=residential commercial rural lot"`
	Active      *bool            `json:"active"`
}

func (p *CreatePropertyTypePayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validation.Struct(p)
}

type UpdatePropertyTypePayload struct {
	ID          uuid.UUID         `param:"id" json:"-"`
	Name        *string           `json:"name" validate:"omitempty,min=2,max=50"`
	Description *string           `json:"description" validate:"omitempty,max=500"`
	Category    *PropertyCategory `json:"category" validate:"omitempty,oneof=residential commercial rural lot"`
	Active      *bool             `json:"active"`
}

func (p *UpdatePropertyTypePayload) Validate() error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	return validation.Struct(p)
}

type ListPropertyTypesQuery struct {
	PageQuery
	Search   string           `query:"search"`
	Category PropertyCategory `query:"category" validate:"omitempty,oneof=residential commercial rural lot"`
	Active   *bool            `query:"active"`
	OrderBy  string           `query:"orderBy" validate:"omitempty,oneof=name category createdAt updatedAt"`
}

func (q *ListPropertyTypesQuery) Validate() error {
	return validation.Struct(q)
}

type PropertyTypesByCategoryQuery struct {
	Category PropertyCategory `param:"category" validate:"required,oneof=residential commercial rural lot"`
}

func (q *PropertyTypesByCategoryQuery) Validate() error {
	return validation.Struct(q)
}

type PropertyTypeList struct {
	PropertyTypes []PropertyType `json:"propertyTypes"`
	Pagination    Pagination     `json:"pagination"`
}

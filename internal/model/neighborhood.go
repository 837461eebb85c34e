package model

import (
	"strings"

	"github.com/deppfellow/realty/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Neighborhood struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name   string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_neighborhoods_name_city"`
	CityID uuid.UUID `json:"cityId" gorm:"type:uuid;not null;uniqueIndex:idx_neighborhoods_name_city;index:idx_neighborhoods_city_id"`
	Active bool      `json:"active" gorm:"not null"`
	City   *CityRef  `json:"city,omitempty" gorm:"foreignKey:CityID;-:migration"`
	Timestamps
}

func (Neighborhood) TableName() string { return "neighborhoods" }

func (n *Neighborhood) BeforeCreate(*gorm.DB) error {
	ensureID(&n.ID)
	return nil
}

type CreateNeighborhoodPayload struct {
	Name   string    `json:"name" validate:"required,min=2,max=100"`
	CityID uuid.UUID `json:"cityId" validate:"required"`
	Active *bool     `json:"active"`
}

func (p *CreateNeighborhoodPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	return validation.Struct(p)
}

type UpdateNeighborhoodPayload struct {
	ID     uuid.UUID  `param:"id" json:"-"`
	Name   *string    `json:"name" validate:"omitempty,min=2,max=100"`
	CityID *uuid.UUID `json:"cityId"`
	Active *bool      `json:"active"`
}

func (p *UpdateNeighborhoodPayload) Validate() error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	return validation.Struct(p)
}

type ListNeighborhoodsQuery struct {
	PageQuery
	Search  string     `query:"search"`
	CityID  *uuid.UUID `query:"cityId"`
	Active  *bool      `query:"active"`
	OrderBy string     `query:"orderBy" validate:"omitempty,oneof=name createdAt updatedAt"`
}

func (q *ListNeighborhoodsQuery) Validate() error {
	return validation.Struct(q)
}

type NeighborhoodsByCityQuery struct {
	CityID uuid.UUID `param:"cityId"`
	Active *bool     `query:"active"`
}

func (q *NeighborhoodsByCityQuery) Validate() error {
	return nil
}

type NeighborhoodList struct {
	Neighborhoods []Neighborhood `json:"neighborhoods"`
	Pagination    Pagination     `json:"pagination"`
}

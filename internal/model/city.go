package model

import (
	"strings"

	"github.com/deppfellow/realty/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type City struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name    string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_cities_name_state"`
	State   string    `json:"state" gorm:"size:2;not null;uniqueIndex:idx_cities_name_state;index:idx_cities_state"`
	ZipCode string    `json:"zipCode" gorm:"size:9;not null"`
	Active  bool      `json:"active" gorm:"not null"`
	Timestamps
}

func (City) TableName() string { return "cities" }

func (c *City) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// CityRef is the compact form embedded in neighborhood responses.
type CityRef struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name  string    `json:"name"`
	State string    `json:"state"`
}

func (CityRef) TableName() string { return "cities" }

func NormalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

type CreateCityPayload struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	State   string `json:"state" validate:"required,len=2,alpha"`
	ZipCode string `json:"zipCode" validate:"required,zipcode"`
	Active  *bool  `json:"active"`
}

func (p *CreateCityPayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.State = NormalizeState(p.State)
	return validation.Struct(p)
}

type UpdateCityPayload struct {
	ID      uuid.UUID `param:"id" json:"-"`
	Name    *string   `json:"name" validate:"omitempty,min=2,max=100"`
	State   *string   `json:"state" validate:"omitempty,len=2,alpha"`
	ZipCode *string   `json:"zipCode" validate:"omitempty,zipcode"`
	Active  *bool     `json:"active"`
}

func (p *UpdateCityPayload) Validate() error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	if p.State != nil {
		state := NormalizeState(*p.State)
		p.State = &state
	}
	return validation.Struct(p)
}

type ListCitiesQuery struct {
	PageQuery
	Search  string `query:"search"`
	State   string `query:"state" validate:"omitempty,len=2,alpha"`
	Active  *bool  `query:"active"`
	OrderBy string `query:"orderBy" validate:"omitempty,oneof=name state createdAt updatedAt"`
}

func (q *ListCitiesQuery) Validate() error {
	q.State = NormalizeState(q.State)
	return validation.Struct(q)
}

type CitiesByStateQuery struct {
	State  string `param:"state" validate:"required,len=2,alpha"`
	Active *bool  `query:"active"`
}

func (q *CitiesByStateQuery) Validate() error {
	q.State = NormalizeState(q.State)
	return validation.Struct(q)
}

type CityList struct {
	Cities     []City     `json:"cities"`
	Pagination Pagination `json:"pagination"`
}

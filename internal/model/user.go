package model

import (
	"strings"

	"github.com/deppfellow/realty/internal/validation"
)

type AccessLevel string

const (
	AccessAdmin  AccessLevel = "admin"
	AccessEditor AccessLevel = "editor"
)

func (a AccessLevel) Valid() bool {
	return a == AccessAdmin || a == AccessEditor
}

type User struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Username     string      `json:"username" gorm:"size:50;not null;uniqueIndex:idx_users_username"`
	Email        string      `json:"email" gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	FullName     string      `json:"fullName" gorm:"size:100;not null"`
	AccessLevel  AccessLevel `json:"accessLevel" gorm:"size:10;not null"`
	PasswordHash string      `json:"-" gorm:"column:password_hash;size:255;not null"`
	Phone        *string     `json:"phone"`
	Bio          *string     `json:"bio"`
	Avatar       *string     `json:"avatar"`
	Timestamps
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool {
	return u.AccessLevel == AccessAdmin
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CreateUserPayload struct {
	Username    string      `json:"username" validate:"required,min=3,max=50,username"`
	Email       string      `json:"email" validate:"required,email,max=255"`
	FullName    string      `json:"fullName" validate:"required,min=2,max=100"`
	AccessLevel AccessLevel `json:"accessLevel" validate:"omitempty,oneof=admin editor"`
	Password    string      `json:"password" validate:"required,min=6,max=72"`
	Phone       *string     `json:"phone" validate:"omitempty,phone"`
	Bio         *string     `json:"bio" validate:"omitempty,max=500"`
	Avatar      *string     `json:"avatar" validate:"omitempty,imageref"`
}

func (p *CreateUserPayload) Validate() error {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = normalizeEmail(p.Email)
	p.FullName = strings.TrimSpace(p.FullName)
	return validation.Struct(p)
}

type UpdateUserPayload struct {
	ID          uint         `param:"id" json:"-"`
	Username    *string      `json:"username" validate:"omitempty,min=3,max=50,username"`
	Email       *string      `json:"email" validate:"omitempty,email,max=255"`
	FullName    *string      `json:"fullName" validate:"omitempty,min=2,max=100"`
	AccessLevel *AccessLevel `json:"accessLevel" validate:"omitempty,oneof=admin editor"`
	Password    *string      `json:"password" validate:"omitempty,min=6,max=72"`
	Phone       *string      `json:"phone" validate:"omitempty,phone"`
	Bio         *string      `json:"bio" validate:"omitempty,max=500"`
	Avatar      *string      `json:"avatar" validate:"omitempty,imageref"`
}

func (p *UpdateUserPayload) Validate() error {
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		p.Email = &email
	}
	return validation.Struct(p)
}

type UserIDParam struct {
	ID uint `param:"id" json:"-" validate:"required"`
}

func (p *UserIDParam) Validate() error {
	return validation.Struct(p)
}

type ListUsersQuery struct {
	PageQuery
	Search      string      `query:"search"`
	AccessLevel AccessLevel `query:"accessLevel" validate:"omitempty,oneof=admin editor"`
	OrderBy     string      `query:"orderBy" validate:"omitempty,oneof=username email fullName createdAt updatedAt"`
}

func (q *ListUsersQuery) Validate() error {
	return validation.Struct(q)
}

type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (p *LoginPayload) Validate() error {
	p.Username = strings.TrimSpace(p.Username)
	return validation.Struct(p)
}

type LoginResult struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      *User  `json:"user"`
}

type VerifyTokenResult struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user"`
}

type UpdateProfilePayload struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	FullName *string `json:"fullName" validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Avatar   *string `json:"avatar" validate:"omitempty,imageref"`
}

func (p *UpdateProfilePayload) Validate() error {
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		p.Email = &email
	}
	return validation.Struct(p)
}

type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

func (p *ChangePasswordPayload) Validate() error {
	return validation.Struct(p)
}

type ForgotPasswordPayload struct {
	Email string `json:"email" validate:"required,email"`
}

func (p *ForgotPasswordPayload) Validate() error {
	p.Email = strings.TrimSpace(p.Email)
	return validation.Struct(p)
}

type ResetPasswordPayload struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

func (p *ResetPasswordPayload) Validate() error {
	return validation.Struct(p)
}

// EmptyPayload is used by endpoints that take no input.
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error {
	return nil
}

package service

import (
	"context"
	"errors"

	"github.com/deppfellow/realty/internal/lib/utils"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
)

var ErrSeedInProduction = errors.New("seeding is disabled in production")

type seedUser struct {
	username    string
	email       string
	fullName    string
	password    string
	accessLevel model.AccessLevel
}

var seedUsers = []seedUser{
	{"admin", "admin@admin.com", "System Administrator", "admin123", model.AccessAdmin},
	{"editor", "editor@admin.com", "System Editor", "editor123", model.AccessEditor},
}

func defaultPropertyTypes() []model.PropertyType {
	types := []struct {
		name        string
		description string
		category    model.PropertyCategory
	}{
		{"House", "Detached single-family house", model.CategoryResidential},
		{"Apartment", "Unit in a residential building", model.CategoryResidential},
		{"Gated Community House", "House inside a gated community", model.CategoryResidential},
		{"Penthouse", "Top-floor apartment", model.CategoryResidential},
		{"Studio", "Compact single-room apartment", model.CategoryResidential},
		{"Office", "Office room or commercial suite", model.CategoryCommercial},
		{"Store", "Street-level retail space", model.CategoryCommercial},
		{"Warehouse", "Storage or logistics building", model.CategoryCommercial},
		{"Farm", "Productive rural property", model.CategoryRural},
		{"Country House", "Small rural property for leisure", model.CategoryRural},
		{"Lot", "Urban lot", model.CategoryLot},
		{"Gated Community Lot", "Lot inside a gated community", model.CategoryLot},
	}

	out := make([]model.PropertyType, 0, len(types))
	for _, t := range types {
		out = append(out, model.PropertyType{
			Name:        t.name,
			Description: utils.Ptr(t.description),
			Category:    t.category,
			Active:      true,
		})
	}
	return out
}

// SeedResult reports what a seed run created.
type SeedResult struct {
	UsersCreated         int  `json:"usersCreated"`
	PropertyTypesCreated int  `json:"propertyTypesCreated"`
	SettingsCreated      bool `json:"settingsCreated"`
}

// SeedService fills an empty database with the accounts and catalogue
// rows the back office needs to be usable. Every step is skipped when its
// data already exists, so it is safe to run on every boot.
type SeedService struct {
	server   *server.Server
	repos    *repository.Repositories
	settings *SettingsService
}

func NewSeedService(s *server.Server, repos *repository.Repositories, settings *SettingsService) *SeedService {
	return &SeedService{server: s, repos: repos, settings: settings}
}

func (s *SeedService) Run(ctx context.Context) (*SeedResult, error) {
	if s.server.Config.IsProduction() {
		return nil, ErrSeedInProduction
	}

	result := &SeedResult{}
	log := s.server.Logger

	for _, u := range seedUsers {
		created, err := s.ensureUser(ctx, u)
		if err != nil {
			return nil, err
		}
		if created {
			result.UsersCreated++
			log.Info().Str("username", u.username).Msg("seed user created")
		}
	}

	count, err := s.repos.PropertyType.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		types := defaultPropertyTypes()
		if err := s.repos.PropertyType.CreateBatch(ctx, types); err != nil {
			return nil, err
		}
		result.PropertyTypesCreated = len(types)
		log.Info().Int("count", len(types)).Msg("default property types created")
	}

	result.SettingsCreated, err = s.settings.EnsureDefaults(ctx)
	if err != nil {
		return nil, err
	}
	if result.SettingsCreated {
		log.Info().Msg("default settings created")
	}

	return result, nil
}

func (s *SeedService) ensureUser(ctx context.Context, u seedUser) (bool, error) {
	byName, err := s.repos.User.ExistsByUsername(ctx, u.username, 0)
	if err != nil {
		return false, err
	}
	byEmail, err := s.repos.User.ExistsByEmail(ctx, u.email, 0)
	if err != nil {
		return false, err
	}
	if byName || byEmail {
		return false, nil
	}

	hash, err := hashPassword(u.password)
	if err != nil {
		return false, err
	}

	return true, s.repos.User.Create(ctx, &model.User{
		Username:     u.username,
		Email:        u.email,
		FullName:     u.fullName,
		AccessLevel:  u.accessLevel,
		PasswordHash: hash,
	})
}

package service

import (
	"context"
	"bytes"
	"encoding/json"
	"reflect"
	"regexp"
	"strings"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/sqlerr"
	"github.com/deppfellow/realty/internal/validation"
	"github.com/microcosm-cc/bluemonday"
)

const settingsSystemUser = "system"

var googleMapsEmbedSrc = regexp.MustCompile(`^https://(www\.)?google\.com/maps/embed`)

type SettingsService struct {
	server   *server.Server
	repos    *repository.Repositories
	richText *bluemonday.Policy
	mapEmbed *bluemonday.Policy
}

func NewSettingsService(s *server.Server, repos *repository.Repositories) *SettingsService {
	return &SettingsService{
		server:   s,
		repos:    repos,
		richText: bluemonday.UGCPolicy(),
		mapEmbed: newMapEmbedPolicy(),
	}
}

// newMapEmbedPolicy keeps only an iframe whose src is a Google Maps embed.
func newMapEmbedPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("iframe")
	p.AllowURLSchemes("https")
	p.RequireParseableURLs(true)
	p.AllowAttrs("src").Matching(googleMapsEmbedSrc).OnElements("iframe")
	p.AllowAttrs("width", "height").Matching(regexp.MustCompile(`^\d{1,4}%?$`)).OnElements("iframe")
	p.AllowAttrs("loading", "referrerpolicy", "allowfullscreen", "title").OnElements("iframe")
	return p
}

// Get returns the current settings. Anonymous callers get the redacted
// form.
func (s *SettingsService) Get(ctx context.Context, authenticated bool) (*model.Settings, error) {
	settings, err := s.repos.Settings.Latest(ctx)
	if err != nil {
		return nil, notFound(err, "Settings")
	}

	if !authenticated {
		redacted := settings.Redacted()
		return &redacted, nil
	}
	return settings, nil
}

func (s *SettingsService) GetSection(ctx context.Context, section string, authenticated bool) (any, error) {
	settings, err := s.Get(ctx, authenticated)
	if err != nil {
		return nil, err
	}
	return settings.Section(section), nil
}

// Update merges every provided section into the stored settings, creating
// them from defaults when no row exists yet.
func (s *SettingsService) Update(ctx context.Context, p *model.UpdateSettingsPayload, updatedBy string) (*model.Settings, error) {
	return s.merge(ctx, p.Sections(), updatedBy)
}

func (s *SettingsService) UpdateSection(ctx context.Context, p *model.UpdateSettingsSectionPayload, updatedBy string) (any, error) {
	settings, err := s.merge(ctx, map[string]json.RawMessage{p.Section: p.Data}, updatedBy)
	if err != nil {
		return nil, err
	}
	return settings.Section(p.Section), nil
}

// EnsureDefaults stores the default settings when none exist and reports
// whether it did.
func (s *SettingsService) EnsureDefaults(ctx context.Context) (bool, error) {
	found, err := s.repos.Settings.Exists(ctx)
	if err != nil || found {
		return false, err
	}

	defaults := model.DefaultSettings()
	if err := s.repos.Settings.Save(ctx, &defaults); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SettingsService) merge(ctx context.Context, sections map[string]json.RawMessage, updatedBy string) (*model.Settings, error) {
	settings, err := s.repos.Settings.Latest(ctx)
	if err != nil {
		if !sqlerr.IsNotFound(err) {
			return nil, err
		}
		defaults := model.DefaultSettings()
		settings = &defaults
	}

	for name, raw := range sections {
		target := settings.Section(name)
		if target == nil {
			continue
		}
		if err := mergeSection(target, raw); err != nil {
			return nil, errs.NewBadRequestError("Invalid settings data", true, nil,
				[]errs.FieldError{{Field: name, Message: "has an invalid shape: " + err.Error()}}, nil)
		}
	}

	if err := s.sanitize(settings); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		msg, fieldErrors := validation.ExtractValidationError(err)
		return nil, errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	settings.UpdatedBy = strings.TrimSpace(updatedBy)
	if settings.UpdatedBy == "" {
		settings.UpdatedBy = settingsSystemUser
	}

	if err := s.repos.Settings.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.server.Logger.Info().Str("updated_by", settings.UpdatedBy).Int("sections", len(sections)).Msg("settings updated")
	return settings, nil
}

func (s *SettingsService) sanitize(settings *model.Settings) error {
	about := &settings.SiteContent.About
	about.Content = s.richText.Sanitize(about.Content)

	address := &settings.CompanyInfo.Address
	embed := strings.TrimSpace(address.GoogleMapsEmbed)
	if embed == "" {
		address.GoogleMapsEmbed = ""
		return nil
	}

	clean := s.mapEmbed.Sanitize(embed)
	if !strings.Contains(clean, "<iframe") || !strings.Contains(clean, "src=") {
		return errs.NewBadRequestError("Validation failed", true, nil,
			[]errs.FieldError{{Field: "companyInfo.address.googleMapsEmbed", Message: "must be a Google Maps embed iframe"}}, nil)
	}
	address.GoogleMapsEmbed = clean
	return nil
}

// mergeSection applies patch onto the section target points at. Objects
// merge key by key; arrays and scalars in patch replace the stored value.
func mergeSection(target any, patch json.RawMessage) error {
	current, err := json.Marshal(target)
	if err != nil {
		return err
	}

	base, err := decodeObject(current)
	if err != nil {
		return err
	}
	changes, err := decodeObject(patch)
	if err != nil {
		return err
	}

	merged, err := json.Marshal(mergeObjects(base, changes))
	if err != nil {
		return err
	}

	reflect.ValueOf(target).Elem().SetZero()
	return json.Unmarshal(merged, target)
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

func mergeObjects(base, changes map[string]any) map[string]any {
	for key, value := range changes {
		next, ok := value.(map[string]any)
		prev, wasObject := base[key].(map[string]any)
		if ok && wasObject {
			base[key] = mergeObjects(prev, next)
			continue
		}
		base[key] = value
	}
	return base
}

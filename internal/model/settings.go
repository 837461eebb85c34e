package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/deppfellow/realty/internal/validation"
)

// Settings is the singleton row holding site content and integration
// credentials. Each section is stored as a JSON document.
type Settings struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	CompanyInfo    CompanyInfo    `json:"companyInfo" gorm:"type:jsonb;serializer:json;not null"`
	VisualIdentity VisualIdentity `json:"visualIdentity" gorm:"type:jsonb;serializer:json;not null"`
	SiteContent    SiteContent    `json:"siteContent" gorm:"type:jsonb;serializer:json;not null"`
	SEOSettings    SEOSettings    `json:"seoSettings" gorm:"column:seo_settings;type:jsonb;serializer:json;not null"`
	SystemSettings SystemSettings `json:"systemSettings" gorm:"type:jsonb;serializer:json;not null"`
	UpdatedBy      string         `json:"updatedBy" gorm:"size:100"`
	UpdatedAt      time.Time      `json:"updatedAt" gorm:"not null"`
}

func (Settings) TableName() string { return "settings" }

func (s *Settings) Validate() error {
	return validation.Struct(s)
}

// Section names accepted by the section endpoints.
const (
	SectionCompanyInfo    = "companyInfo"
	SectionVisualIdentity = "visualIdentity"
	SectionSiteContent    = "siteContent"
	SectionSEOSettings    = "seoSettings"
	SectionSystemSettings = "systemSettings"
)

var SettingsSections = []string{
	SectionCompanyInfo,
	SectionVisualIdentity,
	SectionSiteContent,
	SectionSEOSettings,
	SectionSystemSettings,
}

func IsSettingsSection(name string) bool {
	for _, s := range SettingsSections {
		if s == name {
			return true
		}
	}
	return false
}

// Section returns a pointer to the named section, or nil when unknown.
func (s *Settings) Section(name string) any {
	switch name {
	case SectionCompanyInfo:
		return &s.CompanyInfo
	case SectionVisualIdentity:
		return &s.VisualIdentity
	case SectionSiteContent:
		return &s.SiteContent
	case SectionSEOSettings:
		return &s.SEOSettings
	case SectionSystemSettings:
		return &s.SystemSettings
	default:
		return nil
	}
}

// Redacted returns a copy with integration secrets blanked, for
// anonymous readers.
func (s Settings) Redacted() Settings {
	s.SystemSettings.Email.Settings.Password = ""
	s.SystemSettings.Email.Settings.APIKey = ""
	s.SystemSettings.Integrations.Maps.APIKey = ""
	return s
}

type CompanyInfo struct {
	Name          string        `json:"name" validate:"required,min=2,max=200"`
	CNPJ          string        `json:"cnpj" validate:"omitempty,cnpj"`
	Address       Address       `json:"address"`
	Contact       Contact       `json:"contact"`
	BusinessHours BusinessHours `json:"businessHours"`
	SocialMedia   SocialMedia   `json:"socialMedia"`
}

type Address struct {
	Street          string `json:"street" validate:"max=200"`
	Number          string `json:"number" validate:"max=20"`
	Complement      string `json:"complement,omitempty" validate:"max=100"`
	Neighborhood    string `json:"neighborhood" validate:"max=100"`
	City            string `json:"city" validate:"max=100"`
	State           string `json:"state" validate:"omitempty,len=2,alpha"`
	ZipCode         string `json:"zipCode" validate:"omitempty,zipcode"`
	GoogleMapsEmbed string `json:"googleMapsEmbed,omitempty"`
}

type Contact struct {
	Phone    string `json:"phone" validate:"omitempty,phone"`
	WhatsApp string `json:"whatsapp" validate:"omitempty,phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
}

type BusinessHours struct {
	Weekdays string `json:"weekdays"`
	Weekend  string `json:"weekend,omitempty"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	YouTube   string `json:"youtube,omitempty" validate:"omitempty,url"`
}

type VisualIdentity struct {
	Logo       string      `json:"logo"`
	Favicon    string      `json:"favicon,omitempty"`
	Colors     BrandColors `json:"colors"`
	Fonts      BrandFonts  `json:"fonts"`
	HeroImage  string      `json:"heroImage"`
	AboutImage string      `json:"aboutImage,omitempty"`
}

type BrandColors struct {
	Primary    string `json:"primary" validate:"omitempty,color"`
	Secondary  string `json:"secondary" validate:"omitempty,color"`
	Accent     string `json:"accent" validate:"omitempty,color"`
	Background string `json:"background" validate:"omitempty,color"`
	Text       string `json:"text" validate:"omitempty,color"`
}

type BrandFonts struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

type SiteContent struct {
	Hero     HeroContent     `json:"hero"`
	About    AboutContent    `json:"about"`
	Services ServicesContent `json:"services"`
	Team     []TeamMember    `json:"team" validate:"dive"`
	Footer   FooterContent   `json:"footer"`
}

type HeroContent struct {
	Title             string `json:"title" validate:"max=200"`
	Subtitle          string `json:"subtitle" validate:"max=300"`
	SearchPlaceholder string `json:"searchPlaceholder" validate:"max=200"`
}

type AboutContent struct {
	Title   string   `json:"title" validate:"max=200"`
	Content string   `json:"content" validate:"max=10000"`
	Mission string   `json:"mission,omitempty"`
	Vision  string   `json:"vision,omitempty"`
	Values  []string `json:"values,omitempty"`
}

type ServicesContent struct {
	Title string        `json:"title"`
	Items []ServiceItem `json:"items" validate:"dive"`
}

type ServiceItem struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type TeamMember struct {
	Name        string `json:"name" validate:"required"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Photo       string `json:"photo,omitempty"`
	CRECI       string `json:"creci,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,phone"`
}

type FooterContent struct {
	Copyright   string      `json:"copyright"`
	DevelopedBy DevelopedBy `json:"developedBy"`
}

type DevelopedBy struct {
	Text string `json:"text"`
	Link string `json:"link" validate:"omitempty,url"`
}

type SEOSettings struct {
	SiteName         string   `json:"siteName" validate:"max=200"`
	SiteDescription  string   `json:"siteDescription" validate:"max=500"`
	Keywords         []string `json:"keywords"`
	Author           string   `json:"author"`
	OGImage          string   `json:"ogImage,omitempty"`
	Favicon          string   `json:"favicon,omitempty"`
	GoogleAnalytics  string   `json:"googleAnalytics,omitempty"`
	GoogleTagManager string   `json:"googleTagManager,omitempty"`
	FacebookPixel    string   `json:"facebookPixel,omitempty"`
}

type SystemSettings struct {
	Maintenance  Maintenance  `json:"maintenance"`
	Email        EmailSystem  `json:"email"`
	Integrations Integrations `json:"integrations"`
}

type Maintenance struct {
	Enabled    bool     `json:"enabled"`
	Message    string   `json:"message,omitempty"`
	AllowedIPs []string `json:"allowedIPs,omitempty" validate:"dive,ip"`
}

type EmailSystem struct {
	Provider  string         `json:"provider" validate:"omitempty,oneof=smtp sendgrid mailgun resend"`
	Settings  EmailTransport `json:"settings"`
	Templates EmailTemplates `json:"templates"`
}

type EmailTransport struct {
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty" validate:"min=0,max=65535"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
}

type EmailTemplates struct {
	Contact    string `json:"contact"`
	Inquiry    string `json:"inquiry"`
	Newsletter string `json:"newsletter,omitempty"`
}

type Integrations struct {
	WhatsApp WhatsAppIntegration `json:"whatsapp"`
	Maps     MapsIntegration     `json:"maps"`
}

type WhatsAppIntegration struct {
	Enabled bool   `json:"enabled"`
	Number  string `json:"number" validate:"omitempty,numeric,min=10,max=15"`
	Message string `json:"message"`
}

type MapsIntegration struct {
	Provider        string      `json:"provider" validate:"omitempty,oneof=google mapbox"`
	APIKey          string      `json:"apiKey,omitempty"`
	DefaultLocation GeoLocation `json:"defaultLocation"`
}

type GeoLocation struct {
	Lat  float64 `json:"lat" validate:"min=-90,max=90"`
	Lng  float64 `json:"lng" validate:"min=-180,max=180"`
	Zoom int     `json:"zoom" validate:"min=0,max=22"`
}

var errUnknownSection = validation.CustomValidationErrors{{
	Field:   "section",
	Message: "must be one of: companyInfo visualIdentity siteContent seoSettings systemSettings",
}}

type SettingsSectionParam struct {
	Section string `param:"section"`
}

func (p *SettingsSectionParam) Validate() error {
	if !IsSettingsSection(p.Section) {
		return errUnknownSection
	}
	return nil
}

// UpdateSettingsPayload carries the sections to merge as raw JSON so that
// absent keys can be told apart from zero values.
type UpdateSettingsPayload struct {
	CompanyInfo    json.RawMessage `json:"companyInfo"`
	VisualIdentity json.RawMessage `json:"visualIdentity"`
	SiteContent    json.RawMessage `json:"siteContent"`
	SEOSettings    json.RawMessage `json:"seoSettings"`
	SystemSettings json.RawMessage `json:"systemSettings"`
}

func (p *UpdateSettingsPayload) all() map[string]json.RawMessage {
	return map[string]json.RawMessage{
		SectionCompanyInfo:    p.CompanyInfo,
		SectionVisualIdentity: p.VisualIdentity,
		SectionSiteContent:    p.SiteContent,
		SectionSEOSettings:    p.SEOSettings,
		SectionSystemSettings: p.SystemSettings,
	}
}

// Sections returns the provided sections keyed by name. Absent and null
// sections are left out.
func (p *UpdateSettingsPayload) Sections() map[string]json.RawMessage {
	sections := make(map[string]json.RawMessage)
	for name, raw := range p.all() {
		if isJSONObject(raw) {
			sections[name] = raw
		}
	}
	return sections
}

func (p *UpdateSettingsPayload) Validate() error {
	all := p.all()

	var failures validation.CustomValidationErrors
	for _, name := range SettingsSections {
		raw := bytes.TrimSpace(all[name])
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		if !isJSONObject(raw) {
			failures = append(failures, validation.CustomValidationError{Field: name, Message: "must be an object"})
		}
	}
	if len(failures) > 0 {
		return failures
	}

	if len(p.Sections()) == 0 {
		return validation.CustomValidationErrors{{Field: "request", Message: "at least one settings section is required"}}
	}
	return nil
}

// UpdateSettingsSectionPayload takes the whole request body as the
// section document.
type UpdateSettingsSectionPayload struct {
	Section string          `param:"section" json:"-"`
	Data    json.RawMessage `json:"-"`
}

func (p *UpdateSettingsSectionPayload) UnmarshalJSON(b []byte) error {
	p.Data = append(p.Data[:0], b...)
	return nil
}

func (p *UpdateSettingsSectionPayload) Validate() error {
	if !IsSettingsSection(p.Section) {
		return errUnknownSection
	}
	if !isJSONObject(p.Data) {
		return validation.CustomValidationErrors{{Field: "request", Message: "must be a JSON object"}}
	}
	return nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

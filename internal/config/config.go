// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), maps them into structured Go types and validates them so the
// service fails fast on bad or missing configuration.
//
// Keys use the REALTY_ prefix and "." for nesting:
//
//	REALTY_DATABASE.HOST -> database.host -> Config.Database.Host
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	envPrefix   = "REALTY_"
	serviceName = "realty"

	EnvLocal       = "local"
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Upload        UploadConfig         `koanf:"upload" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Email         EmailConfig          `koanf:"email"`
	Seed          SeedConfig           `koanf:"seed"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are
// expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
	SkipMigrations  bool   `koanf:"skip_migrations"`
}

// RedisConfig contains Redis connection details. An empty address disables
// Redis backed features (job queue, login rate limiting).
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// AuthConfig holds the settings used to sign and verify access tokens.
type AuthConfig struct {
	SecretKey     string        `koanf:"secret_key" validate:"required,min=16"`
	Issuer        string        `koanf:"issuer" validate:"required"`
	TokenTTL      time.Duration `koanf:"token_ttl" validate:"required,min=1m"`
	LoginAttempts int           `koanf:"login_attempts" validate:"min=1"`
	LoginWindow   time.Duration `koanf:"login_window" validate:"min=1s"`
	ResetTokenTTL time.Duration `koanf:"reset_token_ttl" validate:"required,min=1m"`
}

// UploadConfig controls where images are written and how they are exposed.
type UploadConfig struct {
	Dir          string `koanf:"dir" validate:"required"`
	MaxSizeBytes int64  `koanf:"max_size_bytes" validate:"required,min=1"`
	PublicPath   string `koanf:"public_path" validate:"required,startswith=/"`
}

type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

type EmailConfig struct {
	From      string `koanf:"from"`
	PublicURL string `koanf:"public_url"`
}

type SeedConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Default returns a configuration with every optional value filled in.
// Load unmarshals the environment on top of it, so absent keys keep these
// values.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: EnvLocal},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "realty",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
		},
		Auth: AuthConfig{
			Issuer:        serviceName,
			TokenTTL:      24 * time.Hour,
			LoginAttempts: 10,
			LoginWindow:   15 * time.Minute,
			ResetTokenTTL: time.Hour,
		},
		Upload: UploadConfig{
			Dir:          "uploads",
			MaxSizeBytes: 5 << 20,
			PublicPath:   "/uploads",
		},
		Email: EmailConfig{
			From: "Realty <no-reply@realty.local>",
		},
		Seed: SeedConfig{Enabled: true},
	}
}

// Load reads the environment, unmarshals it on top of Default, validates
// the result and fills in observability defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal main config")
	}

	if err := mainConfig.finalize(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) finalize() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation failed")
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	c.Observability.ServiceName = serviceName
	c.Observability.Environment = c.Primary.Env

	if err := c.Observability.Validate(); err != nil {
		return errors.Wrap(err, "invalid observability config")
	}

	return nil
}

func (c *Config) IsLocal() bool {
	return c.Primary.Env == EnvLocal
}

func (c *Config) IsProduction() bool {
	return c.Primary.Env == EnvProduction
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Address != ""
}

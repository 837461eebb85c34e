// Package testutil builds a Server backed by an in-memory SQLite database
// for repository, service and handler tests.
package testutil

import (
	"testing"

	"github.com/deppfellow/realty/internal/config"
	"github.com/deppfellow/realty/internal/database"
	"github.com/deppfellow/realty/internal/lib/email"
	"github.com/deppfellow/realty/internal/lib/storage"
	"github.com/deppfellow/realty/internal/lib/token"
	"github.com/deppfellow/realty/internal/logger"
	"github.com/deppfellow/realty/internal/model"
	"github.com/deppfellow/realty/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const TestSecret = "test-secret-key-0123456789"

// Models lists every persisted model, in dependency order.
var Models = []any{
	&model.City{},
	&model.Neighborhood{},
	&model.PropertyType{},
	&model.Property{},
	&model.Settings{},
	&model.User{},
}

// NewDB opens a private in-memory database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models...))
	return db
}

// NewConfig returns a valid local configuration with uploads going to a
// temporary directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.SecretKey = TestSecret
	cfg.Upload.Dir = t.TempDir()
	cfg.Email.PublicURL = "http://localhost:5173"
	cfg.Observability = config.DefaultObservabilityConfig()
	cfg.Observability.Environment = cfg.Primary.Env
	return cfg
}

// NewServer builds a Server without Redis, so background jobs are
// dropped.
func NewServer(t *testing.T) *server.Server {
	t.Helper()
	return NewServerWithConfig(t, NewConfig(t))
}

func NewServerWithConfig(t *testing.T, cfg *config.Config) *server.Server {
	t.Helper()

	log := zerolog.Nop()

	store, err := storage.NewLocalStorage(&cfg.Upload)
	require.NoError(t, err)

	return &server.Server{
		Config:        cfg,
		Logger:        &log,
		LoggerService: &logger.LoggerService{},
		DB:            database.NewFromGorm(NewDB(t), &log),
		Storage:       store,
		Tokens:        token.NewManager(&cfg.Auth),
		Email:         email.NewClient(cfg, &log),
	}
}

// Token signs an access token for user with the server's key.
func Token(t *testing.T, s *server.Server, user *model.User) string {
	t.Helper()

	signed, _, err := s.Tokens.Issue(user)
	require.NoError(t, err)
	return signed
}

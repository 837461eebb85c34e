package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/realty/internal/config"
	"github.com/deppfellow/realty/internal/database"
	"github.com/deppfellow/realty/internal/handler"
	"github.com/deppfellow/realty/internal/lib/job"
	"github.com/deppfellow/realty/internal/logger"
	"github.com/deppfellow/realty/internal/repository"
	"github.com/deppfellow/realty/internal/router"
	"github.com/deppfellow/realty/internal/server"
	"github.com/deppfellow/realty/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "realty",
		Short:         "Real estate listing back office API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run migrations, seed and start the HTTP API and job workers",
			RunE:  func(cmd *cobra.Command, _ []string) error { return runServe(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations",
			RunE:  func(cmd *cobra.Command, _ []string) error { return runMigrate(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Create the default users, property types and settings",
			RunE:  func(cmd *cobra.Command, _ []string) error { return runSeed(cmd.Context()) },
		},
	)

	return root
}

// bootstrap loads the config and builds the root logger. Errors before the
// logger exists go to stderr.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Error().Err(err).Msg("failed to load config")
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

func runMigrate(ctx context.Context) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Error().Err(err).Msg("failed to migrate database")
		return err
	}
	return nil
}

func runSeed(ctx context.Context) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	if cfg.IsProduction() {
		loggerService.Shutdown()
		return service.ErrSeedInProduction
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}
	defer srv.Shutdown(context.Background())

	services := service.NewService(srv, repository.NewRepositories(srv))
	return seed(ctx, log, services)
}

func seed(ctx context.Context, log *zerolog.Logger, services *service.Services) error {
	result, err := services.Seed.Run(ctx)
	if err != nil {
		if errors.Is(err, service.ErrSeedInProduction) {
			log.Warn().Msg("skipping seed in production")
			return nil
		}
		log.Error().Err(err).Msg("failed to seed database")
		return err
	}

	log.Info().
		Int("users_created", result.UsersCreated).
		Int("property_types_created", result.PropertyTypesCreated).
		Bool("settings_created", result.SettingsCreated).
		Msg("seed finished")
	return nil
}

// runServe serves until SIGINT or SIGTERM and then drains for up to
// shutdownTimeout.
func runServe(parent context.Context) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}

	if !(cfg.IsLocal() && cfg.Database.SkipMigrations) {
		if err := database.Migrate(parent, log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			loggerService.Shutdown()
			return err
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	repos := repository.NewRepositories(srv)
	services := service.NewService(srv, repos)

	if cfg.Seed.Enabled {
		if err := seed(parent, log, services); err != nil {
			_ = srv.Shutdown(context.Background())
			return err
		}
	}

	srv.Job.InitHandlers(&job.HandlerDeps{
		Email:    srv.Email,
		Storage:  srv.Storage,
		Images:   repos.Property,
		LoginURL: cfg.Email.PublicURL + "/login",
	})
	if err := srv.Job.Start(); err != nil {
		log.Error().Err(err).Msg("failed to start job server")
		_ = srv.Shutdown(context.Background())
		return err
	}

	srv.SetupHTTPServer(router.NewRouter(srv, handler.NewHandlers(srv, services)))

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("server forced to shutdown")
		err = errors.Join(err, shutdownErr)
	}

	log.Info().Msg("server exited properly")
	return err
}

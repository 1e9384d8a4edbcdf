// Package app wires the runtime store, the Supla integration and the host
// platform together for the command binaries.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/homai-supla/pkg/config"
	"github.com/urmzd/homai-supla/pkg/db"
	"github.com/urmzd/homai-supla/pkg/device"
	"github.com/urmzd/homai-supla/pkg/device/schema"
	"github.com/urmzd/homai-supla/pkg/discovery"
	"github.com/urmzd/homai-supla/pkg/host"
	"github.com/urmzd/homai-supla/pkg/registry"
)

// Options controls startup.
type Options struct {
	// DBPath is the SQLite store; empty selects the default location.
	DBPath string

	// Profile selects the active profile, creating it when missing. Empty
	// keeps the stored active profile.
	Profile string

	// ConfigPath is an optional YAML file imported into the active profile.
	ConfigPath string

	// Dial creates Supla clients. Nil uses registry.DefaultDialer.
	Dial registry.Dialer
}

// App is a started integration.
type App struct {
	DB         *db.DB
	Config     *db.Config
	Controller device.Controller
}

// SetupLogging configures the global zerolog console logger on w.
func SetupLogging(w io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	return nil
}

// Start opens the store, loads the active profile and sets up the Supla
// integration. A failed integration setup is logged and leaves the front
// ends running on a device.NullController; only store errors are returned.
func Start(ctx context.Context, opts Options) (*App, error) {
	database, err := openStore(ctx, opts.DBPath)
	if err != nil {
		return nil, err
	}

	if opts.Profile != "" {
		if _, err := database.UseProfile(ctx, opts.Profile); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to select profile: %w", err)
		}
	}

	if opts.ConfigPath != "" {
		file, err := config.Load(opts.ConfigPath)
		if err != nil {
			_ = database.Close()
			return nil, err
		}
		if err := database.ImportConfig(ctx, file); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to import config: %w", err)
		}
		log.Info().Str("path", opts.ConfigPath).Int("servers", len(file.Servers)).Msg("Configuration imported")
	}

	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("api_address", cfg.APIAddress()).
		Int("servers", len(cfg.Servers)).
		Msg("Configuration loaded")

	a := &App{DB: database, Config: cfg}

	platform, err := setupIntegration(ctx, cfg.Integration(), opts.Dial)
	if err != nil {
		log.Error().Err(err).Msg("Supla integration not set up, using null controller")
		a.Controller = device.NewNullController()
		return a, nil
	}

	platform.Start(ctx)
	a.Controller = platform
	return a, nil
}

// Close stops polling and closes the store.
func (a *App) Close() {
	if a.Controller != nil {
		a.Controller.Close()
	}
	if err := a.DB.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}
}

func openStore(ctx context.Context, path string) (*db.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log.Info().Str("path", database.Path()).Msg("Database opened")

	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to check bootstrap status: %w", err)
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to bootstrap database: %w", err)
		}
	}

	return database, nil
}

func setupIntegration(ctx context.Context, cfg *config.Config, dial registry.Dialer) (*host.Platform, error) {
	if len(cfg.Servers) == 0 {
		return nil, fmt.Errorf("no %s servers configured", config.Domain)
	}

	reg, err := registry.Setup(ctx, cfg.Servers, dial)
	if err != nil {
		return nil, err
	}

	platform := host.NewPlatform(reg, schema.NewValidator())
	res, err := discovery.Discover(ctx, reg, platform, cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("servers", reg.Len()).
		Int("entities", res.Count()).
		Int("unsupported", len(res.Unsupported)).
		Msg("Supla integration set up")

	return platform, nil
}

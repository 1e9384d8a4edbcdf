package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/urmzd/homai-supla/pkg/config"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config is the runtime configuration of the active profile.
type Config struct {
	Profile   *Profile
	APIServer *APIServer
	Servers   []config.ServerConfig
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return "0.0.0.0:8080"
	}
	return c.APIServer.Address()
}

// Integration returns the Supla configuration of the profile.
func (c *Config) Integration() *config.Config {
	return &config.Config{Servers: c.Servers}
}

// ActiveConfig loads the complete configuration for the active profile.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	cfg := &Config{
		Profile: profile,
	}

	apiServer, err := db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	cfg.APIServer = apiServer

	servers, err := db.SuplaServers().List(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get supla servers: %w", err)
	}
	cfg.Servers = servers

	return cfg, nil
}

// ImportConfig replaces the active profile's Supla servers with those of a
// validated configuration file.
func (db *DB) ImportConfig(ctx context.Context, cfg *config.Config) error {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return ErrNoActiveProfile
		}
		return err
	}
	return db.SuplaServers().Replace(ctx, profile.ID, cfg.Servers)
}

// Package registry holds the authenticated Supla servers of one integration
// instance. A Registry is built once by Setup and only read afterwards,
// apart from the one-time resolution of each server's update interval
// during discovery.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/homai-supla/pkg/config"
	"github.com/urmzd/homai-supla/pkg/supla"
)

var (
	// ErrNotAuthenticated indicates a server rejected the configured access token.
	ErrNotAuthenticated = errors.New("server not authenticated")

	// ErrServerNotFound indicates no server is registered under a name.
	ErrServerNotFound = errors.New("server not registered")

	// ErrDuplicateServer indicates two configuration entries share an address.
	ErrDuplicateServer = errors.New("server configured more than once")
)

// ServerHandle is an authenticated server.
type ServerHandle struct {
	Name   string
	Client supla.API

	// ScanInterval is the configured interval, nil when it should be computed.
	ScanInterval *time.Duration

	// UpdateInterval is zero until discovery resolves it.
	UpdateInterval time.Duration
}

// Dialer creates the API client for a configured server.
type Dialer func(cfg config.ServerConfig) (supla.API, error)

// DefaultDialer creates an HTTP client for the Supla Cloud.
func DefaultDialer(cfg config.ServerConfig) (supla.API, error) {
	return supla.NewClient(cfg.Server, cfg.AccessToken)
}

// Registry maps server names to authenticated handles.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*ServerHandle
	order   []string
}

// Setup creates and authenticates a client for every configured server. Any
// failure aborts the whole setup: the error is logged and no registry is
// returned.
func Setup(ctx context.Context, servers []config.ServerConfig, dial Dialer) (*Registry, error) {
	if dial == nil {
		dial = DefaultDialer
	}

	r := &Registry{servers: make(map[string]*ServerHandle, len(servers))}

	for _, cfg := range servers {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.servers[cfg.Server]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateServer, cfg.Server)
		}

		client, err := dial(cfg)
		if err != nil {
			log.Error().Err(err).Str("server", cfg.Server).Msg("Server not configured. Failed to create API client")
			return nil, fmt.Errorf("server %s: %w", cfg.Server, err)
		}

		info, err := client.GetServerInfo(ctx)
		if err != nil {
			log.Error().Err(err).Str("server", cfg.Server).Msg("Server not configured. Error on Supla API access")
			return nil, fmt.Errorf("server %s: %w", cfg.Server, err)
		}
		if !info.Authenticated {
			log.Error().Str("server", cfg.Server).Interface("response", info).Msg("Server not configured. API call returned unauthenticated")
			return nil, fmt.Errorf("%w: %s", ErrNotAuthenticated, cfg.Server)
		}

		r.servers[cfg.Server] = &ServerHandle{
			Name:         cfg.Server,
			Client:       client,
			ScanInterval: cfg.ScanInterval,
		}
		r.order = append(r.order, cfg.Server)

		log.Info().Str("server", cfg.Server).Msg("Supla server authenticated")
	}

	return r, nil
}

// Names returns the registered server names in configuration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered servers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Server returns a copy of the handle registered under name.
func (r *Registry) Server(name string) (ServerHandle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.servers[name]
	if !ok {
		return ServerHandle{}, fmt.Errorf("%w: %s", ErrServerNotFound, name)
	}
	return *h, nil
}

// Client returns the API client registered under name.
func (r *Registry) Client(name string) (supla.API, error) {
	h, err := r.Server(name)
	if err != nil {
		return nil, err
	}
	return h.Client, nil
}

// ResolveUpdateInterval records the interval discovery computed for a server.
func (r *Registry) ResolveUpdateInterval(name string, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.servers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrServerNotFound, name)
	}
	h.UpdateInterval = d
	return nil
}

// Servers returns copies of all handles sorted by name.
func (r *Registry) Servers() []ServerHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ServerHandle, 0, len(r.servers))
	for _, h := range r.servers {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

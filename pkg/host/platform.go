// Package host is the in-process host platform: it loads discovered
// channels as entities, polls them, and serves them to the front ends
// through device.Controller.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/homai-supla/pkg/device"
	"github.com/urmzd/homai-supla/pkg/device/schema"
	"github.com/urmzd/homai-supla/pkg/discovery"
	"github.com/urmzd/homai-supla/pkg/entity"
	"github.com/urmzd/homai-supla/pkg/registry"
)

var (
	// ErrDuplicateEntity indicates an entity with the same unique ID is already loaded.
	ErrDuplicateEntity = errors.New("entity already loaded")

	// ErrUnknownCategory indicates no factory exists for a category.
	ErrUnknownCategory = errors.New("unknown entity category")

	// ErrPlatformLoaded indicates a category was loaded twice.
	ErrPlatformLoaded = errors.New("platform already loaded")
)

// Factory creates an entity for a record of its category.
type Factory func(rec entity.ChannelRecord, servers entity.ServerLookup) (entity.Entity, error)

// Platform holds the loaded entities. It implements discovery.Loader and
// device.Controller.
type Platform struct {
	registry  *registry.Registry
	validator *schema.Validator
	factories map[entity.Category]Factory
	tick      time.Duration

	mu       sync.RWMutex
	entities map[string]entity.Entity
	order    []string
	loaded   map[entity.Category]bool

	cancel context.CancelFunc
	done   chan struct{}
}

var (
	_ discovery.Loader  = (*Platform)(nil)
	_ device.Controller = (*Platform)(nil)
)

// NewPlatform creates a platform for the servers in reg.
func NewPlatform(reg *registry.Registry, validator *schema.Validator) *Platform {
	if validator == nil {
		validator = schema.NewValidator()
	}
	return &Platform{
		registry:  reg,
		validator: validator,
		factories: map[entity.Category]Factory{
			entity.CategoryCover:  entity.New,
			entity.CategorySwitch: entity.New,
		},
		tick:     discovery.ScanInterval,
		entities: make(map[string]entity.Entity),
		loaded:   make(map[entity.Category]bool),
	}
}

// LoadPlatform creates and registers the entities of one category.
func (p *Platform) LoadPlatform(ctx context.Context, category entity.Category, source string, records []entity.ChannelRecord, hostConfig any) error {
	factory, ok := p.factories[category]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded[category] {
		return fmt.Errorf("%w: %s", ErrPlatformLoaded, category)
	}

	created := make([]entity.Entity, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		e, err := factory(rec, p.registry)
		if err != nil {
			log.Warn().Err(err).Int("channel_id", rec.Channel.ID).Str("server", rec.ServerName).Msg("Skipping channel")
			continue
		}
		if e.Category() != category {
			log.Warn().Str("entity", e.UniqueID()).Str("category", string(e.Category())).Msg("Entity does not belong to platform")
			continue
		}
		if err := p.validator.Check(e.StateSchema()); err != nil {
			return fmt.Errorf("entity %s: %w", e.UniqueID(), err)
		}
		if _, dup := p.entities[e.UniqueID()]; dup || seen[e.UniqueID()] {
			return fmt.Errorf("%w: %s", ErrDuplicateEntity, e.UniqueID())
		}
		seen[e.UniqueID()] = true
		created = append(created, e)
	}

	for _, e := range created {
		p.entities[e.UniqueID()] = e
		p.order = append(p.order, e.UniqueID())
	}
	p.loaded[category] = true

	log.Info().
		Str("category", string(category)).
		Str("source", source).
		Int("entities", len(created)).
		Msg("Platform loaded")

	return nil
}

// Entities returns the loaded entities in load order.
func (p *Platform) Entities() []entity.Entity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]entity.Entity, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.entities[id])
	}
	return out
}

func (p *Platform) entity(id string) (entity.Entity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entities[id]
	if !ok {
		return nil, device.ErrNotFound
	}
	return e, nil
}

// PollOnce asks every entity to update. Entities skip the call while their
// throttle window is open. It returns the number of failed updates.
func (p *Platform) PollOnce(ctx context.Context) int {
	failed := 0
	for _, e := range p.Entities() {
		if err := e.Update(ctx); err != nil {
			failed++
			log.Warn().Err(err).Str("entity", e.UniqueID()).Msg("Failed to update entity")
		}
	}
	return failed
}

// Start polls entities every base tick until ctx is done or Close is called.
func (p *Platform) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.tick)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.PollOnce(ctx)
			}
		}
	}()

	log.Info().Dur("tick", p.tick).Int("entities", len(p.Entities())).Msg("Entity polling started")
}

// Close stops polling.
func (p *Platform) Close() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}

func (p *Platform) IsConnected() bool {
	return p.registry != nil && p.registry.Len() > 0
}

func (p *Platform) ListDevices(ctx context.Context) ([]device.Device, error) {
	entities := p.Entities()
	out := make([]device.Device, 0, len(entities))
	for _, e := range entities {
		out = append(out, toDevice(e))
	}
	return out, nil
}

func (p *Platform) GetDevice(ctx context.Context, id string) (*device.Device, error) {
	e, err := p.entity(id)
	if err != nil {
		return nil, err
	}
	d := toDevice(e)
	return &d, nil
}

func (p *Platform) GetDeviceState(ctx context.Context, id string) (device.DeviceState, error) {
	e, err := p.entity(id)
	if err != nil {
		return nil, err
	}
	return e.State(), nil
}

func (p *Platform) SetDeviceState(ctx context.Context, id string, state map[string]any) (device.DeviceState, error) {
	e, err := p.entity(id)
	if err != nil {
		return nil, err
	}
	if err := p.validator.Validate(e.StateSchema(), state); err != nil {
		return nil, fmt.Errorf("%w: %v", device.ErrValidation, err)
	}
	if err := e.Apply(ctx, state); err != nil {
		return nil, err
	}
	return e.State(), nil
}

func (p *Platform) RefreshDevice(ctx context.Context, id string) (device.DeviceState, error) {
	e, err := p.entity(id)
	if err != nil {
		return nil, err
	}
	if err := e.Update(ctx); err != nil {
		return nil, err
	}
	return e.State(), nil
}

func (p *Platform) ExecuteAction(ctx context.Context, id, action string, params map[string]any) error {
	e, err := p.entity(id)
	if err != nil {
		return err
	}
	return e.Action(ctx, action, params)
}

func (p *Platform) ListServers(ctx context.Context) ([]device.ServerInfo, error) {
	if p.registry == nil {
		return []device.ServerInfo{}, nil
	}

	counts := make(map[string]int)
	for _, e := range p.Entities() {
		counts[e.ServerName()]++
	}

	handles := p.registry.Servers()
	out := make([]device.ServerInfo, 0, len(handles))
	for _, h := range handles {
		out = append(out, device.ServerInfo{
			Name:           h.Name,
			UpdateInterval: h.UpdateInterval,
			Entities:       counts[h.Name],
		})
	}
	return out, nil
}

func toDevice(e entity.Entity) device.Device {
	return device.Device{
		ID:             e.UniqueID(),
		Name:           e.Name(),
		Type:           string(e.Category()),
		Class:          e.Class(),
		Protocol:       device.ProtocolSupla,
		Server:         e.ServerName(),
		ChannelID:      e.ChannelID(),
		Function:       string(e.Function()),
		Available:      e.Available(),
		UpdateInterval: e.UpdateInterval(),
		StateSchema:    e.StateSchema(),
	}
}

// Package entity adapts Supla channels to host entities.
package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/homai-supla/pkg/supla"
)

// ServerLookup resolves a server name to its API client.
type ServerLookup interface {
	Client(name string) (supla.API, error)
}

// Entity is the contract the host platform polls and controls.
type Entity interface {
	UniqueID() string
	Name() string
	Category() Category
	Class() string
	ServerName() string
	ChannelID() int
	Function() supla.Function
	UpdateInterval() time.Duration
	Available() bool

	// Update refreshes the channel state unless the throttle window is open.
	Update(ctx context.Context) error

	// Action forwards an action verbatim to the channel.
	Action(ctx context.Context, action string, params map[string]any) error

	// State returns the entity state derived from the last fetched record.
	State() map[string]any

	// StateSchema returns the JSON Schema of the payload accepted by Apply.
	StateSchema() json.RawMessage

	// Apply performs a validated state change.
	Apply(ctx context.Context, state map[string]any) error
}

// Channel is the base adapter shared by all entity kinds. The identity and
// function are captured once; the record is replaced on every refresh.
type Channel struct {
	servers    ServerLookup
	id         int
	uniqueID   string
	function   supla.Function
	serverName string
	throttle   *Throttle

	mu     sync.RWMutex
	record *ChannelRecord
}

// NewChannel creates the adapter for a discovered channel.
func NewChannel(rec ChannelRecord, servers ServerLookup) (*Channel, error) {
	uid, err := UniqueID(rec.Channel)
	if err != nil {
		return nil, err
	}
	r := rec
	return &Channel{
		servers:    servers,
		id:         rec.Channel.ID,
		uniqueID:   uid,
		function:   rec.Channel.FunctionName(),
		serverName: rec.ServerName,
		throttle:   NewThrottle(rec.UpdateInterval),
		record:     &r,
	}, nil
}

func (c *Channel) UniqueID() string { return c.uniqueID }

func (c *Channel) ServerName() string { return c.serverName }

func (c *Channel) ChannelID() int { return c.id }

func (c *Channel) Function() supla.Function { return c.function }

func (c *Channel) UpdateInterval() time.Duration { return c.throttle.Interval() }

// Name returns the channel caption; it is empty when none was set.
func (c *Channel) Name() string {
	rec := c.Record()
	if rec == nil {
		return ""
	}
	return rec.Channel.Caption
}

// Record returns the last fetched record.
func (c *Channel) Record() *ChannelRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.record
}

// channelState returns the state sub-record, or nil.
func (c *Channel) channelState() *supla.ChannelState {
	rec := c.Record()
	if rec == nil {
		return nil
	}
	return rec.Channel.State
}

// Available is true only when the last state reports the channel connected.
func (c *Channel) Available() bool {
	rec := c.Record()
	if rec == nil {
		return false
	}
	state := rec.Channel.State
	if state == nil || state.Connected == nil {
		return false
	}
	return *state.Connected
}

func (c *Channel) server() (supla.API, error) {
	return c.servers.Client(c.serverName)
}

func (c *Channel) Update(ctx context.Context) error {
	_, err := c.throttle.Do(func() error {
		log.Debug().Int("channel_id", c.id).Str("server", c.serverName).Msg("Updating Supla channel")

		api, err := c.server()
		if err != nil {
			return err
		}
		ch, err := api.GetChannel(ctx, c.id, supla.IncludeConnected, supla.IncludeState)
		if err != nil {
			return fmt.Errorf("refresh channel %d: %w", c.id, err)
		}

		rec := NewChannelRecord(*ch, c.serverName, c.throttle.Interval())
		c.mu.Lock()
		c.record = &rec
		c.mu.Unlock()
		return nil
	})
	return err
}

func (c *Channel) Action(ctx context.Context, action string, params map[string]any) error {
	log.Debug().Str("action", action).Int("channel_id", c.id).Interface("params", params).Msg("Executing action")

	api, err := c.server()
	if err != nil {
		return err
	}
	return api.ExecuteAction(ctx, c.id, action, params)
}

// baseState holds the fields common to every entity state.
func (c *Channel) baseState() map[string]any {
	return map[string]any{
		"available": c.Available(),
	}
}

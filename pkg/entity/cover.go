package entity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urmzd/homai-supla/pkg/device"
	"github.com/urmzd/homai-supla/pkg/supla"
)

// Cover actions accepted by Apply.
const (
	CoverOpen   = "open"
	CoverClose  = "close"
	CoverStop   = "stop"
	CoverToggle = "toggle"
)

var rollerShutterSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["open", "close", "stop"]},
		"position": {"type": "integer", "minimum": 0, "maximum": 100}
	},
	"minProperties": 1,
	"maxProperties": 1,
	"additionalProperties": false
}`)

var gateSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"action": {"type": "string", "enum": ["open", "close", "stop", "toggle"]}
	},
	"required": ["action"],
	"additionalProperties": false
}`)

// RollerShutter is a cover whose position is reported as percent shut.
type RollerShutter struct {
	*Channel
}

// NewRollerShutter creates a roller shutter entity.
func NewRollerShutter(rec ChannelRecord, servers ServerLookup) (*RollerShutter, error) {
	ch, err := NewChannel(rec, servers)
	if err != nil {
		return nil, err
	}
	return &RollerShutter{Channel: ch}, nil
}

func (r *RollerShutter) Category() Category { return CategoryCover }

func (r *RollerShutter) Class() string { return "shutter" }

func (r *RollerShutter) StateSchema() json.RawMessage { return rollerShutterSchema }

// Position returns the open percentage: 100 is fully open.
func (r *RollerShutter) Position() (int, bool) {
	state := r.channelState()
	if state == nil || state.Shut == nil {
		return 0, false
	}
	return 100 - *state.Shut, true
}

// IsClosed reports whether the shutter is fully closed; known is false when
// no position was reported.
func (r *RollerShutter) IsClosed() (closed, known bool) {
	pos, ok := r.Position()
	if !ok {
		return false, false
	}
	return pos == 0, true
}

func (r *RollerShutter) Open(ctx context.Context) error {
	return r.Action(ctx, supla.ActionReveal, nil)
}

func (r *RollerShutter) Close(ctx context.Context) error {
	return r.Action(ctx, supla.ActionShut, nil)
}

func (r *RollerShutter) Stop(ctx context.Context) error {
	return r.Action(ctx, supla.ActionStop, nil)
}

// SetPosition moves the shutter to the given open percentage.
func (r *RollerShutter) SetPosition(ctx context.Context, position int) error {
	return r.Action(ctx, supla.ActionReveal, map[string]any{"percentage": position})
}

func (r *RollerShutter) State() map[string]any {
	s := r.baseState()
	if pos, ok := r.Position(); ok {
		s["position"] = pos
		s["closed"] = pos == 0
	}
	return s
}

func (r *RollerShutter) Apply(ctx context.Context, state map[string]any) error {
	if pos, ok := state["position"]; ok {
		p, err := intValue(pos)
		if err != nil {
			return err
		}
		return r.SetPosition(ctx, p)
	}

	switch state["action"] {
	case CoverOpen:
		return r.Open(ctx)
	case CoverClose:
		return r.Close(ctx)
	case CoverStop:
		return r.Stop(ctx)
	}
	return fmt.Errorf("%w: roller shutter action %v", device.ErrUnsupported, state["action"])
}

// Gate is a cover driven by a single open/close impulse. Its closed state
// comes from the channel's "hi" sensor.
type Gate struct {
	*Channel
}

// NewGate creates a gate or garage door entity.
func NewGate(rec ChannelRecord, servers ServerLookup) (*Gate, error) {
	ch, err := NewChannel(rec, servers)
	if err != nil {
		return nil, err
	}
	return &Gate{Channel: ch}, nil
}

func (g *Gate) Category() Category { return CategoryCover }

func (g *Gate) Class() string { return "garage" }

func (g *Gate) StateSchema() json.RawMessage { return gateSchema }

// IsClosed reports the gate sensor; known is false without a sensor reading.
func (g *Gate) IsClosed() (closed, known bool) {
	state := g.channelState()
	if state == nil || state.Hi == nil {
		return false, false
	}
	return *state.Hi, true
}

// Open sends an impulse only when the gate is known to be closed.
func (g *Gate) Open(ctx context.Context) error {
	if closed, known := g.IsClosed(); known && closed {
		return g.Action(ctx, supla.ActionOpenClose, nil)
	}
	return nil
}

// Close sends an impulse unless the gate is known to be closed.
func (g *Gate) Close(ctx context.Context) error {
	if closed, known := g.IsClosed(); !(known && closed) {
		return g.Action(ctx, supla.ActionOpenClose, nil)
	}
	return nil
}

func (g *Gate) Stop(ctx context.Context) error {
	return g.Action(ctx, supla.ActionOpenClose, nil)
}

func (g *Gate) Toggle(ctx context.Context) error {
	return g.Action(ctx, supla.ActionOpenClose, nil)
}

func (g *Gate) State() map[string]any {
	s := g.baseState()
	if closed, ok := g.IsClosed(); ok {
		s["closed"] = closed
	}
	return s
}

func (g *Gate) Apply(ctx context.Context, state map[string]any) error {
	switch state["action"] {
	case CoverOpen:
		return g.Open(ctx)
	case CoverClose:
		return g.Close(ctx)
	case CoverStop:
		return g.Stop(ctx)
	case CoverToggle:
		return g.Toggle(ctx)
	}
	return fmt.Errorf("%w: gate action %v", device.ErrUnsupported, state["action"])
}

func intValue(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	}
	return 0, fmt.Errorf("%w: not a number: %v", device.ErrValidation, v)
}

package entity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urmzd/homai-supla/pkg/device"
	"github.com/urmzd/homai-supla/pkg/supla"
)

var switchSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"state": {"type": "string", "enum": ["ON", "OFF"]}
	},
	"required": ["state"],
	"additionalProperties": false
}`)

// Switch is an on/off channel such as a light or power switch.
type Switch struct {
	*Channel
}

// NewSwitch creates a switch entity.
func NewSwitch(rec ChannelRecord, servers ServerLookup) (*Switch, error) {
	ch, err := NewChannel(rec, servers)
	if err != nil {
		return nil, err
	}
	return &Switch{Channel: ch}, nil
}

func (s *Switch) Category() Category { return CategorySwitch }

func (s *Switch) Class() string {
	if s.Function() == supla.FunctionPowerSwitch {
		return "outlet"
	}
	return "switch"
}

func (s *Switch) StateSchema() json.RawMessage { return switchSchema }

// IsOn is false when no state was reported.
func (s *Switch) IsOn() bool {
	state := s.channelState()
	if state == nil || state.On == nil {
		return false
	}
	return *state.On
}

func (s *Switch) TurnOn(ctx context.Context) error {
	return s.Action(ctx, supla.ActionTurnOn, nil)
}

func (s *Switch) TurnOff(ctx context.Context) error {
	return s.Action(ctx, supla.ActionTurnOff, nil)
}

func (s *Switch) State() map[string]any {
	st := s.baseState()
	st["on"] = s.IsOn()
	if s.IsOn() {
		st["state"] = "ON"
	} else {
		st["state"] = "OFF"
	}
	return st
}

func (s *Switch) Apply(ctx context.Context, state map[string]any) error {
	switch state["state"] {
	case "ON":
		return s.TurnOn(ctx)
	case "OFF":
		return s.TurnOff(ctx)
	}
	return fmt.Errorf("%w: switch state %v", device.ErrUnsupported, state["state"])
}

package device

import (
	"encoding/json"
	"time"
)

// Device is a host entity backed by a Supla channel.
type Device struct {
	ID             string          `json:"id"`              // Entity unique id (supla-<guid>-<channel number>)
	Name           string          `json:"name"`            // Channel caption
	Type           string          `json:"type"`            // Entity category (cover, switch)
	Class          string          `json:"class,omitempty"` // Device class within the category (shutter, garage)
	Protocol       string          `json:"protocol"`        // Integration source tag
	Server         string          `json:"server"`          // Supla server the channel belongs to
	ChannelID      int             `json:"channel_id"`      // Supla channel id
	Function       string          `json:"function"`        // Supla channel function
	Available      bool            `json:"available"`       // Channel reports connected
	UpdateInterval time.Duration   `json:"-"`               // Minimum time between refreshes
	StateSchema    json.RawMessage `json:"state_schema"`    // JSON Schema for settable state
}

// DeviceState represents the current state of a device as a dynamic map.
type DeviceState map[string]any

// ServerInfo describes a registered Supla server.
type ServerInfo struct {
	Name           string        `json:"name"`
	UpdateInterval time.Duration `json:"-"`
	Entities       int           `json:"entities"`
}

// ProtocolSupla is the source tag of entities created by this integration.
const ProtocolSupla = "supla"

// Device type constants
const (
	DeviceTypeCover  = "cover"
	DeviceTypeSwitch = "switch"
)

// MarshalJSON encodes the update interval as update_interval_seconds.
func (d Device) MarshalJSON() ([]byte, error) {
	type plain Device
	return json.Marshal(struct {
		plain
		UpdateIntervalSeconds float64 `json:"update_interval_seconds"`
	}{plain(d), d.UpdateInterval.Seconds()})
}

// MarshalJSON encodes the update interval as update_interval_seconds.
func (s ServerInfo) MarshalJSON() ([]byte, error) {
	type plain ServerInfo
	return json.Marshal(struct {
		plain
		UpdateIntervalSeconds float64 `json:"update_interval_seconds"`
	}{plain(s), s.UpdateInterval.Seconds()})
}

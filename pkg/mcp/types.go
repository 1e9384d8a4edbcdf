package mcp

import (
	"encoding/json"

	"github.com/urmzd/homai-supla/pkg/device"
)

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status      string `json:"status" jsonschema:"description=Overall health status (healthy or degraded)"`
	Integration string `json:"integration" jsonschema:"description=Integration setup status (set_up or not_set_up)"`
	Servers     int    `json:"servers" jsonschema:"description=Number of registered Supla servers"`
	Timestamp   string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Servers Tool ---

// ServerInfo represents a registered server in tool outputs
type ServerInfo struct {
	Name                  string  `json:"name" jsonschema:"description=Supla server address"`
	UpdateIntervalSeconds float64 `json:"update_interval_seconds" jsonschema:"description=Minimum seconds between refreshes of one channel"`
	Entities              int     `json:"entities" jsonschema:"description=Number of entities loaded from the server"`
}

// ListServersOutput is the output for the list_servers tool
type ListServersOutput struct {
	Servers []ServerInfo `json:"servers" jsonschema:"description=Registered Supla servers"`
	Count   int          `json:"count" jsonschema:"description=Total number of servers"`
}

// --- List Devices Tool ---

// ListDevicesInput is the input for the list_devices tool
type ListDevicesInput struct {
	Type string `json:"type,omitempty" jsonschema:"description=Only list entities of this type (cover or switch)"`
}

// ListDevicesOutput is the output for the list_devices tool
type ListDevicesOutput struct {
	Devices []DeviceInfo `json:"devices" jsonschema:"description=List of entities"`
	Count   int          `json:"count" jsonschema:"description=Total number of entities"`
}

// DeviceInfo represents an entity in tool outputs
type DeviceInfo struct {
	ID                    string          `json:"id" jsonschema:"description=Entity unique ID"`
	Name                  string          `json:"name" jsonschema:"description=Channel caption"`
	Type                  string          `json:"type" jsonschema:"description=Entity type (cover or switch)"`
	Class                 string          `json:"class,omitempty" jsonschema:"description=Device class (shutter, garage, outlet)"`
	Server                string          `json:"server" jsonschema:"description=Supla server the channel belongs to"`
	ChannelID             int             `json:"channel_id" jsonschema:"description=Supla channel ID"`
	Function              string          `json:"function" jsonschema:"description=Supla channel function"`
	Available             bool            `json:"available" jsonschema:"description=Whether the channel reports connected"`
	UpdateIntervalSeconds float64         `json:"update_interval_seconds" jsonschema:"description=Minimum seconds between refreshes"`
	StateSchema           json.RawMessage `json:"state_schema,omitempty" jsonschema:"description=JSON Schema for settable state"`
	State                 map[string]any  `json:"state,omitempty" jsonschema:"description=Last known state"`
}

// --- Get Device Tool ---

// GetDeviceInput is the input for the get_device tool
type GetDeviceInput struct {
	ID string `json:"id" jsonschema:"required,description=Entity unique ID"`
}

// GetDeviceOutput is the output for the get_device tool
type GetDeviceOutput struct {
	Device DeviceInfo `json:"device" jsonschema:"description=Entity information"`
}

// --- State Tools ---

// StateOutput is the output of get_device_state, set_device_state,
// refresh_device and the convenience tools
type StateOutput struct {
	DeviceID string         `json:"device_id" jsonschema:"description=Entity unique ID"`
	State    map[string]any `json:"state" jsonschema:"description=Entity state"`
}

// SetDeviceStateInput is the input for the set_device_state tool
type SetDeviceStateInput struct {
	ID    string         `json:"id" jsonschema:"required,description=Entity unique ID"`
	State map[string]any `json:"state" jsonschema:"required,description=State properties to set (validated against the entity schema)"`
}

// --- Execute Action Tool ---

// ExecuteActionInput is the input for the execute_action tool
type ExecuteActionInput struct {
	ID         string         `json:"id" jsonschema:"required,description=Entity unique ID"`
	Action     string         `json:"action" jsonschema:"required,description=Supla action name"`
	Parameters map[string]any `json:"parameters,omitempty" jsonschema:"description=Action parameters"`
}

// ExecuteActionOutput is the output for the execute_action tool
type ExecuteActionOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the server accepted the action"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Helper conversions ---

// DeviceToInfo converts a device.Device to DeviceInfo
func DeviceToInfo(d *device.Device) DeviceInfo {
	return DeviceInfo{
		ID:                    d.ID,
		Name:                  d.Name,
		Type:                  d.Type,
		Class:                 d.Class,
		Server:                d.Server,
		ChannelID:             d.ChannelID,
		Function:              d.Function,
		Available:             d.Available,
		UpdateIntervalSeconds: d.UpdateInterval.Seconds(),
		StateSchema:           d.StateSchema,
	}
}

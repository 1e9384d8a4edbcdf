package types

import (
	"encoding/json"
	"time"
)

// --- Request DTOs ---

// ActionRequest is the request body for POST /devices/:id/action
type ActionRequest struct {
	Action     string         `json:"action" binding:"required"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status      string    `json:"status"`
	Integration string    `json:"integration"`
	Servers     int       `json:"servers"`
	Timestamp   time.Time `json:"timestamp"`
}

// ListDevicesResponse is returned from GET /devices
type ListDevicesResponse struct {
	Devices []DeviceWithState `json:"devices"`
	Count   int               `json:"count"`
}

// DeviceWithState combines entity info with its current state
type DeviceWithState struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Type                  string          `json:"type"`
	Class                 string          `json:"class,omitempty"`
	Server                string          `json:"server"`
	ChannelID             int             `json:"channel_id"`
	Function              string          `json:"function"`
	Available             bool            `json:"available"`
	UpdateIntervalSeconds float64         `json:"update_interval_seconds"`
	StateSchema           json.RawMessage `json:"state_schema,omitempty"`
	State                 map[string]any  `json:"state,omitempty"`
}

// DeviceResponse is returned from GET /devices/:id
type DeviceResponse struct {
	Device DeviceWithState `json:"device"`
}

// StateResponse is returned from GET/POST /devices/:id/state
type StateResponse struct {
	Device    string         `json:"device"`
	State     map[string]any `json:"state"`
	Timestamp time.Time      `json:"timestamp"`
}

// ServerResponse describes a registered Supla server
type ServerResponse struct {
	Name                  string  `json:"name"`
	UpdateIntervalSeconds float64 `json:"update_interval_seconds"`
	Entities              int     `json:"entities"`
}

// ListServersResponse is returned from GET /servers
type ListServersResponse struct {
	Servers []ServerResponse `json:"servers"`
	Count   int              `json:"count"`
}

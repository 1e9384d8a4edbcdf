package device

import "context"

// Controller is the host's view of the loaded entities. The REST and MCP
// front ends are written against it.
type Controller interface {
	// ListDevices returns all loaded entities
	ListDevices(ctx context.Context) ([]Device, error)

	// GetDevice returns a single entity by unique ID
	GetDevice(ctx context.Context, id string) (*Device, error)

	// GetDeviceState returns the last fetched state of an entity
	GetDeviceState(ctx context.Context, id string) (DeviceState, error)

	// SetDeviceState validates state against the entity's schema and applies it
	SetDeviceState(ctx context.Context, id string, state map[string]any) (DeviceState, error)

	// RefreshDevice refreshes an entity, subject to its throttle
	RefreshDevice(ctx context.Context, id string) (DeviceState, error)

	// ExecuteAction forwards a raw action to the entity's channel
	ExecuteAction(ctx context.Context, id, action string, params map[string]any) error

	// ListServers returns the registered servers
	ListServers(ctx context.Context) ([]ServerInfo, error)

	// IsConnected returns true if at least one server is registered
	IsConnected() bool

	// Close stops background polling
	Close()
}

package device

import "context"

// NullController is used when integration setup failed. The front ends keep
// running and report the integration as not set up.
type NullController struct{}

// NewNullController creates a new NullController.
func NewNullController() *NullController {
	return &NullController{}
}

func (c *NullController) ListDevices(ctx context.Context) ([]Device, error) {
	return []Device{}, nil
}

func (c *NullController) GetDevice(ctx context.Context, id string) (*Device, error) {
	return nil, ErrNotFound
}

func (c *NullController) GetDeviceState(ctx context.Context, id string) (DeviceState, error) {
	return nil, ErrNotConnected
}

func (c *NullController) SetDeviceState(ctx context.Context, id string, state map[string]any) (DeviceState, error) {
	return nil, ErrNotConnected
}

func (c *NullController) RefreshDevice(ctx context.Context, id string) (DeviceState, error) {
	return nil, ErrNotConnected
}

func (c *NullController) ExecuteAction(ctx context.Context, id, action string, params map[string]any) error {
	return ErrNotConnected
}

func (c *NullController) ListServers(ctx context.Context) ([]ServerInfo, error) {
	return []ServerInfo{}, nil
}

func (c *NullController) IsConnected() bool {
	return false
}

func (c *NullController) Close() {}

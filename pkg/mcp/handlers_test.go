package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/homai-supla/pkg/device"
)

type fakeController struct {
	device.NullController
	sets    []map[string]any
	actions []string
}

func (f *fakeController) ListDevices(ctx context.Context) ([]device.Device, error) {
	return []device.Device{
		{ID: "supla-abc-0", Type: device.DeviceTypeSwitch},
		{ID: "supla-abc-1", Type: device.DeviceTypeCover},
	}, nil
}

func (f *fakeController) GetDeviceState(ctx context.Context, id string) (device.DeviceState, error) {
	return device.DeviceState{"available": true}, nil
}

func (f *fakeController) SetDeviceState(ctx context.Context, id string, state map[string]any) (device.DeviceState, error) {
	f.sets = append(f.sets, state)
	return device.DeviceState(state), nil
}

func (f *fakeController) ExecuteAction(ctx context.Context, id, action string, params map[string]any) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeController) ListServers(ctx context.Context) ([]device.ServerInfo, error) {
	return []device.ServerInfo{{Name: "svr1.supla.org", UpdateInterval: 10 * time.Second, Entities: 2}}, nil
}

func (f *fakeController) IsConnected() bool { return true }

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return tc.Text
}

func TestHandleGetHealth(t *testing.T) {
	s := NewServer(&fakeController{})
	res, err := s.handleGetHealth(context.Background(), call(nil))
	if err != nil {
		t.Fatal(err)
	}

	var out GetHealthOutput
	if err := json.Unmarshal([]byte(text(t, res)), &out); err != nil {
		t.Fatal(err)
	}
	if out.Integration != "set_up" || out.Servers != 1 {
		t.Errorf("unexpected health %+v", out)
	}
}

func TestHandleListDevices_Filter(t *testing.T) {
	s := NewServer(&fakeController{})
	res, err := s.handleListDevices(context.Background(), call(map[string]any{"type": "cover"}))
	if err != nil {
		t.Fatal(err)
	}

	var out ListDevicesOutput
	if err := json.Unmarshal([]byte(text(t, res)), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Devices[0].ID != "supla-abc-1" {
		t.Errorf("unexpected devices %+v", out)
	}
}

func TestHandleConvenienceTools(t *testing.T) {
	tests := []struct {
		name    string
		handler func(*Server, context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]any
		key     string
		want    any
	}{
		{"turn_on", (*Server).handleTurnOn, map[string]any{"id": "x"}, "state", "ON"},
		{"turn_off", (*Server).handleTurnOff, map[string]any{"id": "x"}, "state", "OFF"},
		{"open_cover", (*Server).handleOpenCover, map[string]any{"id": "x"}, "action", "open"},
		{"close_cover", (*Server).handleCloseCover, map[string]any{"id": "x"}, "action", "close"},
		{"stop_cover", (*Server).handleStopCover, map[string]any{"id": "x"}, "action", "stop"},
		{"set_cover_position", (*Server).handleSetCoverPosition, map[string]any{"id": "x", "position": float64(30)}, "position", float64(30)},
		{"set_device_state nested", (*Server).handleSetDeviceState, map[string]any{"id": "x", "state": map[string]any{"state": "ON"}}, "state", "ON"},
		{"set_device_state flat", (*Server).handleSetDeviceState, map[string]any{"id": "x", "action": "stop"}, "action", "stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeController{}
			s := NewServer(fake)
			res, err := tt.handler(s, context.Background(), call(tt.args))
			if err != nil {
				t.Fatal(err)
			}
			if res.IsError {
				t.Fatalf("unexpected tool error: %s", text(t, res))
			}
			if len(fake.sets) != 1 || fake.sets[0][tt.key] != tt.want {
				t.Errorf("unexpected state %v", fake.sets)
			}
		})
	}
}

func TestHandleExecuteAction(t *testing.T) {
	fake := &fakeController{}
	s := NewServer(fake)

	res, err := s.handleExecuteAction(context.Background(), call(map[string]any{
		"id": "x", "action": "SHUT_PARTIALLY", "parameters": map[string]any{"percentage": float64(20)},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError || len(fake.actions) != 1 || fake.actions[0] != "SHUT_PARTIALLY" {
		t.Errorf("unexpected result %v, actions %v", res.IsError, fake.actions)
	}

	res, _ = s.handleExecuteAction(context.Background(), call(map[string]any{"id": "x"}))
	if !res.IsError {
		t.Error("expected error without action")
	}
}

func TestHandleErrorsOnNullController(t *testing.T) {
	s := NewServer(device.NewNullController())
	ctx := context.Background()

	res, _ := s.handleGetDevice(ctx, call(map[string]any{"id": "x"}))
	if !res.IsError {
		t.Error("expected get_device to fail")
	}
	res, _ = s.handleTurnOn(ctx, call(map[string]any{"id": "x"}))
	if !res.IsError {
		t.Error("expected turn_on to fail")
	}
	res, _ = s.handleRefreshDevice(ctx, call(map[string]any{}))
	if !res.IsError {
		t.Error("expected missing id to fail")
	}
}

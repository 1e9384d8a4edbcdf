package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/urmzd/homai-supla/pkg/api/types"
	"github.com/urmzd/homai-supla/pkg/device"
	"github.com/urmzd/homai-supla/pkg/supla"
)

type fakeController struct {
	devices   []device.Device
	states    map[string]device.DeviceState
	setErr    error
	actionErr error
	lastSet   map[string]any
	actions   []string
}

func (f *fakeController) find(id string) (*device.Device, error) {
	for i := range f.devices {
		if f.devices[i].ID == id {
			return &f.devices[i], nil
		}
	}
	return nil, device.ErrNotFound
}

func (f *fakeController) ListDevices(ctx context.Context) ([]device.Device, error) {
	return f.devices, nil
}

func (f *fakeController) GetDevice(ctx context.Context, id string) (*device.Device, error) {
	return f.find(id)
}

func (f *fakeController) GetDeviceState(ctx context.Context, id string) (device.DeviceState, error) {
	if _, err := f.find(id); err != nil {
		return nil, err
	}
	return f.states[id], nil
}

func (f *fakeController) SetDeviceState(ctx context.Context, id string, state map[string]any) (device.DeviceState, error) {
	if _, err := f.find(id); err != nil {
		return nil, err
	}
	if f.setErr != nil {
		return nil, f.setErr
	}
	f.lastSet = state
	return device.DeviceState{"state": state["state"]}, nil
}

func (f *fakeController) RefreshDevice(ctx context.Context, id string) (device.DeviceState, error) {
	return f.GetDeviceState(ctx, id)
}

func (f *fakeController) ExecuteAction(ctx context.Context, id, action string, params map[string]any) error {
	if _, err := f.find(id); err != nil {
		return err
	}
	if f.actionErr != nil {
		return f.actionErr
	}
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeController) ListServers(ctx context.Context) ([]device.ServerInfo, error) {
	return []device.ServerInfo{{Name: "svr1.supla.org", UpdateInterval: 40 * time.Second, Entities: len(f.devices)}}, nil
}

func (f *fakeController) IsConnected() bool { return true }

func (f *fakeController) Close() {}

func newFake() *fakeController {
	return &fakeController{
		devices: []device.Device{
			{ID: "supla-abc-0", Name: "Kitchen", Type: device.DeviceTypeSwitch, Server: "svr1.supla.org", ChannelID: 1, Function: "LIGHTSWITCH", Available: true, UpdateInterval: 40 * time.Second},
			{ID: "supla-abc-1", Name: "Blinds", Type: device.DeviceTypeCover, Class: "shutter", Server: "svr1.supla.org", ChannelID: 2, Function: "CONTROLLINGTHEROLLERSHUTTER", Available: true, UpdateInterval: 40 * time.Second},
		},
		states: map[string]device.DeviceState{
			"supla-abc-0": {"state": "OFF"},
			"supla-abc-1": {"position": 100},
		},
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := NewRouter(newFake()).Handler()

	w := do(t, h, http.MethodGet, "/api/v1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp types.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Integration != "set_up" || resp.Servers != 1 {
		t.Errorf("unexpected health %+v", resp)
	}

	w = do(t, NewRouter(device.NewNullController()).Handler(), http.MethodGet, "/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without servers, got %d", w.Code)
	}
}

func TestListDevices(t *testing.T) {
	h := NewRouter(newFake()).Handler()

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/devices", 2},
		{"/api/v1/devices?type=cover", 1},
		{"/api/v1/devices?type=climate", 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path, "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var resp types.ListDevicesResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Count != tt.want || len(resp.Devices) != tt.want {
				t.Errorf("expected %d devices, got %d", tt.want, resp.Count)
			}
		})
	}
}

func TestGetDevice(t *testing.T) {
	h := NewRouter(newFake()).Handler()

	w := do(t, h, http.MethodGet, "/api/v1/devices/supla-abc-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp types.DeviceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Device.Class != "shutter" || resp.Device.UpdateIntervalSeconds != 40 {
		t.Errorf("unexpected device %+v", resp.Device)
	}
	if resp.Device.State["position"] != float64(100) {
		t.Errorf("expected state to be included, got %v", resp.Device.State)
	}

	w = do(t, h, http.MethodGet, "/api/v1/devices/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSetState(t *testing.T) {
	fake := newFake()
	h := NewRouter(fake).Handler()

	w := do(t, h, http.MethodPost, "/api/v1/devices/supla-abc-0/state", `{"state":"ON"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if fake.lastSet["state"] != "ON" {
		t.Errorf("unexpected payload %v", fake.lastSet)
	}

	w = do(t, h, http.MethodPost, "/api/v1/devices/supla-abc-0/state", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestSetState_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", device.ErrValidation, http.StatusBadRequest},
		{"unsupported", device.ErrUnsupported, http.StatusBadRequest},
		{"not connected", device.ErrNotConnected, http.StatusServiceUnavailable},
		{"server", &supla.APIError{Method: "PATCH", Path: "/channels/1", StatusCode: 500}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			fake.setErr = tt.err
			w := do(t, NewRouter(fake).Handler(), http.MethodPost, "/api/v1/devices/supla-abc-0/state", `{"state":"ON"}`)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestAction(t *testing.T) {
	fake := newFake()
	h := NewRouter(fake).Handler()

	w := do(t, h, http.MethodPost, "/api/v1/devices/supla-abc-1/action", `{"action":"REVEAL_PARTIALLY","parameters":{"percentage":40}}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if len(fake.actions) != 1 || fake.actions[0] != "REVEAL_PARTIALLY" {
		t.Errorf("unexpected actions %v", fake.actions)
	}

	w = do(t, h, http.MethodPost, "/api/v1/devices/supla-abc-1/action", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without action, got %d", w.Code)
	}
}

func TestRefreshAndServers(t *testing.T) {
	h := NewRouter(newFake()).Handler()

	w := do(t, h, http.MethodPost, "/api/v1/devices/supla-abc-0/refresh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/v1/servers", "")
	var resp types.ListServersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Servers[0].UpdateIntervalSeconds != 40 || resp.Servers[0].Entities != 2 {
		t.Errorf("unexpected servers %+v", resp)
	}
}

package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urmzd/homai-supla/pkg/config"
	"github.com/urmzd/homai-supla/pkg/device"
	"github.com/urmzd/homai-supla/pkg/supla"
)

type fakeAPI struct {
	authenticated bool
}

func (f *fakeAPI) GetServerInfo(ctx context.Context) (*supla.ServerInfo, error) {
	return &supla.ServerInfo{Authenticated: f.authenticated}, nil
}

func (f *fakeAPI) ListChannels(ctx context.Context, include ...supla.Include) ([]supla.Channel, error) {
	return []supla.Channel{{
		ID:       7,
		Caption:  "Porch",
		Function: &supla.ChannelFunction{Name: supla.FunctionLightSwitch},
		IODevice: &supla.IODevice{GUIDString: "ABC"},
	}}, nil
}

func (f *fakeAPI) GetChannel(ctx context.Context, id int, include ...supla.Include) (*supla.Channel, error) {
	return nil, errors.New("offline")
}

func (f *fakeAPI) ExecuteAction(ctx context.Context, id int, action string, params map[string]any) error {
	return nil
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	doc := "supla:\n  servers:\n    - server: svr1.supla.org\n      access_token: secret\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStart_ImportsConfigAndLoadsEntities(t *testing.T) {
	if err := SetupLogging(io.Discard, "debug"); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	a, err := Start(context.Background(), Options{
		DBPath:     filepath.Join(dir, "homai-supla.db"),
		ConfigPath: writeConfig(t, dir),
		Dial: func(cfg config.ServerConfig) (supla.API, error) {
			return &fakeAPI{authenticated: true}, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if !a.Controller.IsConnected() {
		t.Fatal("expected integration to be set up")
	}
	devices, err := a.Controller.ListDevices(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 1 || devices[0].ID != "supla-abc-0" {
		t.Errorf("unexpected devices %+v", devices)
	}
	if len(a.Config.Servers) != 1 || a.Config.Servers[0].Server != "svr1.supla.org" {
		t.Errorf("unexpected servers %+v", a.Config.Servers)
	}
}

func TestStart_FallsBackOnAuthFailure(t *testing.T) {
	_ = SetupLogging(io.Discard, "info")
	dir := t.TempDir()

	a, err := Start(context.Background(), Options{
		DBPath:     filepath.Join(dir, "homai-supla.db"),
		ConfigPath: writeConfig(t, dir),
		Dial: func(cfg config.ServerConfig) (supla.API, error) {
			return &fakeAPI{authenticated: false}, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if _, ok := a.Controller.(*device.NullController); !ok {
		t.Errorf("expected null controller, got %T", a.Controller)
	}
}

func TestStart_NoServers(t *testing.T) {
	_ = SetupLogging(io.Discard, "info")

	a, err := Start(context.Background(), Options{DBPath: filepath.Join(t.TempDir(), "homai-supla.db")})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if a.Controller.IsConnected() {
		t.Error("no servers must leave the integration not set up")
	}
}

func TestStart_InvalidConfig(t *testing.T) {
	_ = SetupLogging(io.Discard, "info")
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("supla:\n  servers:\n    - server: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Start(context.Background(), Options{DBPath: filepath.Join(dir, "homai-supla.db"), ConfigPath: path})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSetupLogging_InvalidLevel(t *testing.T) {
	if err := SetupLogging(io.Discard, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStart_SelectsProfile(t *testing.T) {
	_ = SetupLogging(io.Discard, "info")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "homai-supla.db")
	dial := func(cfg config.ServerConfig) (supla.API, error) {
		return &fakeAPI{authenticated: true}, nil
	}

	a, err := Start(context.Background(), Options{DBPath: dbPath, Profile: "cabin", ConfigPath: writeConfig(t, dir), Dial: dial})
	if err != nil {
		t.Fatal(err)
	}
	if a.Config.Profile.Name != "cabin" || len(a.Config.Servers) != 1 {
		t.Errorf("unexpected config %+v", a.Config)
	}
	a.Close()

	// The default profile did not receive the imported servers
	a, err = Start(context.Background(), Options{DBPath: dbPath, Profile: "default", Dial: dial})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if a.Config.Profile.Name != "default" || len(a.Config.Servers) != 0 {
		t.Errorf("unexpected config %+v", a.Config)
	}
	if a.Controller.IsConnected() {
		t.Error("profile without servers must not be set up")
	}
}

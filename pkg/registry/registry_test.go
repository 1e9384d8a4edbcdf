package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/urmzd/homai-supla/pkg/config"
	"github.com/urmzd/homai-supla/pkg/supla"
)

type fakeAPI struct {
	info *supla.ServerInfo
	err  error
}

func (f *fakeAPI) GetServerInfo(ctx context.Context) (*supla.ServerInfo, error) {
	return f.info, f.err
}

func (f *fakeAPI) ListChannels(ctx context.Context, include ...supla.Include) ([]supla.Channel, error) {
	return nil, nil
}

func (f *fakeAPI) GetChannel(ctx context.Context, id int, include ...supla.Include) (*supla.Channel, error) {
	return nil, nil
}

func (f *fakeAPI) ExecuteAction(ctx context.Context, id int, action string, params map[string]any) error {
	return nil
}

func dialer(apis map[string]*fakeAPI) Dialer {
	return func(cfg config.ServerConfig) (supla.API, error) {
		return apis[cfg.Server], nil
	}
}

func authenticated() *fakeAPI {
	return &fakeAPI{info: &supla.ServerInfo{Authenticated: true}}
}

func TestSetup_RegistersServers(t *testing.T) {
	interval := 30 * time.Second
	servers := []config.ServerConfig{
		{Server: "a.supla.org", AccessToken: "ta"},
		{Server: "b.supla.org", AccessToken: "tb", ScanInterval: &interval},
	}
	apis := map[string]*fakeAPI{"a.supla.org": authenticated(), "b.supla.org": authenticated()}

	r, err := Setup(context.Background(), servers, dialer(apis))
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 servers, got %d", r.Len())
	}
	if names := r.Names(); names[0] != "a.supla.org" || names[1] != "b.supla.org" {
		t.Errorf("unexpected order %v", names)
	}

	h, err := r.Server("b.supla.org")
	if err != nil {
		t.Fatal(err)
	}
	if h.ScanInterval == nil || *h.ScanInterval != interval {
		t.Errorf("expected configured scan interval, got %v", h.ScanInterval)
	}
	if h.UpdateInterval != 0 {
		t.Errorf("expected unresolved update interval, got %v", h.UpdateInterval)
	}
}

func TestSetup_NotAuthenticatedAbortsAll(t *testing.T) {
	servers := []config.ServerConfig{
		{Server: "a.supla.org", AccessToken: "ta"},
		{Server: "b.supla.org", AccessToken: "tb"},
	}
	apis := map[string]*fakeAPI{
		"a.supla.org": authenticated(),
		"b.supla.org": {info: &supla.ServerInfo{Authenticated: false}},
	}

	r, err := Setup(context.Background(), servers, dialer(apis))
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if r != nil {
		t.Error("expected no registry after failed setup")
	}
}

func TestSetup_TransportErrorAbortsAll(t *testing.T) {
	transport := errors.New("dial tcp: no such host")
	servers := []config.ServerConfig{{Server: "a.supla.org", AccessToken: "ta"}}
	apis := map[string]*fakeAPI{"a.supla.org": {err: transport}}

	r, err := Setup(context.Background(), servers, dialer(apis))
	if !errors.Is(err, transport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if errors.Is(err, ErrNotAuthenticated) {
		t.Error("transport error must be distinct from ErrNotAuthenticated")
	}
	if r != nil {
		t.Error("expected no registry after failed setup")
	}
}

func TestSetup_DuplicateServer(t *testing.T) {
	servers := []config.ServerConfig{
		{Server: "a.supla.org", AccessToken: "t1"},
		{Server: "a.supla.org", AccessToken: "t2"},
	}
	apis := map[string]*fakeAPI{"a.supla.org": authenticated()}

	if _, err := Setup(context.Background(), servers, dialer(apis)); !errors.Is(err, ErrDuplicateServer) {
		t.Errorf("expected ErrDuplicateServer, got %v", err)
	}
}

func TestSetup_InvalidConfig(t *testing.T) {
	servers := []config.ServerConfig{{Server: "a.supla.org"}}

	if _, err := Setup(context.Background(), servers, dialer(nil)); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRegistry_LookupsAndResolve(t *testing.T) {
	servers := []config.ServerConfig{{Server: "a.supla.org", AccessToken: "ta"}}
	apis := map[string]*fakeAPI{"a.supla.org": authenticated()}

	r, err := Setup(context.Background(), servers, dialer(apis))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Client("missing"); !errors.Is(err, ErrServerNotFound) {
		t.Errorf("expected ErrServerNotFound, got %v", err)
	}
	if c, err := r.Client("a.supla.org"); err != nil || c == nil {
		t.Errorf("expected client, got %v, %v", c, err)
	}

	if err := r.ResolveUpdateInterval("a.supla.org", 40*time.Second); err != nil {
		t.Fatal(err)
	}
	if got := r.Servers()[0].UpdateInterval; got != 40*time.Second {
		t.Errorf("expected 40s, got %v", got)
	}
	if err := r.ResolveUpdateInterval("missing", time.Second); !errors.Is(err, ErrServerNotFound) {
		t.Errorf("expected ErrServerNotFound, got %v", err)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_Servers(t *testing.T) {
	cfg, err := Parse([]byte(`
homeassistant:
  name: Home
supla:
  servers:
    - server: svr1.supla.org
      access_token: token-a
    - server: svr2.supla.org
      access_token: token-b
      scan_interval: 30
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Servers) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(cfg.Servers))
	}
	if cfg.Servers[0].Server != "svr1.supla.org" || cfg.Servers[0].AccessToken != "token-a" {
		t.Errorf("unexpected first server %+v", cfg.Servers[0])
	}
	if cfg.Servers[0].ScanInterval != nil {
		t.Errorf("expected no scan interval, got %v", *cfg.Servers[0].ScanInterval)
	}
	if cfg.Servers[1].ScanInterval == nil || *cfg.Servers[1].ScanInterval != 30*time.Second {
		t.Errorf("expected 30s scan interval, got %v", cfg.Servers[1].ScanInterval)
	}
}

func TestParse_SingleServerMapping(t *testing.T) {
	cfg, err := Parse([]byte(`
supla:
  servers:
    server: svr1.supla.org
    access_token: token
    scan_interval: "00:01:30"
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Servers) != 1 {
		t.Fatalf("expected 1 server, got %d", len(cfg.Servers))
	}
	if got := *cfg.Servers[0].ScanInterval; got != 90*time.Second {
		t.Errorf("expected 90s, got %v", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing domain", "other: 1\n"},
		{"missing servers", "supla: {}\n"},
		{"missing token", "supla:\n  servers:\n    - server: a\n"},
		{"missing server", "supla:\n  servers:\n    - access_token: t\n"},
		{"empty token", "supla:\n  servers:\n    - server: a\n      access_token: ''\n"},
		{"unknown server key", "supla:\n  servers:\n    - server: a\n      access_token: t\n      port: 1\n"},
		{"negative interval", "supla:\n  servers:\n    - server: a\n      access_token: t\n      scan_interval: -5\n"},
		{"bad interval", "supla:\n  servers:\n    - server: a\n      access_token: t\n      scan_interval: soon\n"},
		{"not yaml", "supla: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in   any
		want time.Duration
	}{
		{float64(45), 45 * time.Second},
		{12, 12 * time.Second},
		{"30s", 30 * time.Second},
		{"2m", 2 * time.Minute},
		{"15", 15 * time.Second},
		{"01:00", time.Hour + 0},
		{"00:00:20", 20 * time.Second},
	}

	for _, tt := range tests {
		got, err := ParseInterval(tt.in)
		if err != nil {
			t.Errorf("ParseInterval(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseInterval(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "supla:\n  servers:\n    - server: svr1.supla.org\n      access_token: t\n"
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Servers) != 1 {
		t.Errorf("expected 1 server, got %d", len(cfg.Servers))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

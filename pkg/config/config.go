package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urmzd/homai-supla/pkg/device/schema"
	"gopkg.in/yaml.v3"
)

// Domain is the top-level key holding the integration's configuration.
const Domain = "supla"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the validated integration configuration.
type Config struct {
	Servers []ServerConfig
}

// ServerConfig describes a single Supla Cloud server.
type ServerConfig struct {
	// Server is the server address, e.g. "svr1.supla.org". It is also the
	// key under which the server is registered.
	Server string

	// AccessToken is a personal access token issued by the server.
	AccessToken string

	// ScanInterval overrides the computed polling interval when set.
	ScanInterval *time.Duration
}

// Validate checks the mandatory fields of a server entry.
func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.Server) == "" {
		return fmt.Errorf("%w: server is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(s.AccessToken) == "" {
		return fmt.Errorf("%w: access_token is required for server %s", ErrInvalidConfig, s.Server)
	}
	if s.ScanInterval != nil && *s.ScanInterval < 0 {
		return fmt.Errorf("%w: negative scan_interval for server %s", ErrInvalidConfig, s.Server)
	}
	return nil
}

type fileConfig struct {
	Supla struct {
		Servers []struct {
			Server       string `json:"server"`
			AccessToken  string `json:"access_token"`
			ScanInterval any    `json:"scan_interval"`
		} `json:"servers"`
	} `json:"supla"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse validates a YAML document and returns the integration configuration.
// Unknown top-level keys are ignored; a single server mapping is accepted in
// place of a list.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	doc, err := normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := schema.NewValidator().Validate(configSchema, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	ensureServerList(doc)

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	var fc fileConfig
	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := &Config{}
	for _, s := range fc.Supla.Servers {
		sc := ServerConfig{
			Server:      s.Server,
			AccessToken: s.AccessToken,
		}
		if s.ScanInterval != nil {
			d, err := ParseInterval(s.ScanInterval)
			if err != nil {
				return nil, fmt.Errorf("%w: server %s: %v", ErrInvalidConfig, s.Server, err)
			}
			sc.ScanInterval = &d
		}
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		cfg.Servers = append(cfg.Servers, sc)
	}
	return cfg, nil
}

// ParseInterval converts a scan interval value into a duration. Numbers are
// seconds; strings may be Go durations ("30s"), "HH:MM" or "HH:MM:SS", or a
// plain number of seconds.
func ParseInterval(v any) (time.Duration, error) {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return 0, fmt.Errorf("negative interval %v", t)
		}
		return time.Duration(t * float64(time.Second)), nil
	case int:
		return ParseInterval(float64(t))
	case string:
		return parseIntervalString(strings.TrimSpace(t))
	}
	return 0, fmt.Errorf("unsupported interval %v", v)
}

func parseIntervalString(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty interval")
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return 0, fmt.Errorf("invalid interval %q", s)
		}
		units := []time.Duration{time.Hour, time.Minute, time.Second}
		var d time.Duration
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid interval %q", s)
			}
			d += time.Duration(n) * units[i]
		}
		return d, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return ParseInterval(secs)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative interval %q", s)
	}
	return d, nil
}

func normalize(v map[string]any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func ensureServerList(doc map[string]any) {
	supla, ok := doc[Domain].(map[string]any)
	if !ok {
		return
	}
	if single, ok := supla["servers"].(map[string]any); ok {
		supla["servers"] = []any{single}
	}
}

package supla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// APIVersion is the Supla Cloud REST API version used by the client.
const APIVersion = "v2.3.0"

// API is the subset of the Supla Cloud API used by the integration.
type API interface {
	// GetServerInfo returns server metadata, including whether the
	// access token was accepted.
	GetServerInfo(ctx context.Context) (*ServerInfo, error)

	// ListChannels returns every channel visible to the access token.
	ListChannels(ctx context.Context, include ...Include) ([]Channel, error)

	// GetChannel returns a single channel.
	GetChannel(ctx context.Context, id int, include ...Include) (*Channel, error)

	// ExecuteAction runs an action on a channel.
	ExecuteAction(ctx context.Context, id int, action string, params map[string]any) error
}

// Client is an HTTP client for a single Supla Cloud server.
type Client struct {
	server  string
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the given server address and personal
// access token. The address is a host name ("svr1.supla.org"); a full URL
// with scheme is used as given.
func NewClient(server, token string, opts ...Option) (*Client, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return nil, ErrInvalidServer
	}

	base := server
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/") + "/api/" + APIVersion

	c := &Client{
		server:  server,
		baseURL: base,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Server returns the server address the client was created with.
func (c *Client) Server() string {
	return c.server
}

func (c *Client) GetServerInfo(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.do(ctx, http.MethodGet, "/server-info", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) ListChannels(ctx context.Context, include ...Include) ([]Channel, error) {
	var channels []Channel
	if err := c.do(ctx, http.MethodGet, "/channels", includeQuery(include), nil, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (c *Client) GetChannel(ctx context.Context, id int, include ...Include) (*Channel, error) {
	var ch Channel
	path := "/channels/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodGet, path, includeQuery(include), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) ExecuteAction(ctx context.Context, id int, action string, params map[string]any) error {
	payload := make(map[string]any, len(params)+1)
	for k, v := range params {
		payload[k] = v
	}
	payload["action"] = action

	path := "/channels/" + strconv.Itoa(id)
	return c.do(ctx, http.MethodPatch, path, nil, payload, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("server", c.server).Str("method", method).Str("path", path).Msg("supla request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supla %s: %w", c.server, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func includeQuery(include []Include) url.Values {
	if len(include) == 0 {
		return nil
	}
	parts := make([]string, len(include))
	for i, inc := range include {
		parts[i] = string(inc)
	}
	return url.Values{"include": {strings.Join(parts, ",")}}
}

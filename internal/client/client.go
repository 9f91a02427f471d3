// Package client talks to a running cliprobe server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cliprobe/internal/permission"
	"cliprobe/internal/settings"
	"cliprobe/internal/status"
	"cliprobe/internal/tools"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for baseURL ("http://127.0.0.1:8787" or a bare host:port).
func New(baseURL string) *Client {
	u := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.Contains(u, "://") {
		u = "http://" + u
	}
	return &Client{BaseURL: u, HTTP: &http.Client{Timeout: 60 * time.Second}}
}

// APIError is a non-2xx reply.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode/100 != 2 {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}

// Health returns nil when the server answers /api/health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Status fetches the aggregated CLI status.
func (c *Client) Status(ctx context.Context) (map[tools.CLIType]status.Entry, error) {
	var out map[tools.CLIType]status.Entry
	err := c.do(ctx, http.MethodGet, "/api/settings/cli-status", nil, &out)
	return out, err
}

// Settings fetches the global settings.
func (c *Client) Settings(ctx context.Context) (settings.GlobalSettings, error) {
	var out settings.GlobalSettings
	err := c.do(ctx, http.MethodGet, "/api/settings/global", nil, &out)
	return out, err
}

// ReplaceSettings PUTs next and returns what the server stored.
func (c *Client) ReplaceSettings(ctx context.Context, next settings.GlobalSettings) (settings.GlobalSettings, error) {
	var out struct {
		Success  bool                    `json:"success"`
		Settings settings.GlobalSettings `json:"settings"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/settings/global", next, &out); err != nil {
		return settings.GlobalSettings{}, err
	}
	return out.Settings, nil
}

// TestPermissionMode asks the server to verify mode ("" means the configured one).
func (c *Client) TestPermissionMode(ctx context.Context, mode string) (permission.Outcome, error) {
	var out permission.Outcome
	in := map[string]string{}
	if mode != "" {
		in["permission_mode"] = mode
	}
	err := c.do(ctx, http.MethodPost, "/api/settings/test-permission-mode", in, &out)
	return out, err
}

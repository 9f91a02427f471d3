package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliprobe/internal/settings"
	"cliprobe/internal/tools"
)

func TestNew_NormalisesURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8787", New("127.0.0.1:8787").BaseURL)
	assert.Equal(t, "https://x.example", New(" https://x.example/ ").BaseURL)
}

func TestClient_RoundTrips(t *testing.T) {
	var putBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/api/settings/cli-status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"claude":{"installed":true,"available":true,"configured":true,"version":"1.0","models":["a"],"checking":false}}`))
	})
	mux.HandleFunc("/api/settings/global", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			_, _ = w.Write([]byte(`{"success":true,"settings":{"default_cli":"cursor","cli_settings":{}}}`))
			return
		}
		_, _ = w.Write([]byte(`{"default_cli":"claude","cli_settings":{}}`))
	})
	mux.HandleFunc("/api/settings/test-permission-mode", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_, _ = w.Write([]byte(`{"success":true,"message":"mode ` + in["permission_mode"] + `","is_root":false}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := New(ts.URL)
	ctx := context.Background()
	require.NoError(t, c.Health(ctx))

	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st[tools.CLIClaude].Installed)

	g, err := c.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, tools.CLIClaude, g.DefaultCLI)

	saved, err := c.ReplaceSettings(ctx, settings.GlobalSettings{DefaultCLI: tools.CLICursor, CLISettings: map[tools.CLIType]map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, tools.CLICursor, saved.DefaultCLI)
	assert.Equal(t, "cursor", putBody["default_cli"])

	out, err := c.TestPermissionMode(ctx, "acceptEdits")
	require.NoError(t, err)
	assert.Equal(t, "mode acceptEdits", out.Message)
}

func TestClient_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid settings: bad"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).Settings(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid settings: bad", apiErr.Message)
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliprobe/internal/config"
	"cliprobe/internal/permission"
	"cliprobe/internal/service"
	"cliprobe/internal/settings"
	"cliprobe/internal/status"
	"cliprobe/internal/tools"
)

type mapRunner map[string]tools.Outcome

func (m mapRunner) Run(_ context.Context, inv tools.Invocation) tools.Outcome {
	if out, ok := m[strings.Join(inv.Command, " ")]; ok {
		return out
	}
	return tools.Outcome{ExitCode: -1, Err: fmt.Errorf("exec: %w", exec.ErrNotFound)}
}

func newTestServer(t *testing.T, root bool) *httptest.Server {
	t.Helper()
	r := mapRunner{
		"claude --version":       {Stdout: []byte("1.0.83 (Claude Code)\n")},
		"claude --help":          {Stdout: []byte("Usage: claude [options]\n")},
		"cursor-agent --version": {ExitCode: 127, Stderr: []byte("cursor-agent: broken install\n")},
	}
	svc := service.New(config.Default(), service.WithRunner(r), service.WithRootCheck(func() bool { return root }))
	ts := httptest.NewServer((&Server{Service: svc}).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer(t, false)
	resp, body := do(t, http.MethodGet, ts.URL+"/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	resp, body = do(t, http.MethodGet, ts.URL+"/api/version", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"version"`)
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t, false)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/health", nil)
	req.Header.Set(requestIDHeader, "abc")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc", resp.Header.Get(requestIDHeader))
}

func TestCLIStatus(t *testing.T) {
	ts := newTestServer(t, false)
	resp, body := do(t, http.MethodGet, ts.URL+"/api/settings/cli-status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[tools.CLIType]status.Entry
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 2)
	assert.True(t, got[tools.CLIClaude].Installed)
	assert.Equal(t, "1.0.83 (Claude Code)", got[tools.CLIClaude].Version)
	assert.False(t, got[tools.CLICursor].Installed)
	assert.Equal(t, "cursor-agent: broken install", got[tools.CLICursor].Error)
	assert.Contains(t, string(body), `"checking":false`)
}

func TestCLIStatusOneAndProbe(t *testing.T) {
	ts := newTestServer(t, false)
	resp, body := do(t, http.MethodGet, ts.URL+"/api/settings/cli-status/claude", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"installed":true`)

	resp, _ = do(t, http.MethodGet, ts.URL+"/api/settings/cli-status/gemini", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, http.MethodGet, ts.URL+"/api/settings/probe/cursor", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var res tools.ProbeResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Installed)
	assert.Equal(t, 127, res.ExitCode)
	assert.Equal(t, tools.KindNonZeroExit, res.Kind)

	resp, _ = do(t, http.MethodGet, ts.URL+"/api/settings/probe/gemini", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGlobalSettings(t *testing.T) {
	ts := newTestServer(t, false)
	resp, body := do(t, http.MethodGet, ts.URL+"/api/settings/global", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var g settings.GlobalSettings
	require.NoError(t, json.Unmarshal(body, &g))
	assert.Equal(t, tools.CLIClaude, g.DefaultCLI)

	put := `{"default_cli":"cursor","cli_settings":{"cursor":{"model":"sonnet-4"}}}`
	resp, body = do(t, http.MethodPut, ts.URL+"/api/settings/global", put)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var upd UpdateResponse
	require.NoError(t, json.Unmarshal(body, &upd))
	assert.True(t, upd.Success)
	assert.Equal(t, tools.CLICursor, upd.Settings.DefaultCLI)

	_, body = do(t, http.MethodGet, ts.URL+"/api/settings/global", "")
	assert.JSONEq(t, put, string(body))

	resp, body = do(t, http.MethodPut, ts.URL+"/api/settings/global", `{"default_cli":"vim","cli_settings":{}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "invalid settings")
}

func TestSchemaEndpoint(t *testing.T) {
	ts := newTestServer(t, false)
	resp, body := do(t, http.MethodGet, ts.URL+"/api/settings/schema", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "permission_mode")
}

func TestTestPermissionMode(t *testing.T) {
	ts := newTestServer(t, true)
	resp, body := do(t, http.MethodPost, ts.URL+"/api/settings/test-permission-mode", `{"permission_mode":"bypassPermissions"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out permission.Outcome
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Success)
	assert.True(t, out.IsRoot)
	assert.Equal(t, "Use 'acceptEdits' mode instead for root environments", out.Suggestion)

	// empty body uses the configured mode (acceptEdits)
	resp, body = do(t, http.MethodPost, ts.URL+"/api/settings/test-permission-mode", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "1.0.83 (Claude Code)", out.Version)

	resp, _ = do(t, http.MethodPost, ts.URL+"/api/settings/test-permission-mode", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	svc := service.New(config.Default(), service.WithRunner(mapRunner{}))
	ready := make(chan string, 1)
	s := &Server{Addr: "127.0.0.1:0", Service: svc, Ready: ready}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	addr := <-ready
	resp, err := http.Get("http://" + addr + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

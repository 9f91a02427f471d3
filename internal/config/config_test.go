package config

import (
    "context"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    tu "cliprobe/internal/testutil"
    "cliprobe/internal/tools"
)

func writeFile(t *testing.T, path, body string) {
    t.Helper()
    require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
    cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
    require.NoError(t, err)
    assert.Equal(t, Default(), cfg)
    assert.Equal(t, 10*time.Second, cfg.EffectiveTaskTimeout())
}

func TestLoad_FileAndOverrides(t *testing.T) {
    p := filepath.Join(t.TempDir(), "config.yaml")
    writeFile(t, p, `
addr: 0.0.0.0:9000
probe_timeout: 2s
task_timeout: 3s
clis:
  claude:
    command: [/opt/claude/bin/claude, --version]
    models: [claude-opus-4.1]
`)
    cfg, err := Load(p)
    require.NoError(t, err)
    assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
    assert.Equal(t, 2*time.Second, cfg.ProbeTimeout)
    assert.Equal(t, 3*time.Second, cfg.EffectiveTaskTimeout())

    claude, ok := cfg.Tool(tools.CLIClaude)
    require.True(t, ok)
    assert.Equal(t, tools.ProbeCommand{"/opt/claude/bin/claude", "--version"}, claude.Command)
    assert.Equal(t, tools.ProbeCommand{"claude", "--help"}, claude.SecondaryCommand)
    assert.Equal(t, []string{"claude-opus-4.1"}, claude.Models)

    cursor, _ := cfg.Tool(tools.CLICursor)
    assert.Equal(t, tools.ProbeCommand{"cursor-agent", "--version"}, cursor.Command)
}

func TestLoad_EnvOverrides(t *testing.T) {
    p := filepath.Join(t.TempDir(), "config.yaml")
    writeFile(t, p, "addr: 127.0.0.1:1\n")
    defer tu.WithEnv(t, EnvAddr, "127.0.0.1:2")()
    defer tu.WithEnv(t, EnvProbeTimeout, "750ms")()
    defer tu.WithEnv(t, EnvLogLevel, "debug")()
    cfg, err := Load(p)
    require.NoError(t, err)
    assert.Equal(t, "127.0.0.1:2", cfg.Addr)
    assert.Equal(t, 750*time.Millisecond, cfg.ProbeTimeout)
    assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Rejects(t *testing.T) {
    cases := map[string]string{
        "unknown field":    "adress: x\n",
        "unknown cli":      "clis:\n  gemini:\n    command: [gemini]\n",
        "zero timeout":     "probe_timeout: 0s\n",
        "negative task":    "task_timeout: -1s\n",
        "empty executable": "clis:\n  claude:\n    command: ['', --version]\n",
        "bad yaml":         "addr: [\n",
    }
    for name, body := range cases {
        t.Run(name, func(t *testing.T) {
            p := filepath.Join(t.TempDir(), "config.yaml")
            writeFile(t, p, body)
            _, err := Load(p)
            assert.Error(t, err)
        })
    }
}

func TestLoad_EmptyFile(t *testing.T) {
    p := filepath.Join(t.TempDir(), "config.yaml")
    writeFile(t, p, "")
    cfg, err := Load(p)
    require.NoError(t, err)
    assert.Equal(t, Default(), cfg)
}

func TestPath(t *testing.T) {
    home := t.TempDir()
    defer tu.WithEnv(t, "HOME", home)()
    defer tu.WithEnv(t, EnvConfig, "")()
    p, err := Path("")
    require.NoError(t, err)
    assert.Equal(t, filepath.Join(home, ".cliprobe", "config.yaml"), p)

    t.Setenv(EnvConfig, "/etc/cliprobe.yaml")
    p, err = Path("")
    require.NoError(t, err)
    assert.Equal(t, "/etc/cliprobe.yaml", p)

    p, err = Path("/tmp/x.yaml")
    require.NoError(t, err)
    assert.Equal(t, "/tmp/x.yaml", p)
}

func TestInit(t *testing.T) {
    p := filepath.Join(t.TempDir(), "sub", "config.yaml")
    wrote, err := Init(p)
    require.NoError(t, err)
    assert.True(t, wrote)
    cfg, err := Load(p)
    require.NoError(t, err)
    assert.Equal(t, Default(), cfg)

    wrote, err = Init(p)
    require.NoError(t, err)
    assert.False(t, wrote)
}

func TestWatcher_ReloadsOnContentChange(t *testing.T) {
    p := filepath.Join(t.TempDir(), "config.yaml")
    writeFile(t, p, "probe_timeout: 1s\n")

    got := make(chan Config, 4)
    w := &Watcher{Path: p, Debounce: 20 * time.Millisecond, OnChange: func(c Config) { got <- c }}
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    done := make(chan error, 1)
    go func() { done <- w.Run(ctx) }()
    time.Sleep(100 * time.Millisecond)

    // same bytes: fingerprint unchanged, no reload
    writeFile(t, p, "probe_timeout: 1s\n")
    select {
    case <-got:
        t.Fatal("unexpected reload for identical content")
    case <-time.After(200 * time.Millisecond):
    }

    writeFile(t, p, "probe_timeout: 3s\n")
    select {
    case c := <-got:
        assert.Equal(t, 3*time.Second, c.ProbeTimeout)
    case <-time.After(3 * time.Second):
        t.Fatal("config change not observed")
    }

    cancel()
    assert.NoError(t, <-done)
}

func TestFingerprint(t *testing.T) {
    p := filepath.Join(t.TempDir(), "f")
    assert.Equal(t, [32]byte{}, Fingerprint(p))
    writeFile(t, p, "a")
    a := Fingerprint(p)
    writeFile(t, p, "b")
    assert.NotEqual(t, a, Fingerprint(p))
}

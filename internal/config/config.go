// Package config loads cliprobe's YAML configuration and applies environment
// overrides on top of it.
package config

import (
    "bytes"
    "errors"
    "fmt"
    "io"
    "io/fs"
    "os"
    "path/filepath"
    "strings"
    "time"

    "gopkg.in/yaml.v3"

    "cliprobe/internal/tools"
)

// Environment overrides.
const (
    EnvAddr         = "CLIPROBE_ADDR"
    EnvProbeTimeout = "CLIPROBE_PROBE_TIMEOUT"
    EnvLogLevel     = "CLIPROBE_LOG_LEVEL"
)

const DefaultAddr = "127.0.0.1:8787"

// CLIConfig overrides the registry entry of one CLI. Empty fields keep the built-in value.
type CLIConfig struct {
    Command          []string `yaml:"command,omitempty"`
    SecondaryCommand []string `yaml:"secondary_command,omitempty"`
    Models           []string `yaml:"models,omitempty"`
}

// Config is the on-disk configuration.
type Config struct {
    Addr         string               `yaml:"addr"`
    LogLevel     string               `yaml:"log_level"`
    ProbeTimeout time.Duration        `yaml:"probe_timeout"`
    TaskTimeout  time.Duration        `yaml:"task_timeout,omitempty"`
    CLIs         map[string]CLIConfig `yaml:"clis,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
    return Config{
        Addr:         DefaultAddr,
        LogLevel:     "info",
        ProbeTimeout: tools.DefaultProbeTimeout,
    }
}

// Load reads path (a missing file yields defaults), then applies env overrides
// and validates the result.
func Load(path string) (Config, error) {
    cfg := Default()
    b, err := os.ReadFile(path)
    switch {
    case errors.Is(err, fs.ErrNotExist):
    case err != nil:
        return Config{}, fmt.Errorf("read config %s: %w", path, err)
    default:
        if err := decode(b, &cfg); err != nil {
            return Config{}, fmt.Errorf("parse config %s: %w", path, err)
        }
    }
    if err := cfg.applyEnv(); err != nil {
        return Config{}, err
    }
    if err := cfg.Validate(); err != nil {
        return Config{}, fmt.Errorf("config %s: %w", path, err)
    }
    return cfg, nil
}

func decode(b []byte, cfg *Config) error {
    dec := yaml.NewDecoder(bytes.NewReader(b))
    dec.KnownFields(true)
    if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
        return err
    }
    return nil
}

func (c *Config) applyEnv() error {
    if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
        c.Addr = v
    }
    if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
        c.LogLevel = v
    }
    if v := strings.TrimSpace(os.Getenv(EnvProbeTimeout)); v != "" {
        d, err := time.ParseDuration(v)
        if err != nil {
            return fmt.Errorf("%s: %w", EnvProbeTimeout, err)
        }
        c.ProbeTimeout = d
    }
    return nil
}

// Validate rejects unusable values.
func (c Config) Validate() error {
    if c.ProbeTimeout <= 0 {
        return fmt.Errorf("probe_timeout must be positive, got %s", c.ProbeTimeout)
    }
    if c.TaskTimeout < 0 {
        return fmt.Errorf("task_timeout must not be negative, got %s", c.TaskTimeout)
    }
    for id, cc := range c.CLIs {
        if _, ok := tools.Lookup(tools.CLIType(id)); !ok {
            return fmt.Errorf("clis: unknown cli %q (known: %s)", id, strings.Join(tools.Names(), ", "))
        }
        if len(cc.Command) > 0 && strings.TrimSpace(cc.Command[0]) == "" {
            return fmt.Errorf("clis.%s.command: empty executable", id)
        }
    }
    return nil
}

// EffectiveTaskTimeout is the per-adapter deadline used by the aggregator.
// Unset means twice the probe timeout, since adapters run two probes.
func (c Config) EffectiveTaskTimeout() time.Duration {
    if c.TaskTimeout > 0 {
        return c.TaskTimeout
    }
    return 2 * c.ProbeTimeout
}

// Tools returns the CLI registry with this config's overrides applied.
func (c Config) Tools() []tools.ToolInfo {
    out := make([]tools.ToolInfo, 0, len(tools.Tools))
    for _, id := range tools.AllCLITypes() {
        info, _ := tools.Lookup(id)
        if cc, ok := c.CLIs[string(id)]; ok {
            if len(cc.Command) > 0 {
                info.Command = append(tools.ProbeCommand(nil), cc.Command...)
            }
            if len(cc.SecondaryCommand) > 0 {
                info.SecondaryCommand = append(tools.ProbeCommand(nil), cc.SecondaryCommand...)
            }
            if len(cc.Models) > 0 {
                info.Models = append([]string(nil), cc.Models...)
            }
        }
        out = append(out, info)
    }
    return out
}

// Tool returns the effective registry entry for id.
func (c Config) Tool(id tools.CLIType) (tools.ToolInfo, bool) {
    for _, t := range c.Tools() {
        if t.ID == id {
            return t, true
        }
    }
    return tools.ToolInfo{}, false
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
    return yaml.Marshal(c)
}

// Init writes the default config to path unless a file already exists.
// It reports whether a file was written.
func Init(path string) (bool, error) {
    if _, err := os.Stat(path); err == nil {
        return false, nil
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return false, err
    }
    b, err := Default().Marshal()
    if err != nil {
        return false, err
    }
    if err := os.WriteFile(path, b, 0o644); err != nil {
        return false, err
    }
    return true, nil
}

// Package service is the core-facing boundary used by the HTTP server and the
// CLI: it owns the prober, adapters, aggregator, verifier and settings store.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cliprobe/internal/adapter"
	"cliprobe/internal/config"
	"cliprobe/internal/permission"
	"cliprobe/internal/settings"
	"cliprobe/internal/status"
	"cliprobe/internal/system"
	"cliprobe/internal/tools"
)

// ErrUnknownCLI is returned for CLI identifiers with no registry entry.
var ErrUnknownCLI = errors.New("unknown cli")

// components is the probing half of the service, rebuilt on reload.
type components struct {
	tools    []tools.ToolInfo
	prober   *tools.Prober
	adapters map[tools.CLIType]adapter.Adapter
	agg      *status.Aggregator
	verifier *permission.Verifier
}

// Service wires the core together. Safe for concurrent use.
type Service struct {
	mu       sync.RWMutex
	comp     *components
	settings *settings.Store
	// runner overrides process spawning for every component when set.
	runner tools.Runner
	isRoot func() bool
}

// Option customises a Service.
type Option func(*Service)

// WithRunner replaces the OS process runner.
func WithRunner(r tools.Runner) Option {
	return func(s *Service) { s.runner = r }
}

// WithRootCheck replaces the effective-user root detection.
func WithRootCheck(f func() bool) Option {
	return func(s *Service) { s.isRoot = f }
}

// WithSettings injects an existing settings store.
func WithSettings(st *settings.Store) Option {
	return func(s *Service) { s.settings = st }
}

// New builds a Service from cfg.
func New(cfg config.Config, opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.settings == nil {
		s.settings = settings.NewStore(settings.Defaults())
	}
	s.comp = s.build(cfg)
	return s
}

func (s *Service) build(cfg config.Config) *components {
	infos := cfg.Tools()
	p := tools.NewProber(cfg.ProbeTimeout)
	if s.runner != nil {
		p.Runner = s.runner
	}
	list := adapter.All(infos, p)
	byType := make(map[tools.CLIType]adapter.Adapter, len(list))
	for _, a := range list {
		byType[a.Type()] = a
	}
	claude, _ := cfg.Tool(tools.CLIClaude)
	v := permission.NewVerifier(claude.Command, cfg.ProbeTimeout)
	if s.runner != nil {
		v.Runner = s.runner
	}
	if s.isRoot != nil {
		v.IsRoot = s.isRoot
	}
	return &components{
		tools:    infos,
		prober:   p,
		adapters: byType,
		agg:      &status.Aggregator{Adapters: list, TaskTimeout: cfg.EffectiveTaskTimeout()},
		verifier: v,
	}
}

// Reload swaps the probing components for ones built from cfg. Settings are kept.
func (s *Service) Reload(cfg config.Config) {
	c := s.build(cfg)
	s.mu.Lock()
	s.comp = c
	s.mu.Unlock()
	system.For("service").Info("probing components rebuilt", "probe_timeout", cfg.ProbeTimeout, "task_timeout", cfg.EffectiveTaskTimeout())
}

func (s *Service) current() *components {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.comp
}

// Tools returns the effective registry.
func (s *Service) Tools() []tools.ToolInfo {
	c := s.current()
	return append([]tools.ToolInfo(nil), c.tools...)
}

func (c *components) tool(t tools.CLIType) (tools.ToolInfo, error) {
	for _, info := range c.tools {
		if info.ID == t {
			return info, nil
		}
	}
	return tools.ToolInfo{}, fmt.Errorf("%w: %q", ErrUnknownCLI, t)
}

// Probe runs the raw version probe for t.
func (s *Service) Probe(ctx context.Context, t tools.CLIType) (tools.ProbeResult, error) {
	c := s.current()
	info, err := c.tool(t)
	if err != nil {
		return tools.ProbeResult{}, err
	}
	return c.prober.ProbeTool(ctx, info), nil
}

// CheckAvailability runs the adapter for t under the aggregator's task deadline.
func (s *Service) CheckAvailability(ctx context.Context, t tools.CLIType) (adapter.AvailabilityRecord, error) {
	c := s.current()
	a, ok := c.adapters[t]
	if !ok {
		return adapter.AvailabilityRecord{}, fmt.Errorf("%w: %q", ErrUnknownCLI, t)
	}
	return c.agg.Check(ctx, a), nil
}

// AggregatedStatus checks every registered CLI concurrently.
func (s *Service) AggregatedStatus(ctx context.Context) status.AggregatedStatus {
	return s.current().agg.Status(ctx)
}

// VerifyPermissionMode tests mode. An empty mode falls back to the claude
// permission_mode setting, then to acceptEdits.
func (s *Service) VerifyPermissionMode(ctx context.Context, mode string) permission.Outcome {
	if mode == "" {
		mode = s.settings.PermissionMode(tools.CLIClaude)
	}
	if mode == "" {
		mode = permission.ModeAcceptEdits
	}
	return s.current().verifier.Verify(ctx, mode)
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() settings.GlobalSettings {
	return s.settings.Get()
}

// ReplaceSettings swaps the settings object whole.
func (s *Service) ReplaceSettings(next settings.GlobalSettings) (settings.GlobalSettings, error) {
	return s.settings.Replace(next)
}

// Package settings holds the process-wide user preferences: which CLI is the
// default and the free-form per-CLI options (model, permission mode).
//
// Settings live in memory only. Updates replace the whole object.
package settings

import (
	"sync"

	"cliprobe/internal/tools"
)

// GlobalSettings is the full preference document.
type GlobalSettings struct {
	DefaultCLI  tools.CLIType                    `json:"default_cli" jsonschema:"enum=claude,enum=cursor"`
	CLISettings map[tools.CLIType]map[string]any `json:"cli_settings"`
}

// Option keys understood inside CLISettings entries.
const (
	KeyModel          = "model"
	KeyPermissionMode = "permission_mode"
)

// Defaults returns a fresh copy of the built-in preferences.
func Defaults() GlobalSettings {
	return GlobalSettings{
		DefaultCLI: tools.CLIClaude,
		CLISettings: map[tools.CLIType]map[string]any{
			tools.CLIClaude: {KeyModel: "claude-sonnet-4", KeyPermissionMode: "acceptEdits"},
			tools.CLICursor: {KeyModel: "gpt-5"},
		},
	}
}

// Store guards the current settings. The zero value is not usable; use NewStore.
type Store struct {
	mu  sync.RWMutex
	cur GlobalSettings
}

// NewStore returns a store seeded with initial.
func NewStore(initial GlobalSettings) *Store {
	return &Store{cur: initial.Clone()}
}

// Get returns a deep copy of the current settings.
func (s *Store) Get() GlobalSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Clone()
}

// Replace validates next and swaps it in whole. Last writer wins.
func (s *Store) Replace(next GlobalSettings) (GlobalSettings, error) {
	next = next.Clone()
	if err := ValidateSettings(next); err != nil {
		return GlobalSettings{}, err
	}
	s.mu.Lock()
	s.cur = next
	s.mu.Unlock()
	return next.Clone(), nil
}

// PermissionMode returns cli_settings[cli].permission_mode, or "" when unset.
func (s *Store) PermissionMode(cli tools.CLIType) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, _ := s.cur.CLISettings[cli][KeyPermissionMode].(string)
	return m
}

// Clone deep-copies g, including nested option values. Nil maps come back
// empty so the copy always serialises to objects.
func (g GlobalSettings) Clone() GlobalSettings {
	out := GlobalSettings{
		DefaultCLI:  g.DefaultCLI,
		CLISettings: make(map[tools.CLIType]map[string]any, len(g.CLISettings)),
	}
	for k, v := range g.CLISettings {
		out.CLISettings[k] = cloneMap(v)
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = cloneValue(x[i])
		}
		return out
	case []string:
		return append([]string(nil), x...)
	default:
		return v
	}
}

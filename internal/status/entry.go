package status

import (
	"cliprobe/internal/adapter"
	"cliprobe/internal/tools"
)

// Entry is the per-CLI shape reported to settings UIs.
type Entry struct {
	Installed  bool            `json:"installed"`
	Available  bool            `json:"available"`
	Configured bool            `json:"configured"`
	Version    string          `json:"version,omitempty"`
	Models     []string        `json:"models"`
	Error      string          `json:"error,omitempty"`
	Kind       tools.ErrorKind `json:"error_kind,omitempty"`
	// Checking is always false once a result exists; UIs use it for spinners.
	Checking bool `json:"checking"`
}

// EntryFrom projects a record onto the reporting shape.
func EntryFrom(rec adapter.AvailabilityRecord) Entry {
	models := rec.Models
	if models == nil {
		models = []string{}
	}
	return Entry{
		Installed:  rec.DisplayedInstalled(),
		Available:  rec.Available,
		Configured: rec.Configured,
		Version:    rec.Version,
		Models:     models,
		Error:      rec.Error,
		Kind:       rec.Kind,
	}
}

// Entries converts the whole status.
func (s AggregatedStatus) Entries() map[tools.CLIType]Entry {
	out := make(map[tools.CLIType]Entry, len(s))
	for id, rec := range s {
		out[id] = EntryFrom(rec)
	}
	return out
}

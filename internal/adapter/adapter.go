// Package adapter maps raw probes into per-CLI availability records.
//
// Each supported CLI type has exactly one adapter, selected through a static
// dispatch table. Adapters never return errors or panic past their boundary:
// every failure resolves to a populated AvailabilityRecord.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"cliprobe/internal/system"
	"cliprobe/internal/tools"
)

// AvailabilityRecord is the usability assessment of one CLI type.
type AvailabilityRecord struct {
	CLIID      tools.CLIType   `json:"cli_id"`
	Available  bool            `json:"available"`
	Configured bool            `json:"configured"`
	Models     []string        `json:"models"`
	Version    string          `json:"version,omitempty"`
	Error      string          `json:"error,omitempty"`
	Kind       tools.ErrorKind `json:"error_kind,omitempty"`
}

// DisplayedInstalled reports whether the CLI is both present and usable.
func (r AvailabilityRecord) DisplayedInstalled() bool {
	return r.Available && r.Configured
}

// MarshalJSON adds the derived "installed" field.
func (r AvailabilityRecord) MarshalJSON() ([]byte, error) {
	type plain AvailabilityRecord
	models := r.Models
	if models == nil {
		models = []string{}
	}
	p := plain(r)
	p.Models = models
	return json.Marshal(struct {
		plain
		Installed bool `json:"installed"`
	}{plain: p, Installed: r.DisplayedInstalled()})
}

// Failed builds a negative record for id.
func Failed(id tools.CLIType, kind tools.ErrorKind, msg string) AvailabilityRecord {
	return AvailabilityRecord{CLIID: id, Models: []string{}, Error: msg, Kind: kind}
}

// Adapter checks the availability of a single CLI type.
type Adapter interface {
	Type() tools.CLIType
	CheckAvailability(ctx context.Context) AvailabilityRecord
}

type constructor func(info tools.ToolInfo, p *tools.Prober) Adapter

// registry is the closed dispatch table over supported CLI types.
var registry = map[tools.CLIType]constructor{
	tools.CLIClaude: newClaude,
	tools.CLICursor: newCursor,
}

// Supported reports whether an adapter exists for t.
func Supported(t tools.CLIType) bool {
	_, ok := registry[t]
	return ok
}

// New returns the adapter for info.ID, or false when the type is unknown.
func New(info tools.ToolInfo, p *tools.Prober) (Adapter, bool) {
	ctor, ok := registry[info.ID]
	if !ok {
		return nil, false
	}
	return ctor(info, p), true
}

// All builds adapters for every entry in infos, in order. Unknown types are skipped.
func All(infos []tools.ToolInfo, p *tools.Prober) []Adapter {
	out := make([]Adapter, 0, len(infos))
	for _, info := range infos {
		a, ok := New(info, p)
		if !ok {
			system.For("adapter").Warn("no adapter for cli type", "cli", info.ID)
			continue
		}
		out = append(out, a)
	}
	return out
}

// configuredFunc decides, from the secondary probe, whether the tool is usable.
// It returns a message when it is not.
type configuredFunc func(sec tools.ProbeResult) (bool, string)

type base struct {
	info       tools.ToolInfo
	prober     *tools.Prober
	configured configuredFunc
}

func (b *base) Type() tools.CLIType { return b.info.ID }

func (b *base) CheckAvailability(ctx context.Context) (rec AvailabilityRecord) {
	rec = AvailabilityRecord{CLIID: b.info.ID, Models: []string{}}
	defer func() {
		if r := recover(); r != nil {
			rec = Failed(b.info.ID, tools.KindUnexpected, fmt.Sprintf("internal error: %v", r))
		}
	}()

	primary := b.prober.ProbeTool(ctx, b.info)
	if !primary.Installed {
		rec.Error = primary.Error
		rec.Kind = primary.Kind
		return rec
	}
	rec.Available = true
	rec.Version = primary.Version
	rec.Models = append([]string{}, b.info.Models...)

	if len(b.info.SecondaryCommand) == 0 || b.configured == nil {
		rec.Configured = true
		return rec
	}
	sec := b.prober.Probe(ctx, b.info.ID, b.info.SecondaryCommand)
	ok, msg := b.configured(sec)
	rec.Configured = ok
	if !ok {
		rec.Error = msg
		rec.Kind = sec.Kind
		if rec.Kind == tools.KindNone {
			rec.Kind = tools.KindNotConfigured
		}
	}
	return rec
}

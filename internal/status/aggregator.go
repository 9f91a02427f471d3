// Package status fans availability checks out across every registered CLI
// and collects one record per type.
package status

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"cliprobe/internal/adapter"
	"cliprobe/internal/system"
	"cliprobe/internal/tools"
)

// AggregatedStatus maps each checked CLI type to its record.
type AggregatedStatus map[tools.CLIType]adapter.AvailabilityRecord

// Installed reports the displayed-installed flag for every entry.
func (s AggregatedStatus) Installed() map[tools.CLIType]bool {
	out := make(map[tools.CLIType]bool, len(s))
	for id, rec := range s {
		out[id] = rec.DisplayedInstalled()
	}
	return out
}

// Aggregator runs adapters concurrently.
type Aggregator struct {
	Adapters []adapter.Adapter
	// TaskTimeout bounds each adapter. Zero means no per-task deadline beyond ctx.
	TaskTimeout time.Duration
}

// Status checks every adapter and returns one record per adapter type.
// Total wall time is bounded by the slowest task, not the sum.
func (a *Aggregator) Status(ctx context.Context) AggregatedStatus {
	out := make(AggregatedStatus, len(a.Adapters))
	if len(a.Adapters) == 0 {
		return out
	}
	log := system.For("status")
	start := time.Now()

	slots := make([]adapter.AvailabilityRecord, len(a.Adapters))
	var g errgroup.Group
	for i, ad := range a.Adapters {
		g.Go(func() error {
			slots[i] = a.run(ctx, ad)
			return nil
		})
	}
	_ = g.Wait()

	for _, rec := range slots {
		out[rec.CLIID] = rec
	}
	log.Debug("aggregated status", "clis", len(out), "elapsed", time.Since(start))
	return out
}

// Check runs a single adapter under the same deadline and isolation rules as Status.
func (a *Aggregator) Check(ctx context.Context, ad adapter.Adapter) adapter.AvailabilityRecord {
	return a.run(ctx, ad)
}

func (a *Aggregator) run(ctx context.Context, ad adapter.Adapter) adapter.AvailabilityRecord {
	id := ad.Type()
	if a.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.TaskTimeout)
		defer cancel()
	}

	done := make(chan adapter.AvailabilityRecord, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				system.For("status").Error("adapter panicked", "cli", id, "panic", r)
				done <- adapter.Failed(id, tools.KindUnexpected, fmt.Sprintf("internal error: %v", r))
			}
		}()
		rec := ad.CheckAvailability(ctx)
		rec.CLIID = id
		done <- rec
	}()

	select {
	case rec := <-done:
		return rec
	case <-ctx.Done():
		kind, msg := tools.ClassifyError(ctx.Err())
		system.For("status").Warn("adapter did not finish", "cli", id, "reason", msg)
		return adapter.Failed(id, kind, msg)
	}
}

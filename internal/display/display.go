// internal/display/display.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package display implements the periodic snapshot and end-of-run summary
// (§4.6): T-display wakes every 2 seconds, takes the state lock, and
// writes a snapshot of queues, runway status, quantum, and pause flag to
// its output sink.
package display

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/skywatch-atc/skywatch/internal/logging"
	"github.com/skywatch-atc/skywatch/internal/scheduler"
)

const interval = 2 * time.Second

// Display is the T-display worker.
type Display struct {
	state    *scheduler.State
	registry *scheduler.CompletedRegistry
	out      io.Writer
	lg       *logging.Logger
}

func New(state *scheduler.State, registry *scheduler.CompletedRegistry, out io.Writer, lg *logging.Logger) *Display {
	return &Display{state: state, registry: registry, out: out, lg: lg}
}

// Run wakes every 2s (or immediately when force fires, for the operator's
// "status" command) and writes a snapshot until ctx is cancelled.
func (d *Display) Run(ctx context.Context, force <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.print()
		case <-force:
			d.print()
		}
	}
}

func (d *Display) print() {
	snap := d.state.Snapshot()

	fmt.Fprintf(d.out, "--- SkyWatch snapshot @ %s ---\n", time.Now().Format(time.RFC3339))
	for qi, name := range []string{"Q1 (SRTF)", "Q2 (RR)", "Q3 (standby/aging)"} {
		fmt.Fprintf(d.out, "%s: %d jet(s)\n", name, len(snap.Queues[qi]))
		for _, js := range snap.Queues[qi] {
			fmt.Fprintf(d.out, "  %s fuel=%d status=%s\n", js.ID, js.Fuel, js.Status)
		}
	}
	if snap.RunwayBusy {
		fmt.Fprintf(d.out, "runway: BUSY jet=%s origin=%s\n", snap.RunwayJet, snap.RunwayOrigin)
	} else {
		fmt.Fprintf(d.out, "runway: IDLE\n")
	}
	fmt.Fprintf(d.out, "q2_quantum=%d paused=%v\n", snap.Q2Quantum, snap.Paused)
}

// PrintSummary writes the end-of-run aggregation (§4.6).
func (d *Display) PrintSummary(totalSeconds int) {
	summary := scheduler.Summarize(d.state, d.registry, totalSeconds)

	fmt.Fprintf(d.out, "=== SkyWatch run summary ===\n")
	fmt.Fprintf(d.out, "total simulated seconds: %d\n", summary.TotalSimulatedSeconds)
	fmt.Fprintf(d.out, "context switches: %d\n", summary.ContextSwitches)
	fmt.Fprintf(d.out, "runway utilization: %.2f%%\n", summary.RunwayUtilization*100)
	fmt.Fprintf(d.out, "completed jets: %d\n", len(summary.Completed))
	for _, c := range summary.Completed {
		fmt.Fprintf(d.out, "  %s turnaround=%s wait=%s response=%s\n",
			c.ID, c.Turnaround, c.Wait, c.Response)
	}

	d.lg.Info("run summary",
		"total_seconds", summary.TotalSimulatedSeconds,
		"context_switches", summary.ContextSwitches,
		"runway_utilization", summary.RunwayUtilization,
		"completed_jets", len(summary.Completed))
}

// internal/scheduler/registry.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"github.com/skywatch-atc/skywatch/internal/jet"
	"github.com/skywatch-atc/skywatch/internal/logging"
	"github.com/skywatch-atc/skywatch/internal/syncutil"
)

// CompletedRegistry accumulates per-jet completion statistics under its own
// TracedMutex, independent of State's lock, so that end-of-run reporting
// never contends with the scheduler's hot path (§5: "statistics of
// completed jets live under a separate mutex to decouple end-of-run
// reporting").
type CompletedRegistry struct {
	mu    syncutil.TracedMutex
	lg    *logging.Logger
	stats []jet.CompletedStats
}

func NewCompletedRegistry(lg *logging.Logger) *CompletedRegistry {
	return &CompletedRegistry{lg: lg}
}

// Record appends a completed jet's statistics.
func (c *CompletedRegistry) Record(s jet.CompletedStats) {
	c.mu.Lock(c.lg)
	defer c.mu.Unlock(c.lg)
	c.stats = append(c.stats, s)
}

// All returns a copy of every recorded completion.
func (c *CompletedRegistry) All() []jet.CompletedStats {
	c.mu.Lock(c.lg)
	defer c.mu.Unlock(c.lg)
	out := make([]jet.CompletedStats, len(c.stats))
	copy(out, c.stats)
	return out
}

// Summary is the end-of-run aggregation described in §4.6.
type Summary struct {
	TotalSimulatedSeconds int
	Completed             []jet.CompletedStats
	ContextSwitches       int
	RunwayUtilization     float64 // runway_busy_ticks / total_seconds
}

// Summarize builds the end-of-run report from a State's counters and a
// CompletedRegistry's recorded completions.
func Summarize(s *State, reg *CompletedRegistry, totalSeconds int) Summary {
	switches, busyTicks := s.Counters()

	util := 0.0
	if totalSeconds > 0 {
		util = float64(busyTicks) / float64(totalSeconds)
	}

	return Summary{
		TotalSimulatedSeconds: totalSeconds,
		Completed:             reg.All(),
		ContextSwitches:       switches,
		RunwayUtilization:     util,
	}
}

// internal/scheduler/registry_test.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"testing"
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

func TestCompletedRegistryRecordAndAll(t *testing.T) {
	reg := NewCompletedRegistry(nil)
	a := jet.CompletedStats{ID: jet.NewID(), Turnaround: time.Minute}
	b := jet.CompletedStats{ID: jet.NewID(), Turnaround: 2 * time.Minute}

	reg.Record(a)
	reg.Record(b)

	got := reg.All()
	if len(got) != 2 {
		t.Fatalf("All() returned %d entries, want 2", len(got))
	}

	got[0].Turnaround = 0 // mutating the copy must not affect the registry
	again := reg.All()
	if again[0].Turnaround == 0 {
		t.Error("All() should return an independent copy, not a shared slice")
	}
}

func TestSummarizeUtilization(t *testing.T) {
	s := newTestState()
	reg := NewCompletedRegistry(nil)
	reg.Record(jet.CompletedStats{ID: jet.NewID()})

	s.lock()
	s.contextSwitches = 4
	s.runwayBusyTicks = 30
	s.unlock()

	summary := Summarize(s, reg, 60)

	if summary.ContextSwitches != 4 {
		t.Errorf("ContextSwitches = %d, want 4", summary.ContextSwitches)
	}
	if summary.RunwayUtilization != 0.5 {
		t.Errorf("RunwayUtilization = %f, want 0.5", summary.RunwayUtilization)
	}
	if len(summary.Completed) != 1 {
		t.Errorf("Completed = %d entries, want 1", len(summary.Completed))
	}
}

func TestSummarizeZeroDurationRun(t *testing.T) {
	s := newTestState()
	reg := NewCompletedRegistry(nil)

	summary := Summarize(s, reg, 0)

	if summary.RunwayUtilization != 0 {
		t.Errorf("RunwayUtilization = %f, want 0 for a zero-length run", summary.RunwayUtilization)
	}
}

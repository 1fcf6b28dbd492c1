// internal/scheduler/state_test.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"testing"
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

func TestInsertArrivalGoesToQ2(t *testing.T) {
	s := newTestState()
	r := newTestRecord(60)

	if !s.InsertArrival(r, time.Now()) {
		t.Fatal("InsertArrival reported failure on an empty Q2")
	}
	qi, _, ok := s.Find(r.ID)
	if !ok || qi != Q2 {
		t.Fatalf("Find = (%v, ok=%v), want (Q2, true)", qi, ok)
	}
	if r.Status != jet.InQueue {
		t.Errorf("Status = %s, want InQueue", r.Status)
	}
}

func TestInsertArrivalRejectsWhenQ2Full(t *testing.T) {
	s := newTestState()
	for i := 0; i < QueueCapacity; i++ {
		if !s.InsertArrival(newTestRecord(60), time.Now()) {
			t.Fatalf("InsertArrival failed before Q2 reached capacity, at i=%d", i)
		}
	}
	if s.InsertArrival(newTestRecord(60), time.Now()) {
		t.Error("InsertArrival should fail once Q2 is full")
	}
}

func TestSetQ2QuantumRejectsNonPositive(t *testing.T) {
	s := newTestState()
	if s.SetQ2Quantum(0) || s.SetQ2Quantum(-1) {
		t.Error("SetQ2Quantum should reject non-positive values")
	}
	if !s.SetQ2Quantum(3) {
		t.Error("SetQ2Quantum should accept a positive value")
	}
}

func TestSetAgingThresholdRejectsNonPositive(t *testing.T) {
	s := newTestState()
	if s.SetAgingThreshold(0) {
		t.Error("SetAgingThreshold should reject non-positive values")
	}
	if !s.SetAgingThreshold(5) {
		t.Error("SetAgingThreshold should accept a positive value")
	}
}

func TestBoostPriorityPromotesOneTier(t *testing.T) {
	s := newTestState()
	r := newTestRecord(60)
	s.InsertArrival(r, time.Now())

	if !s.BoostPriority(r.ID) {
		t.Fatal("BoostPriority failed from Q2")
	}
	qi, _, _ := s.Find(r.ID)
	if qi != Q1 {
		t.Errorf("after one boost, queue = %v, want Q1", qi)
	}

	// A second boost from Q1 is a no-op, not a move into a nonexistent tier.
	if !s.BoostPriority(r.ID) {
		t.Fatal("BoostPriority at Q1 should report success as a no-op")
	}
	qi, _, _ = s.Find(r.ID)
	if qi != Q1 {
		t.Errorf("boosting at Q1 should leave the jet at Q1, got %v", qi)
	}
}

func TestBoostPriorityUnknownJet(t *testing.T) {
	s := newTestState()
	if s.BoostPriority(jet.NewID()) {
		t.Error("BoostPriority should fail for an id not in any queue")
	}
}

func TestPausedGate(t *testing.T) {
	s := newTestState()
	if s.Paused() {
		t.Fatal("a new State should start unpaused")
	}
	s.SetPaused(true)
	if !s.Paused() {
		t.Error("SetPaused(true) should make Paused() report true")
	}
}

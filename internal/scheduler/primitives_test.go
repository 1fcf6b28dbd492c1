// internal/scheduler/primitives_test.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"testing"
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

func TestMoveResetsStatusExceptWaitingFuelIntoQ3(t *testing.T) {
	s := newTestState()
	r := newTestRecord(60)
	s.lock()
	s.queues[Q2].put(0, r)
	r.Status = jet.LandingCmdSent
	r.RunwayTicks = 3
	ok := s.move(Q2, 0, Q3)
	s.unlock()

	if !ok {
		t.Fatal("move reported failure")
	}
	if r.Status != jet.InQueue {
		t.Errorf("Status after move = %s, want InQueue", r.Status)
	}
	if r.RunwayTicks != 0 {
		t.Errorf("RunwayTicks after move = %d, want 0", r.RunwayTicks)
	}
}

func TestMovePreservesWaitingFuelIntoQ3(t *testing.T) {
	s := newTestState()
	r := newTestRecord(60)
	s.lock()
	s.queues[Q2].put(0, r)
	r.Status = jet.WaitingFuel
	ok := s.move(Q2, 0, Q3)
	s.unlock()

	if !ok {
		t.Fatal("move reported failure")
	}
	if r.Status != jet.WaitingFuel {
		t.Errorf("Status after move into Q3 = %s, want WaitingFuel preserved", r.Status)
	}
}

func TestMoveFailsWhenDestinationFull(t *testing.T) {
	s := newTestState()
	for i := 0; i < QueueCapacity; i++ {
		s.lock()
		s.queues[Q1].put(i, newTestRecord(60))
		s.unlock()
	}
	r := newTestRecord(60)
	s.lock()
	s.queues[Q2].put(0, r)
	ok := s.move(Q2, 0, Q1)
	s.unlock()

	if ok {
		t.Fatal("move should fail when the destination queue is full")
	}
	qi, _, found := s.Find(r.ID)
	if !found || qi != Q2 {
		t.Errorf("jet should remain at Q2 after a failed move, got (%v, %v)", qi, found)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := newTestState()
	r := newTestRecord(60)
	s.InsertArrival(r, time.Now())

	s.Clear(r.ID)
	if _, _, found := s.Find(r.ID); found {
		t.Fatal("jet should be gone after Clear")
	}
	s.Clear(r.ID) // logged no-op, must not panic
}

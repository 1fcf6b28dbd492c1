// internal/scheduler/state.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package scheduler implements the MLFQ scheduler core: slot-stable queue
// storage (§3/§4.1), the once-per-second tick engine (§4.2), and the
// feedback-driven events it shares with the I/O reactor (§4.3). A single
// syncutil.TracedMutex protects all queue/runway/counter state, matching
// §5's "one SchedulerState protected by one mutex".
package scheduler

import (
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
	"github.com/skywatch-atc/skywatch/internal/logging"
	"github.com/skywatch-atc/skywatch/internal/syncutil"
)

// DefaultQ2Quantum and DefaultAgingThreshold are the canonical tuning
// values (§4.2, §8).
const (
	DefaultQ2Quantum      = 5
	DefaultAgingThreshold = 10
)

// State is the single shared mutable scheduler structure (§3).
type State struct {
	mu syncutil.TracedMutex
	lg *logging.Logger

	queues [numQueues]*queue

	runwayBusy   bool
	runwayJet    jet.ID
	runwayIsSet  bool
	runwayOrigin Index

	q2Quantum      int
	agingThreshold int
	paused         bool

	contextSwitches int
	runwayBusyTicks int

	tickDuration time.Duration
}

// New creates an empty scheduler state.
func New(lg *logging.Logger, tickDuration time.Duration) *State {
	s := &State{
		lg:             lg,
		q2Quantum:      DefaultQ2Quantum,
		agingThreshold: DefaultAgingThreshold,
		tickDuration:   tickDuration,
	}
	for i := range s.queues {
		s.queues[i] = &queue{}
	}
	return s
}

func (s *State) lock()   { s.mu.Lock(s.lg) }
func (s *State) unlock() { s.mu.Unlock(s.lg) }

// Find returns the queue and slot holding id, if any. A jet exists in at
// most one queue at a time.
func (s *State) Find(id jet.ID) (Index, int, bool) {
	s.lock()
	defer s.unlock()
	return s.findUnlocked(id)
}

func (s *State) findUnlocked(id jet.ID) (Index, int, bool) {
	for qi := Index(0); qi < numQueues; qi++ {
		if idx := s.queues[qi].findSlot(id); idx >= 0 {
			return qi, idx, true
		}
	}
	return 0, -1, false
}

// InsertArrival registers a newly-spawned jet at the first free Q2 slot
// (§3 Lifecycle: "inserted into Q2 (mid-priority entry)"), initializing its
// statistics. It returns false (and logs) if Q2 is full (§4.1 failure
// mode).
func (s *State) InsertArrival(r *jet.Record, now time.Time) bool {
	s.lock()
	defer s.unlock()

	idx := s.queues[Q2].firstFree()
	if idx < 0 {
		s.lg.Warn("Q2 full, dropping arrival", "jet", r.ID)
		return false
	}
	r.Status = jet.InQueue
	r.ArrivalTS = now
	s.queues[Q2].put(idx, r)
	return true
}

// SetPaused toggles the pause flag (§4.5 pause_sim/resume_sim).
func (s *State) SetPaused(p bool) {
	s.lock()
	defer s.unlock()
	s.paused = p
}

// Paused reports whether the tick engine is gated (§4.2 step 1).
func (s *State) Paused() bool {
	s.lock()
	defer s.unlock()
	return s.paused
}

// SetQ2Quantum sets the Q2 RR quantum (§4.5 change_quantum). n must be > 0.
func (s *State) SetQ2Quantum(n int) bool {
	if n <= 0 {
		return false
	}
	s.lock()
	defer s.unlock()
	s.q2Quantum = n
	return true
}

// SetAgingThreshold sets the number of standby ticks a Q3 jet tolerates
// before promotion (§4.2 step 3). n must be > 0. Unlike the quantum, there
// is no operator command for this; it is a startup-only knob.
func (s *State) SetAgingThreshold(n int) bool {
	if n <= 0 {
		return false
	}
	s.lock()
	defer s.unlock()
	s.agingThreshold = n
	return true
}

// BoostPriority promotes a jet one tier (Q3->Q2->Q1; no-op at Q1), per
// §4.5 boost_priority.
func (s *State) BoostPriority(id jet.ID) bool {
	s.lock()
	defer s.unlock()

	qi, idx, ok := s.findUnlocked(id)
	if !ok {
		s.lg.Error("boost_priority: jet not found", "jet", id)
		return false
	}
	switch qi {
	case Q1:
		return true // no-op at Q1
	case Q2:
		return s.move(Q2, idx, Q1)
	case Q3:
		return s.move(Q3, idx, Q2)
	}
	return false
}

// internal/scheduler/primitives.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import "github.com/skywatch-atc/skywatch/internal/jet"

// move relocates the jet at (from, idx) into queue to, preserving the
// one-queue-per-jet and slot-count invariants. Caller must hold the state
// lock. Reports failure (and logs) if the destination is full; the jet is
// left where it was (§4.1).
func (s *State) move(from Index, idx int, to Index) bool {
	r := s.queues[from].slots[idx]
	if r == nil {
		return false
	}

	dst := s.queues[to]
	toIdx := dst.firstFree()
	if toIdx < 0 {
		s.lg.Warn("move failed: destination queue full", "jet", r.ID, "from", from, "to", to)
		return false
	}

	s.queues[from].clear(idx)

	r.RunwayTicks = 0
	if to != Q3 {
		r.StandbyTicks = 0
	}

	newStatus := jet.InQueue
	if to == Q3 && r.Status == jet.WaitingFuel {
		newStatus = jet.WaitingFuel
	}
	r.Status = newStatus

	dst.put(toIdx, r)
	return true
}

// clearByLocation zeroes the slot at (qi, idx), releasing runway ownership
// first if the jet held it, and closing its channel handle. Caller must
// hold the state lock.
func (s *State) clearByLocation(qi Index, idx int) {
	r := s.queues[qi].slots[idx]
	if r == nil {
		return
	}
	if s.runwayIsSet && s.runwayJet == r.ID {
		s.runwayBusy = false
		s.runwayIsSet = false
	}
	r.Handle.Close()
	s.queues[qi].clear(idx)
}

// Clear releases and destroys the jet with the given id, idempotently
// (§8 round-trip law: a second Clear is a logged no-op).
func (s *State) Clear(id jet.ID) {
	s.lock()
	defer s.unlock()

	qi, idx, ok := s.findUnlocked(id)
	if !ok {
		s.lg.Warn("clear: jet not found (already cleared?)", "jet", id)
		return
	}
	s.clearByLocation(qi, idx)
}

// preemptRunway clears runway ownership and resets the displaced jet's
// status/runway_ticks, incrementing context_switches (§4.1). Caller must
// hold the state lock and must confirm a jet is actually on the runway.
func (s *State) preemptRunway() {
	if !s.runwayIsSet {
		return
	}
	qi, idx, ok := s.findUnlocked(s.runwayJet)
	s.runwayBusy = false
	s.runwayIsSet = false
	s.contextSwitches++
	if !ok {
		return
	}
	r := s.queues[qi].slots[idx]
	if r == nil {
		return
	}
	r.Status = jet.InQueue
	r.RunwayTicks = 0
}

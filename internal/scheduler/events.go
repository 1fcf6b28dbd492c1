// internal/scheduler/events.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

// ApplyFuelLow updates a jet's fuel on a FuelLow feedback; no queue change
// (§4.3).
func (s *State) ApplyFuelLow(id jet.ID, fuel int) {
	s.lock()
	defer s.unlock()
	qi, idx, ok := s.findUnlocked(id)
	if !ok {
		s.lg.Error("FuelLow: jet not found", "jet", id)
		return
	}
	s.queues[qi].slots[idx].Fuel = fuel
}

// ApplyEmergency handles an Emergency feedback (§4.2): moves the jet to
// Q1, updates its fuel, and preempts the runway holder according to the
// preemption rule. Preemption never applies to a holder currently
// Refueling.
func (s *State) ApplyEmergency(id jet.ID, fuel int) {
	s.lock()
	defer s.unlock()

	qi, idx, ok := s.findUnlocked(id)
	if !ok {
		s.lg.Error("Emergency: jet not found", "jet", id)
		return
	}
	s.queues[qi].slots[idx].Fuel = fuel

	if qi != Q1 {
		s.move(qi, idx, Q1)
	}

	if !s.runwayIsSet || s.runwayJet == id {
		return
	}
	rqi, ridx, ok := s.findUnlocked(s.runwayJet)
	if !ok {
		return
	}
	running := s.queues[rqi].slots[ridx]
	if running.Status == jet.Refueling {
		return
	}

	preempt := s.runwayOrigin != Q1 || fuel < running.Fuel
	if preempt {
		s.lg.Info("emergency preempts runway", "emergency_jet", id, "running_jet", running.ID)
		s.preemptRunway()
	}
}

// ApplyRefuelRequest handles a WaitingFuel feedback (§4.2): moves the jet
// to Q3 with status WaitingFuel. It can only progress again once aging
// promotes it back to Q2, an intentional cooldown (§9 open question).
func (s *State) ApplyRefuelRequest(id jet.ID, fuel int) {
	s.lock()
	defer s.unlock()

	qi, idx, ok := s.findUnlocked(id)
	if !ok {
		s.lg.Error("WaitingFuel: jet not found", "jet", id)
		return
	}
	r := s.queues[qi].slots[idx]
	r.Fuel = fuel
	r.Status = jet.WaitingFuel
	if qi != Q3 {
		s.move(qi, idx, Q3)
	}
}

// ApplyRefueled handles a Refueled feedback: sets fuel, returns the jet to
// InQueue, and releases the runway if it was the holder.
func (s *State) ApplyRefueled(id jet.ID, fuel int) {
	s.lock()
	defer s.unlock()

	qi, idx, ok := s.findUnlocked(id)
	if !ok {
		s.lg.Error("Refueled: jet not found", "jet", id)
		return
	}
	r := s.queues[qi].slots[idx]
	r.Fuel = fuel
	r.Status = jet.InQueue
	if s.runwayIsSet && s.runwayJet == id {
		s.runwayBusy = false
		s.runwayIsSet = false
	}
}

// ApplyRefueling handles a Refueling feedback. It is informational only
// (§4.3): no state change is required.
func (s *State) ApplyRefueling(id jet.ID) {
	s.lg.Debug("jet refueling", "jet", id)
}

// CaptureAndClear implements the completion path (§4.2): stats are
// captured from the jet's record before its slot is cleared. It is called
// for both a Landed feedback and an unexpected channel EOF.
func (s *State) CaptureAndClear(id jet.ID, now time.Time) (jet.CompletedStats, bool) {
	s.lock()
	defer s.unlock()

	qi, idx, ok := s.findUnlocked(id)
	if !ok {
		s.lg.Warn("CaptureAndClear: jet not found (already cleared?)", "jet", id)
		return jet.CompletedStats{}, false
	}
	r := s.queues[qi].slots[idx]
	stats := jet.Capture(r, now, s.tickDuration)
	s.clearByLocation(qi, idx)
	return stats, true
}

// ForceEmergency implements the operator force_emergency command (§4.5):
// invokes the emergency handler with fuel=1.
func (s *State) ForceEmergency(id jet.ID) {
	s.ApplyEmergency(id, 1)
}

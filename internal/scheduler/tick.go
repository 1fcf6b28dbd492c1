// internal/scheduler/tick.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
	"github.com/skywatch-atc/skywatch/internal/wire"
)

// Tick runs one simulated second of the scheduler (§4.2). Step order is
// normative: gate, wait accounting, aging, RR demotion, dispatch.
func (s *State) Tick(now time.Time) {
	s.lock()
	defer s.unlock()

	// 1. Gate.
	if s.paused {
		return
	}

	// 2. Wait accounting.
	if s.runwayBusy {
		s.runwayBusyTicks++
	}
	for qi := Index(0); qi < numQueues; qi++ {
		for _, r := range s.queues[qi].slots {
			if r == nil {
				continue
			}
			if r.Status == jet.InQueue || r.Status == jet.WaitingFuel {
				r.AccumulatedWaitTicks++
			}
		}
	}

	// 3. Aging (Q3 -> Q2).
	q3 := s.queues[Q3]
	for i, r := range q3.slots {
		if r == nil {
			continue
		}
		if r.Status != jet.InQueue && r.Status != jet.WaitingFuel {
			continue
		}
		r.StandbyTicks++
		if r.StandbyTicks > s.agingThreshold {
			s.lg.Info("aging promotion Q3 -> Q2", "jet", r.ID, "standby_ticks", r.StandbyTicks)
			oldStatus := r.Status
			if s.move(Q3, i, Q2) {
				// move() resets status to InQueue except when moving *to*
				// Q3 with WaitingFuel; aging goes the other way, so
				// restore the WaitingFuel status explicitly if it had one.
				if oldStatus == jet.WaitingFuel {
					r.Status = jet.WaitingFuel
				}
			}
		}
	}

	// 4. RR demotion.
	if s.runwayBusy && s.runwayIsSet && s.runwayOrigin == Q2 {
		if qi, idx, ok := s.findUnlocked(s.runwayJet); ok {
			r := s.queues[qi].slots[idx]
			r.RunwayTicks++
			if r.RunwayTicks >= s.q2Quantum {
				s.lg.Info("RR quantum expired, demoting to Q3", "jet", r.ID)
				s.runwayBusy = false
				s.runwayIsSet = false
				s.contextSwitches++
				s.move(qi, idx, Q3)
			}
		}
	}

	// 5. Dispatch (only if runway idle).
	if s.runwayBusy {
		return
	}
	if s.dispatchQ1(now) {
		return
	}
	s.dispatchQ2(now)
}

// dispatchQ1 implements the SRTF dispatch from Q1 (§4.2 step 5). It
// returns true if the runway was claimed (or an eligible jet existed but
// its write failed, since either way dispatch for this tick is done).
func (s *State) dispatchQ1(now time.Time) bool {
	q1 := s.queues[Q1]
	best := -1
	bestFuel := 0
	for i, r := range q1.slots {
		if r == nil || r.Status != jet.InQueue {
			continue
		}
		if best < 0 || r.Fuel < bestFuel {
			best = i
			bestFuel = r.Fuel
		}
	}
	if best < 0 {
		return false
	}

	r := q1.slots[best]
	if err := wire.WriteCommand(r.Handle.Write, wire.Command{Tag: wire.CmdStartLanding}); err != nil {
		s.lg.Warn("dispatch write failed, jet remains queued", "jet", r.ID, "err", err)
		return true
	}

	r.Status = jet.LandingCmdSent
	s.runwayBusy = true
	s.runwayIsSet = true
	s.runwayJet = r.ID
	s.runwayOrigin = Q1
	if r.FirstDispatchTS.IsZero() {
		r.FirstDispatchTS = now
	}
	s.contextSwitches++
	s.lg.Info("runway assigned from Q1 (SRTF)", "jet", r.ID, "fuel", r.Fuel)
	return true
}

// dispatchQ2 implements the RR/refuel dispatch from Q2 (§4.2 step 5).
func (s *State) dispatchQ2(now time.Time) {
	q2 := s.queues[Q2]

	refuelIdx := -1
	for i, r := range q2.slots {
		if r != nil && r.Status == jet.WaitingFuel {
			refuelIdx = i
			break
		}
	}

	landIdx := -1
	if refuelIdx < 0 {
		for i, r := range q2.slots {
			if r != nil && r.Status == jet.InQueue {
				landIdx = i
				break
			}
		}
	}

	var r *jet.Record
	var cmd wire.Command
	var onSuccess func()

	switch {
	case refuelIdx >= 0:
		r = q2.slots[refuelIdx]
		cmd = wire.Command{Tag: wire.CmdRefuel}
		onSuccess = func() { r.Status = jet.Refueling }
	case landIdx >= 0:
		r = q2.slots[landIdx]
		cmd = wire.Command{Tag: wire.CmdStartLanding}
		onSuccess = func() {
			r.Status = jet.LandingCmdSent
			r.RunwayTicks = 0
		}
	default:
		return
	}

	if err := wire.WriteCommand(r.Handle.Write, cmd); err != nil {
		s.lg.Warn("dispatch write failed, jet remains queued", "jet", r.ID, "err", err)
		return
	}

	onSuccess()
	s.runwayBusy = true
	s.runwayIsSet = true
	s.runwayJet = r.ID
	s.runwayOrigin = Q2
	if r.FirstDispatchTS.IsZero() {
		r.FirstDispatchTS = now
	}
	s.contextSwitches++
	s.lg.Info("runway assigned from Q2", "jet", r.ID, "cmd", cmd.Tag)
}

// internal/scheduler/snapshot.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import "github.com/skywatch-atc/skywatch/internal/jet"

// JetSnapshot is a read-only view of one jet for display purposes (§4.6).
type JetSnapshot struct {
	ID     jet.ID
	Fuel   int
	Status jet.Status
}

// Snapshot is a point-in-time view of the whole scheduler state (§4.6).
type Snapshot struct {
	Queues       [3][]JetSnapshot
	RunwayBusy   bool
	RunwayJet    jet.ID
	RunwayIsSet  bool
	RunwayOrigin Index
	Q2Quantum    int
	Paused       bool
}

// Snapshot takes the lock and copies out display-relevant state.
func (s *State) Snapshot() Snapshot {
	s.lock()
	defer s.unlock()

	var snap Snapshot
	for qi := Index(0); qi < numQueues; qi++ {
		for _, r := range s.queues[qi].slots {
			if r == nil {
				continue
			}
			snap.Queues[qi] = append(snap.Queues[qi], JetSnapshot{ID: r.ID, Fuel: r.Fuel, Status: r.Status})
		}
	}
	snap.RunwayBusy = s.runwayBusy
	snap.RunwayJet = s.runwayJet
	snap.RunwayIsSet = s.runwayIsSet
	snap.RunwayOrigin = s.runwayOrigin
	snap.Q2Quantum = s.q2Quantum
	snap.Paused = s.paused
	return snap
}

// LiveCount returns the total number of jets currently tracked across all
// three queues, used by the reactor's termination condition (§4.3).
func (s *State) LiveCount() int {
	s.lock()
	defer s.unlock()
	return s.queues[Q1].count + s.queues[Q2].count + s.queues[Q3].count
}

// Counters returns the aggregated context-switch and runway-busy-tick
// counters (§4.6).
func (s *State) Counters() (contextSwitches, runwayBusyTicks int) {
	s.lock()
	defer s.unlock()
	return s.contextSwitches, s.runwayBusyTicks
}

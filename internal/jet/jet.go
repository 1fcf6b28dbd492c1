// internal/jet/jet.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package jet defines the per-jet data model (§3) and the controller-side
// channel handle used to talk to a jet worker process.
package jet

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// ID is the opaque, run-unique jet identity, built on github.com/google/uuid
// rather than the fixed-width CID scheme pkg/sim/cid.go uses for controller
// call signs, which doesn't fit an unbounded stream of arriving jets.
type ID = uuid.UUID

// NewID mints a fresh jet identity.
func NewID() ID {
	return uuid.New()
}

// Status is the jet's scheduling status (§3).
type Status int

const (
	InQueue Status = iota
	WaitingFuel
	LandingCmdSent
	Refueling
)

func (s Status) String() string {
	switch s {
	case InQueue:
		return "InQueue"
	case WaitingFuel:
		return "WaitingFuel"
	case LandingCmdSent:
		return "LandingCmdSent"
	case Refueling:
		return "Refueling"
	default:
		return "Unknown"
	}
}

// Handle is the controller's endpoint pair for one jet's channel, plus the
// OS process backing it so it can be reaped on cleanup: a spawned exec.Cmd
// paired with its StdinPipe/StdoutPipe handles.
type Handle struct {
	Read  io.ReadCloser
	Write io.WriteCloser
	Proc  *os.Process
}

// Close closes both channel endpoints. It does not reap the process; the
// caller (the reactor's cleanup path) does that with Proc.Wait after Close
// so a worker that is already exiting isn't blocked on a full pipe.
func (h *Handle) Close() {
	if h == nil {
		return
	}
	if h.Write != nil {
		h.Write.Close()
	}
	if h.Read != nil {
		h.Read.Close()
	}
}

// Record is one live jet's scheduling state (§3 Jet Record).
type Record struct {
	ID     ID
	Handle *Handle

	Fuel   int
	Status Status

	RunwayTicks  int // ticks consumed on current runway assignment (RR quantum)
	StandbyTicks int // ticks spent continuously in Q3 (aging)

	ArrivalTS            time.Time
	FirstDispatchTS      time.Time // zero value = unset
	AccumulatedWaitTicks int
}

// CompletedStats is a snapshot of one jet's lifecycle statistics captured
// at completion, before its slot is cleared (§4.2 completion path).
type CompletedStats struct {
	ID                   ID
	Turnaround           time.Duration
	Wait                 time.Duration
	Response             time.Duration
	CompletedAt          time.Time
}

// Capture derives end-of-life statistics from a Record. response falls
// back to turnaround when FirstDispatchTS was never set (§4.6).
func Capture(r *Record, now time.Time, tickDuration time.Duration) CompletedStats {
	turnaround := now.Sub(r.ArrivalTS)
	wait := time.Duration(r.AccumulatedWaitTicks) * tickDuration
	var response time.Duration
	if r.FirstDispatchTS.IsZero() {
		response = turnaround
	} else {
		response = r.FirstDispatchTS.Sub(r.ArrivalTS)
	}
	return CompletedStats{
		ID:          r.ID,
		Turnaround:  turnaround,
		Wait:        wait,
		Response:    response,
		CompletedAt: now,
	}
}

// ArrivalRequest is the payload carried on the arrival channel and the
// operator channel alike (§4.3): a request for a new jet with the given
// initial fuel.
type ArrivalRequest struct {
	InitialFuel int
}

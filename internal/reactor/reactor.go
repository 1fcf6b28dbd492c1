// internal/reactor/reactor.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package reactor implements the I/O reactor (§4.3): the single-threaded
// event loop that multiplexes the arrival channel, the operator channel,
// and every live jet's feedback channel, applying their effects to the
// scheduler state.
package reactor

import (
	"context"
	"sync"
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
	"github.com/skywatch-atc/skywatch/internal/logging"
	"github.com/skywatch-atc/skywatch/internal/scheduler"
	"github.com/skywatch-atc/skywatch/internal/wire"
)

// pollInterval bounds how long the reactor's select can go without
// re-checking the termination condition, mirroring the 100ms readiness
// wait of §4.3's original select()-based loop.
const pollInterval = 100 * time.Millisecond

// Spawner creates a jet worker process and returns its controller-side
// channel handle. It is supplied by the caller (cmd/skywatch) so the
// reactor itself stays agnostic of how workers are launched — spawning
// child processes is an external collaborator per §1.
type Spawner func(ctx context.Context, id jet.ID, initialFuel int) (*jet.Handle, error)

type feedbackMsg struct {
	id  jet.ID
	fb  wire.Feedback
	err error
}

// Reactor is the T-reactor main loop.
type Reactor struct {
	state    *scheduler.State
	registry *scheduler.CompletedRegistry
	lg       *logging.Logger
	spawn    Spawner

	arrivals chan jet.ArrivalRequest
	operator chan jet.ArrivalRequest
	feedback chan feedbackMsg

	mu      sync.Mutex
	readers map[jet.ID]*jet.Handle
}

// New creates a Reactor. The two inbound request channels are buffered to
// 64 entries each; jets report feedback over an internal fan-in channel
// sized generously so a burst of simultaneous feedback never blocks a
// worker's write.
func New(state *scheduler.State, registry *scheduler.CompletedRegistry, lg *logging.Logger, spawn Spawner) *Reactor {
	return &Reactor{
		state:    state,
		registry: registry,
		lg:       lg,
		spawn:    spawn,
		arrivals: make(chan jet.ArrivalRequest, 64),
		operator: make(chan jet.ArrivalRequest, 64),
		feedback: make(chan feedbackMsg, 256),
		readers:  make(map[jet.ID]*jet.Handle),
	}
}

// Arrivals returns the channel the arrival source (§C.2's schedule reader)
// writes ArrivalRequests to. Closing it signals "arrivals done" (§4.3).
func (r *Reactor) Arrivals() chan<- jet.ArrivalRequest { return r.arrivals }

// Operator returns the channel the operator console's new_jet command
// writes ArrivalRequests to (§4.5); it is never closed.
func (r *Reactor) Operator() chan<- jet.ArrivalRequest { return r.operator }

// Run drives the event loop until arrivals are done and no jets are live,
// or ctx is cancelled (§4.3 termination condition, §5 cancellation).
func (r *Reactor) Run(ctx context.Context) error {
	arrivals := r.arrivals
	arrivalsDone := false

	for {
		if arrivalsDone && r.state.LiveCount() == 0 {
			r.lg.Info("reactor: arrivals done and no live jets, exiting")
			return nil
		}

		select {
		case <-ctx.Done():
			r.drainOnShutdown()
			return ctx.Err()

		case req, ok := <-arrivals:
			if !ok {
				arrivalsDone = true
				arrivals = nil // disable this case for future iterations
				continue
			}
			r.handleArrival(ctx, req)

		case req := <-r.operator:
			r.handleArrival(ctx, req)

		case msg := <-r.feedback:
			r.handleFeedback(msg)

		case <-time.After(pollInterval):
			// idle: loop back around to re-check the termination condition
		}
	}
}

// handleArrival spawns a worker, registers it in the scheduler state, and
// starts its feedback-reading goroutine (§4.3: "spawn a jet worker and
// register it, insert into Q2").
func (r *Reactor) handleArrival(ctx context.Context, req jet.ArrivalRequest) {
	id := jet.NewID()
	handle, err := r.spawn(ctx, id, req.InitialFuel)
	if err != nil {
		r.lg.Errorf("failed to spawn jet worker: %v", err)
		return
	}

	rec := &jet.Record{
		ID:     id,
		Handle: handle,
		Fuel:   req.InitialFuel,
		Status: jet.InQueue,
	}
	if !r.state.InsertArrival(rec, time.Now()) {
		handle.Close()
		return
	}

	r.mu.Lock()
	r.readers[id] = handle
	r.mu.Unlock()

	go r.readFeedback(id, handle)
}

// readFeedback is the single per-jet reader goroutine; it preserves
// per-jet feedback ordering (§5: "single producer, single consumer on its
// channel") because it alone reads this jet's channel and forwards each
// message, in the order read, onto the shared FIFO feedback channel.
func (r *Reactor) readFeedback(id jet.ID, h *jet.Handle) {
	for {
		fb, err := wire.ReadFeedback(h.Read)
		r.feedback <- feedbackMsg{id: id, fb: fb, err: err}
		if err != nil {
			return
		}
		if fb.Tag == wire.FeedbackLanded {
			return
		}
	}
}

// handleFeedback applies one feedback message's effect to scheduler state
// (§4.3's handler table), all under the state lock via the State methods
// it calls.
func (r *Reactor) handleFeedback(msg feedbackMsg) {
	if msg.err != nil {
		r.lg.Warn("jet feedback channel closed unexpectedly, treating as crash", "jet", msg.id, "err", msg.err)
		r.completeAndReap(msg.id)
		return
	}

	switch msg.fb.Tag {
	case wire.FeedbackFuelLow:
		r.state.ApplyFuelLow(msg.id, int(msg.fb.Data))
	case wire.FeedbackEmergency:
		r.state.ApplyEmergency(msg.id, int(msg.fb.Data))
	case wire.FeedbackWaitingFuel:
		r.state.ApplyRefuelRequest(msg.id, int(msg.fb.Data))
	case wire.FeedbackRefueled:
		r.state.ApplyRefueled(msg.id, int(msg.fb.Data))
	case wire.FeedbackRefueling:
		r.state.ApplyRefueling(msg.id)
	case wire.FeedbackLanded:
		r.completeAndReap(msg.id)
	default:
		r.lg.Warn("unrecognized feedback tag", "jet", msg.id, "tag", msg.fb.Tag)
	}
}

// completeAndReap captures a jet's stats, clears its slot, and reaps its
// OS process (§4.2 completion path, §5 resource policy).
func (r *Reactor) completeAndReap(id jet.ID) {
	stats, ok := r.state.CaptureAndClear(id, time.Now())
	if ok {
		r.registry.Record(stats)
	}

	r.mu.Lock()
	h, ok := r.readers[id]
	delete(r.readers, id)
	r.mu.Unlock()

	if ok && h.Proc != nil {
		_, _ = h.Proc.Wait()
	}
}

// drainOnShutdown closes every live jet's channel endpoints and reaps its
// process (§5: "On shutdown, every jet's channel endpoints are closed, and
// each child worker is reaped").
func (r *Reactor) drainOnShutdown() {
	r.mu.Lock()
	handles := make(map[jet.ID]*jet.Handle, len(r.readers))
	for id, h := range r.readers {
		handles[id] = h
	}
	r.mu.Unlock()

	for id, h := range handles {
		h.Close()
		if h.Proc != nil {
			_, _ = h.Proc.Wait()
		}
		r.state.Clear(id)
		r.mu.Lock()
		delete(r.readers, id)
		r.mu.Unlock()
	}
}

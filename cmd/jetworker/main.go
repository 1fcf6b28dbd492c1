// cmd/jetworker/main.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Command jetworker is the external jet worker process (§4.4, §6). It is
// spawned by the controller's reactor with its initial fuel and jet id as
// positional arguments and talks the §6 wire protocol over its own
// stdin/stdout. Spawning and argument-passing are an external collaborator
// per §1; this binary is the thing spawned.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/skywatch-atc/skywatch/internal/wire"
)

const (
	waitingFuelThreshold = 25
	fuelLowThreshold     = 20
	emergencyThreshold   = 10
	refuelGain           = 75
)

func main() {
	landingSeconds := flag.Int("landing-seconds", 12, "landing command duration")
	refuelSeconds := flag.Int("refuel-seconds", 10, "refuel command duration")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: jetworker <initial_fuel> <jet_id>")
		os.Exit(1)
	}
	initialFuel, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid initial fuel %q: %v\n", args[0], err)
		os.Exit(1)
	}

	w := newWorker(initialFuel, time.Duration(*landingSeconds)*time.Second, time.Duration(*refuelSeconds)*time.Second)
	w.run()
}

type worker struct {
	mu        sync.Mutex
	fuel      int
	landing   bool
	refueling bool

	firedWaitingFuel bool
	firedFuelLow     bool
	firedEmergency   bool

	landingDur time.Duration
	refuelDur  time.Duration

	writeMu sync.Mutex
}

func newWorker(initialFuel int, landingDur, refuelDur time.Duration) *worker {
	return &worker{fuel: initialFuel, landingDur: landingDur, refuelDur: refuelDur}
}

// run drives the jet's lifecycle: a 1Hz fuel ticker races against a
// command reader fed by the controller (§4.4 "Jet internal timing").
func (w *worker) run() {
	cmds := make(chan wire.Command)
	go func() {
		defer close(cmds)
		for {
			cmd, err := wire.ReadCommand(os.Stdin)
			if err != nil {
				return
			}
			cmds <- cmd
		}
	}()

	exhausted := make(chan struct{})
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go w.tickFuel(ticker, exhausted)

	for {
		select {
		case cmd, ok := <-cmds:
			if !ok {
				return
			}
			if terminate := w.handleCommand(cmd); terminate {
				return
			}
		case <-exhausted:
			// Fuel reached 0 without a landing command: the jet
			// terminates and the controller sees EOF (§4.4).
			return
		}
	}
}

// tickFuel decrements fuel once per second unless the jet is landing or
// refueling, firing each edge-triggered feedback at most once per
// lifecycle (§4.4). WaitingFuel(25) necessarily fires before FuelLow(20)
// as fuel descends (§9).
func (w *worker) tickFuel(ticker *time.Ticker, exhausted chan<- struct{}) {
	for range ticker.C {
		w.mu.Lock()
		if w.landing || w.refueling {
			w.mu.Unlock()
			continue
		}
		w.fuel--
		fuel := w.fuel

		if !w.firedWaitingFuel && fuel <= waitingFuelThreshold {
			w.firedWaitingFuel = true
			w.mu.Unlock()
			w.send(wire.FeedbackWaitingFuel, fuel)
			w.mu.Lock()
		}
		if !w.firedFuelLow && fuel <= fuelLowThreshold {
			w.firedFuelLow = true
			w.mu.Unlock()
			w.send(wire.FeedbackFuelLow, fuel)
			w.mu.Lock()
		}
		if !w.firedEmergency && fuel <= emergencyThreshold {
			w.firedEmergency = true
			w.mu.Unlock()
			w.send(wire.FeedbackEmergency, fuel)
			w.mu.Lock()
		}

		done := fuel <= 0
		w.mu.Unlock()

		if done {
			select {
			case exhausted <- struct{}{}:
			default:
			}
			return
		}
	}
}

// handleCommand processes one controller command; it returns true if the
// worker should terminate afterward.
func (w *worker) handleCommand(cmd wire.Command) bool {
	switch cmd.Tag {
	case wire.CmdStartLanding:
		w.mu.Lock()
		w.landing = true
		w.mu.Unlock()

		time.Sleep(w.landingDur)

		w.mu.Lock()
		fuel := w.fuel
		w.mu.Unlock()
		w.send(wire.FeedbackLanded, fuel)
		return true

	case wire.CmdRefuel:
		w.mu.Lock()
		w.refueling = true
		fuel := w.fuel
		w.mu.Unlock()
		w.send(wire.FeedbackRefueling, fuel)

		time.Sleep(w.refuelDur)

		w.mu.Lock()
		w.fuel += refuelGain
		w.refueling = false
		fuel = w.fuel
		w.mu.Unlock()
		w.send(wire.FeedbackRefueled, fuel)
		return false

	case wire.CmdShutdown:
		return true

	default:
		return false
	}
}

func (w *worker) send(tag wire.FeedbackTag, data int) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	_ = wire.WriteFeedback(os.Stdout, wire.Feedback{Tag: tag, Data: int32(data)})
}

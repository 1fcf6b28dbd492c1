// internal/console/console.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package console implements the operator control interface (§4.5): a
// line-oriented command reader with an idle timeout so its loop can
// cooperate with global shutdown.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skywatch-atc/skywatch/internal/jet"
	"github.com/skywatch-atc/skywatch/internal/logging"
	"github.com/skywatch-atc/skywatch/internal/scheduler"
)

// idleTimeout matches §4.5's "1-second idle timeout" for the console read
// loop.
const idleTimeout = time.Second

// Console is the T-console operator interface.
type Console struct {
	state    *scheduler.State
	operator chan<- jet.ArrivalRequest
	out      io.Writer
	lg       *logging.Logger
	cancel   context.CancelFunc
	onStatus func()
}

// New creates a Console. onStatus is invoked for the "status" command to
// force a display snapshot (§4.5); cancel is called on "exit" to begin
// global shutdown (§5).
func New(state *scheduler.State, operator chan<- jet.ArrivalRequest, out io.Writer, lg *logging.Logger, cancel context.CancelFunc, onStatus func()) *Console {
	return &Console{state: state, operator: operator, out: out, lg: lg, cancel: cancel, onStatus: onStatus}
}

// Run reads one command per line from in until ctx is cancelled or in is
// exhausted. Lines arrive on a channel fed by a dedicated reader goroutine
// so the select can still observe ctx.Done() and the idle timeout.
func (c *Console) Run(ctx context.Context, in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			c.handle(strings.TrimSpace(line))
		case <-time.After(idleTimeout):
			// idle: loop back to re-check ctx.Done()
		}
	}
}

func (c *Console) handle(line string) {
	if line == "" {
		return
	}
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case "status":
		if c.onStatus != nil {
			c.onStatus()
		}

	case "new_jet":
		fuel, err := parseArg(fields, 1)
		if err != nil || fuel <= 0 {
			c.reply("new_jet requires a positive fuel argument")
			return
		}
		select {
		case c.operator <- jet.ArrivalRequest{InitialFuel: fuel}:
		default:
			c.reply("operator channel full, try again")
		}

	case "force_emergency":
		id, err := parseID(fields)
		if err != nil {
			c.reply(err.Error())
			return
		}
		c.state.ForceEmergency(id)

	case "boost_priority":
		id, err := parseID(fields)
		if err != nil {
			c.reply(err.Error())
			return
		}
		if !c.state.BoostPriority(id) {
			c.reply("boost_priority: jet not found")
		}

	case "change_quantum":
		n, err := parseArg(fields, 1)
		if err != nil || n <= 0 {
			c.reply("change_quantum requires a positive integer argument")
			return
		}
		c.state.SetQ2Quantum(n)

	case "pause_sim":
		c.state.SetPaused(true)

	case "resume_sim":
		c.state.SetPaused(false)

	case "exit":
		if c.cancel != nil {
			c.cancel()
		}

	default:
		c.reply(fmt.Sprintf("unrecognized command: %s", cmd))
	}
}

func (c *Console) reply(msg string) {
	if c.out != nil {
		fmt.Fprintln(c.out, msg)
	}
	c.lg.Warn("console command rejected", "message", msg)
}

func parseArg(fields []string, idx int) (int, error) {
	if len(fields) <= idx {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.Atoi(fields[idx])
}

func parseID(fields []string) (jet.ID, error) {
	if len(fields) < 2 {
		return jet.ID{}, fmt.Errorf("missing jet id argument")
	}
	id, err := uuid.Parse(fields[1])
	if err != nil {
		return jet.ID{}, fmt.Errorf("invalid jet id: %w", err)
	}
	return id, nil
}

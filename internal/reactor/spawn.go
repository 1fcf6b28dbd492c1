// internal/reactor/spawn.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package reactor

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

// NewProcessSpawner returns a Spawner that launches workerPath as a child
// process per §6's invocation contract, adapted to Go's os/exec idiom: the
// controller's read/write channel endpoints are the worker's own
// stdout/stdin pipes rather than numeric fds passed across a fork (see
// SPEC_FULL.md's "Channel transport" entry), pairing exec.Cmd with
// StdinPipe/StdoutPipe. landingSeconds/refuelSeconds are forwarded as the
// worker's own flags so every jet in a run shares one operator-configured
// timing (§4.4).
func NewProcessSpawner(workerPath string, landingSeconds, refuelSeconds int) Spawner {
	return func(_ context.Context, id jet.ID, initialFuel int) (*jet.Handle, error) {
		cmd := exec.Command(workerPath,
			"-landing-seconds", fmt.Sprint(landingSeconds),
			"-refuel-seconds", fmt.Sprint(refuelSeconds),
			fmt.Sprint(initialFuel), id.String())

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("jet %s: stdin pipe: %w", id, err)
		}
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("jet %s: stdout pipe: %w", id, err)
		}

		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("jet %s: start worker: %w", id, err)
		}

		return &jet.Handle{
			Read:  stdout,
			Write: stdin,
			Proc:  cmd.Process,
		}, nil
	}
}

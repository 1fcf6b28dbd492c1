// internal/arrivals/arrivals.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package arrivals is the out-of-core "jet generator" (§1, §C.2): it feeds
// the reactor's arrival channel and is a thin, swappable adapter, not part
// of the scheduler core itself.
package arrivals

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

// Entry is one scheduled arrival: a jet with the given initial fuel,
// arriving delay seconds after the previous entry (or after t=0 for the
// first entry).
type Entry struct {
	Fuel  int
	Delay time.Duration
}

// ParseSchedule reads a newline-delimited "fuel,delay_seconds" schedule
// (§C.2). Blank lines and lines starting with "#" are skipped.
func ParseSchedule(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid schedule line %q: want fuel,delay_seconds", line)
		}
		fuel, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid fuel in %q: %w", line, err)
		}
		delaySeconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid delay in %q: %w", line, err)
		}
		entries = append(entries, Entry{Fuel: fuel, Delay: time.Duration(delaySeconds) * time.Second})
	}
	return entries, scanner.Err()
}

// Default synthesizes a small arrival schedule for running SkyWatch
// without an explicit schedule file: a steady trickle of normal arrivals
// plus one jet started low on fuel to exercise the emergency path.
func Default() []Entry {
	return []Entry{
		{Fuel: 60, Delay: 0},
		{Fuel: 60, Delay: 1 * time.Second},
		{Fuel: 60, Delay: 1 * time.Second},
		{Fuel: 18, Delay: 3 * time.Second},
		{Fuel: 40, Delay: 5 * time.Second},
	}
}

// Run feeds entries onto out in order, respecting each entry's delay, then
// closes out to signal "arrivals done" (§4.3), including when ctx is
// cancelled before the schedule finishes.
func Run(ctx context.Context, entries []Entry, out chan<- jet.ArrivalRequest) {
	defer close(out)
	for _, e := range entries {
		if e.Delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(e.Delay):
			}
		}
		select {
		case <-ctx.Done():
			return
		case out <- jet.ArrivalRequest{InitialFuel: e.Fuel}:
		}
	}
}

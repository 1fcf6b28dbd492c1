// cmd/skywatch/main.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Command skywatch is the ATC scheduler controller: it owns the scheduler
// state and runs T-reactor, T-tick, T-display, and T-console as a
// supervised goroutine group (§5).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skywatch-atc/skywatch/internal/arrivals"
	"github.com/skywatch-atc/skywatch/internal/console"
	"github.com/skywatch-atc/skywatch/internal/display"
	"github.com/skywatch-atc/skywatch/internal/logging"
	"github.com/skywatch-atc/skywatch/internal/reactor"
	"github.com/skywatch-atc/skywatch/internal/scheduler"
)

func main() {
	runID := flag.String("run-id", defaultRunID(), "identifies this run's log file")
	logDir := flag.String("log-dir", ".", "directory for the run log")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	q2Quantum := flag.Int("q2-quantum", scheduler.DefaultQ2Quantum, "initial Q2 RR quantum, in ticks")
	agingThreshold := flag.Int("aging-threshold", scheduler.DefaultAgingThreshold, "ticks in Q3 before aging promotion")
	arrivalsPath := flag.String("arrivals", "", "optional newline-delimited fuel,delay_seconds arrival schedule")
	workerPath := flag.String("worker", "jetworker", "path to the jetworker binary")
	landingSeconds := flag.Int("landing-seconds", 12, "landing command duration, forwarded to every jetworker")
	refuelSeconds := flag.Int("refuel-seconds", 10, "refuel command duration, forwarded to every jetworker")
	flag.Parse()

	lg, err := logging.New(*runID, *logDir, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skywatch: cannot open log sink: %v\n", err)
		os.Exit(1)
	}

	state := scheduler.New(lg, time.Second)
	state.SetQ2Quantum(*q2Quantum)
	state.SetAgingThreshold(*agingThreshold)

	registry := scheduler.NewCompletedRegistry(lg)

	spawn := reactor.NewProcessSpawner(*workerPath, *landingSeconds, *refuelSeconds)
	react := reactor.New(state, registry, lg, spawn)

	disp := display.New(state, registry, os.Stdout, lg)
	force := make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			lg.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	con := console.New(state, react.Operator(), os.Stdout, lg, cancel, func() {
		select {
		case force <- struct{}{}:
		default:
		}
	})

	entries, err := loadSchedule(*arrivalsPath)
	if err != nil {
		lg.Errorf("failed to load arrival schedule: %v", err)
		os.Exit(1)
	}

	start := time.Now()
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		err := react.Run(egCtx)
		// The reactor's own termination condition (arrivals done, no live
		// jets) ends the run even without a signal or "exit" command;
		// cancel so T-tick/T-display/T-console unwind too (§5).
		cancel()
		return err
	})
	eg.Go(func() error { runTickEngine(egCtx, state); return nil })
	eg.Go(func() error { disp.Run(egCtx, force); return nil })
	eg.Go(func() error { con.Run(egCtx, os.Stdin); return nil })
	eg.Go(func() error { arrivals.Run(egCtx, entries, react.Arrivals()); return nil })

	_ = eg.Wait()

	totalSeconds := int(time.Since(start) / time.Second)
	disp.PrintSummary(totalSeconds)
}

// runTickEngine drives T-tick at 1Hz until ctx is cancelled (§5).
func runTickEngine(ctx context.Context, state *scheduler.State) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			state.Tick(now)
		}
	}
}

func loadSchedule(path string) ([]arrivals.Entry, error) {
	if path == "" {
		return arrivals.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return arrivals.ParseSchedule(f)
}

func defaultRunID() string {
	return fmt.Sprintf("run-%d", time.Now().Unix())
}

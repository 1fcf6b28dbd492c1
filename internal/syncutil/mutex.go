// internal/syncutil/mutex.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package syncutil provides the state lock used by the scheduler and the
// completed-jets statistics table: a sync.Mutex that traces acquisition,
// warns on long holds, and dumps CPU/goroutine diagnostics if a lock can't
// be acquired within a timeout — useful given §5's requirement that a
// mutator hold the state lock for the whole duration of a coherent tick
// step or handler.
package syncutil

import (
	gomath "math"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"

	"github.com/skywatch-atc/skywatch/internal/logging"
)

const stuckLockWarning = 10 * time.Second

var heldMutexesMu sync.Mutex
var heldMutexes = make(map[*TracedMutex]struct{})

// TracedMutex is a sync.Mutex with acquisition tracing for diagnosing lock
// contention in the reactor/tick/console/display fan-in.
type TracedMutex struct {
	mu  sync.Mutex
	acq time.Time
}

func (l *TracedMutex) Lock(lg *logging.Logger) {
	tryTime := time.Now()

	if !l.mu.TryLock() {
		locked := make(chan struct{}, 1)
		go func() {
			l.mu.Lock()
			locked <- struct{}{}
		}()

		select {
		case <-locked:
		case <-time.After(stuckLockWarning):
			lg.Error("unable to acquire state lock after timeout", "waited", stuckLockWarning)
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			usage, _ := cpu.Percent(time.Second, false)
			cpuPct := 0.0
			if len(usage) > 0 {
				cpuPct = usage[0]
			}
			lg.Errorf("cpu=%d%% alloc=%dMB sys=%dMB goroutines=%d",
				int(gomath.Round(cpuPct)), m.Alloc/(1024*1024), m.Sys/(1024*1024), runtime.NumGoroutine())
			<-locked
		}
	}

	heldMutexesMu.Lock()
	heldMutexes[l] = struct{}{}
	heldMutexesMu.Unlock()

	l.acq = time.Now()
	if w := l.acq.Sub(tryTime); w > time.Second {
		lg.Warn("long wait to acquire state lock", "wait", w)
	}
}

func (l *TracedMutex) Unlock(lg *logging.Logger) {
	heldMutexesMu.Lock()
	defer heldMutexesMu.Unlock()

	if _, ok := heldMutexes[l]; !ok {
		lg.Error("state lock unlocked while not held")
	}
	delete(heldMutexes, l)

	if d := time.Since(l.acq); d > time.Second {
		lg.Warn("state lock held for over 1 second", "held", d)
	}

	l.acq = time.Time{}
	l.mu.Unlock()
}

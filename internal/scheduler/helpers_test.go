// internal/scheduler/helpers_test.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"bytes"
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

// nopReadWriteCloser adapts a bytes.Buffer into the io.ReadWriteCloser a
// jet.Handle expects, so dispatch can write a command without a real
// worker process on the other end.
type nopReadWriteCloser struct {
	bytes.Buffer
}

func (nopReadWriteCloser) Close() error { return nil }

func newTestHandle() *jet.Handle {
	rwc := &nopReadWriteCloser{}
	return &jet.Handle{Read: rwc, Write: rwc}
}

func newTestState() *State {
	return New(nil, time.Second)
}

func newTestRecord(fuel int) *jet.Record {
	return &jet.Record{ID: jet.NewID(), Handle: newTestHandle(), Fuel: fuel, Status: jet.InQueue}
}

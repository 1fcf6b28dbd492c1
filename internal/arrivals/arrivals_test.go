// internal/arrivals/arrivals_test.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package arrivals

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

func TestParseSchedule(t *testing.T) {
	input := "60,0\n# a comment\n\n40,5\n18,3\n"
	entries, err := ParseSchedule(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	want := []Entry{
		{Fuel: 60, Delay: 0},
		{Fuel: 40, Delay: 5 * time.Second},
		{Fuel: 18, Delay: 3 * time.Second},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, e, want[i])
		}
	}
}

func TestParseScheduleRejectsMalformedLine(t *testing.T) {
	_, err := ParseSchedule(strings.NewReader("60\n"))
	if err == nil {
		t.Fatal("expected an error for a line missing the delay field")
	}
}

func TestParseScheduleRejectsNonNumericFuel(t *testing.T) {
	_, err := ParseSchedule(strings.NewReader("abc,5\n"))
	if err == nil {
		t.Fatal("expected an error for a non-numeric fuel field")
	}
}

func TestRunDeliversAllEntriesInOrder(t *testing.T) {
	entries := []Entry{{Fuel: 10, Delay: 0}, {Fuel: 20, Delay: 0}, {Fuel: 30, Delay: 0}}
	out := make(chan jet.ArrivalRequest, len(entries))

	Run(context.Background(), entries, out)

	var got []int
	for req := range out {
		got = append(got, req.InitialFuel)
	}
	if len(got) != 3 || got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Errorf("got %v, want [10 20 30] in order", got)
	}
}

func TestRunClosesOutOnCancellation(t *testing.T) {
	entries := []Entry{{Fuel: 10, Delay: time.Hour}} // long enough to guarantee cancellation wins
	out := make(chan jet.ArrivalRequest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		Run(ctx, entries, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return promptly after ctx was already cancelled")
	}

	if _, ok := <-out; ok {
		t.Error("out should be closed, not carrying an entry, after cancellation")
	}
}

func TestDefaultIsNonEmpty(t *testing.T) {
	if len(Default()) == 0 {
		t.Error("Default() should synthesize at least one arrival")
	}
}

// internal/scheduler/queue_test.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"testing"

	"github.com/skywatch-atc/skywatch/internal/jet"
)

func TestQueuePutFindClear(t *testing.T) {
	q := &queue{}
	r := &jet.Record{ID: jet.NewID()}

	idx := q.firstFree()
	if idx != 0 {
		t.Fatalf("firstFree on empty queue = %d, want 0", idx)
	}
	q.put(idx, r)
	if q.count != 1 {
		t.Errorf("count after put = %d, want 1", q.count)
	}

	found := q.findSlot(r.ID)
	if found != idx {
		t.Errorf("findSlot = %d, want %d", found, idx)
	}

	q.clear(idx)
	if q.count != 0 {
		t.Errorf("count after clear = %d, want 0", q.count)
	}
	if q.findSlot(r.ID) != -1 {
		t.Error("findSlot should return -1 after clear")
	}
}

func TestQueueFull(t *testing.T) {
	q := &queue{}
	for i := 0; i < QueueCapacity; i++ {
		idx := q.firstFree()
		if idx < 0 {
			t.Fatalf("queue reported full before reaching capacity, at i=%d", i)
		}
		q.put(idx, &jet.Record{ID: jet.NewID()})
	}
	if q.firstFree() != -1 {
		t.Error("firstFree should report -1 once the queue is at capacity")
	}
}

func TestQueueClearIsIdempotentOnEmptySlot(t *testing.T) {
	q := &queue{}
	q.clear(0) // no panic, no negative count
	if q.count != 0 {
		t.Errorf("count = %d, want 0", q.count)
	}
}

func TestIndexString(t *testing.T) {
	tests := []struct {
		idx  Index
		want string
	}{
		{Q1, "Q1"},
		{Q2, "Q2"},
		{Q3, "Q3"},
		{numQueues, "Q?"},
	}
	for _, tt := range tests {
		if got := tt.idx.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.idx, got, tt.want)
		}
	}
}

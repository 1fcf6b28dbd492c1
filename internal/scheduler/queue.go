// internal/scheduler/queue.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import "github.com/skywatch-atc/skywatch/internal/jet"

// QueueCapacity is the per-queue slot count (§3: "capacity ≥ 20 each").
const QueueCapacity = 20

// Index names the three priority tiers (§3/GLOSSARY).
type Index int

const (
	Q1 Index = iota // SRTF emergency tier
	Q2               // RR normal-arrival tier
	Q3               // FCFS standby/aging tier
	numQueues
)

func (i Index) String() string {
	switch i {
	case Q1:
		return "Q1"
	case Q2:
		return "Q2"
	case Q3:
		return "Q3"
	default:
		return "Q?"
	}
}

// queue is a fixed-capacity slot table (§9: "slot tables vs. dynamic
// sequences" — stable positions, trivial scan ordering). A nil slot is
// free; slot identity is stable while a jet lives in it.
type queue struct {
	slots [QueueCapacity]*jet.Record
	count int
}

// findSlot returns the slot index holding id, or -1.
func (q *queue) findSlot(id jet.ID) int {
	for i, r := range q.slots {
		if r != nil && r.ID == id {
			return i
		}
	}
	return -1
}

// firstFree returns the first free slot index, or -1 if full.
func (q *queue) firstFree() int {
	for i, r := range q.slots {
		if r == nil {
			return i
		}
	}
	return -1
}

// put occupies slot idx with r, maintaining count.
func (q *queue) put(idx int, r *jet.Record) {
	if q.slots[idx] == nil {
		q.count++
	}
	q.slots[idx] = r
}

// clear frees slot idx, maintaining count.
func (q *queue) clear(idx int) {
	if q.slots[idx] != nil {
		q.slots[idx] = nil
		q.count--
	}
}

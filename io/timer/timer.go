// SPDX-License-Identifier: Unlicense OR MIT

/*
Package timer implements deferred callbacks on a logical clock.

A Queue never starts goroutines. Its owner advances the clock from
the thread that runs its event loop, and due callbacks run
synchronously from Advance, in deadline order.
*/
package timer

import (
	"time"

	"github.com/google/btree"
)

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether
	// the call stopped the timer, and false if the timer already
	// fired or was stopped.
	Stop() bool
}

// Scheduler schedules callbacks.
type Scheduler interface {
	// AfterFunc arranges for f to be called once d has elapsed
	// on the scheduler's clock.
	AfterFunc(d time.Duration, f func()) Timer
}

// Queue is a Scheduler driven by explicit clock advances.
// The zero value is ready to use, with its clock at zero.
type Queue struct {
	now     time.Duration
	seq     uint64
	pending *btree.BTreeG[*entry]
}

type entry struct {
	q    *Queue
	when time.Duration
	// seq breaks ties between equal deadlines.
	seq  uint64
	f    func()
	done bool
}

// degree of the pending tree. The queue rarely holds more than
// a handful of timers.
const degree = 4

func lessEntry(a, b *entry) bool {
	if a.when != b.when {
		return a.when < b.when
	}
	return a.seq < b.seq
}

func (q *Queue) init() {
	if q.pending == nil {
		q.pending = btree.NewG(degree, lessEntry)
	}
}

// AfterFunc implements Scheduler. Negative durations are treated
// as zero.
func (q *Queue) AfterFunc(d time.Duration, f func()) Timer {
	q.init()
	if d < 0 {
		d = 0
	}
	q.seq++
	e := &entry{q: q, when: q.now + d, seq: q.seq, f: f}
	q.pending.ReplaceOrInsert(e)
	return e
}

// Advance moves the clock forward to now and runs every callback
// due at or before it. Callbacks observe the clock at their own
// deadline, so timers they schedule are relative to it. The clock
// never moves backwards. Advance returns the number of callbacks run.
func (q *Queue) Advance(now time.Duration) int {
	n := 0
	for q.pending != nil {
		e, ok := q.pending.Min()
		if !ok || e.when > now {
			break
		}
		q.pending.DeleteMin()
		e.done = true
		if e.when > q.now {
			q.now = e.when
		}
		e.f()
		n++
	}
	if now > q.now {
		q.now = now
	}
	return n
}

// Now returns the current clock value.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Next returns the deadline of the earliest pending timer.
func (q *Queue) Next() (time.Duration, bool) {
	if q.pending == nil {
		return 0, false
	}
	e, ok := q.pending.Min()
	if !ok {
		return 0, false
	}
	return e.when, true
}

// Len returns the number of pending timers.
func (q *Queue) Len() int {
	if q.pending == nil {
		return 0
	}
	return q.pending.Len()
}

func (e *entry) Stop() bool {
	if e.done {
		return false
	}
	e.done = true
	e.q.pending.Delete(e)
	return true
}

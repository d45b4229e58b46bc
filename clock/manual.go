// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package clock

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by explicit calls to Advance.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	m   *Manual
	due time.Duration
	seq int
	f   func()
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	t := &manualTimer{m: m, due: m.now + d, seq: m.seq, f: f}
	m.seq++
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	for i, p := range t.m.pending {
		if p == t {
			t.m.pending = append(t.m.pending[:i], t.m.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, running every timer that falls due
// in order of due time. Timers scheduled by callbacks run too if they fall
// inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		t := m.popDue(end)
		if t == nil {
			break
		}
		m.now = t.due
		t.f()
	}
	m.now = end
}

func (m *Manual) popDue(end time.Duration) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.due != b.due {
			return a.due < b.due
		}
		return a.seq < b.seq
	})
	t := m.pending[0]
	if t.due > end {
		return nil
	}
	m.pending = m.pending[1:]
	return t
}

// Now returns the elapsed time since the clock was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	return len(m.pending)
}

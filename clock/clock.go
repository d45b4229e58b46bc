// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package clock

import "time"

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Group tracks timers scheduled through it so they can be cancelled together.
// It is not safe for concurrent use; callers own it from one goroutine.
type Group struct {
	sched  Scheduler
	next   int
	timers map[int]Timer
}

func NewGroup(sched Scheduler) *Group {
	return &Group{sched: sched, timers: make(map[int]Timer)}
}

// AfterFunc schedules f and remembers the timer until it fires or is stopped.
func (g *Group) AfterFunc(d time.Duration, f func()) Timer {
	id := g.next
	g.next++

	t := g.sched.AfterFunc(d, func() {
		delete(g.timers, id)
		f()
	})
	g.timers[id] = t
	return t
}

// Stop cancels every pending timer and returns how many were cancelled.
func (g *Group) Stop() int {
	stopped := 0
	for id, t := range g.timers {
		if t.Stop() {
			stopped++
		}
		delete(g.timers, id)
	}
	return stopped
}

// Len returns the number of pending timers.
func (g *Group) Len() int {
	return len(g.timers)
}

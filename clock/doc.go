// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package clock schedules delayed callbacks for the quiz core.

The quiz and the wheel never block: every timed step is "run this callback
after d". Scheduler is the only contract they depend on.

# Implementations

  - Manual: a deterministic clock for tests. Nothing fires until Advance is
    called, and callbacks run synchronously on the caller's goroutine.
  - Loop: a single-goroutine event loop for real hosts. Timer callbacks and
    work submitted with Do run one at a time on the loop goroutine.

# Groups

Group tracks every timer it schedules so a screen can cancel all of its
pending work in one call:

	g := clock.NewGroup(sched)
	g.AfterFunc(300*time.Millisecond, reveal)
	// later, on reset
	g.Stop()

A timer stopped through Stop never runs its callback, even on a Loop where
the callback may already be queued.
*/
package clock

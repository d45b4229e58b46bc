// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package clock

import (
	"context"
	"testing"
	"time"
)

func TestManual_FiresInDueOrder(t *testing.T) {
	m := NewManual()
	var order []string

	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(15 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("expected only a to fire, got %v", order)
	}

	m.Advance(100 * time.Millisecond)
	if got := len(order); got != 3 {
		t.Fatalf("expected 3 callbacks, got %d", got)
	}
	if order[1] != "b" || order[2] != "c" {
		t.Errorf("wrong order: %v", order)
	}
	if m.Now() != 115*time.Millisecond {
		t.Errorf("expected now 115ms, got %v", m.Now())
	}
}

func TestManual_ChainedTimersWithinWindow(t *testing.T) {
	m := NewManual()
	ticks := 0

	var step func()
	step = func() {
		ticks++
		if ticks < 10 {
			m.AfterFunc(50*time.Millisecond, step)
		}
	}
	m.AfterFunc(50*time.Millisecond, step)

	m.Advance(500 * time.Millisecond)
	if ticks != 10 {
		t.Errorf("expected 10 ticks, got %d", ticks)
	}
	if m.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", m.Pending())
	}
}

func TestManual_Stop(t *testing.T) {
	m := NewManual()
	fired := false

	timer := m.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("expected Stop to report pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}

	m.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestGroup_StopCancelsAll(t *testing.T) {
	m := NewManual()
	g := NewGroup(m)
	fired := 0

	g.AfterFunc(10*time.Millisecond, func() { fired++ })
	g.AfterFunc(20*time.Millisecond, func() { fired++ })
	g.AfterFunc(30*time.Millisecond, func() { fired++ })

	m.Advance(15 * time.Millisecond)
	if g.Len() != 2 {
		t.Fatalf("expected 2 pending timers, got %d", g.Len())
	}

	if n := g.Stop(); n != 2 {
		t.Errorf("expected 2 stopped timers, got %d", n)
	}
	m.Advance(time.Second)

	if fired != 1 {
		t.Errorf("expected 1 callback, got %d", fired)
	}
	if g.Stop() != 0 {
		t.Error("Stop on empty group should be a no-op")
	}
}

func TestLoop_DoRunsOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(8)
	go l.Run(ctx)

	counter := 0
	for i := 0; i < 100; i++ {
		if err := l.Do(ctx, func() { counter++ }); err != nil {
			t.Fatal(err)
		}
	}
	if counter != 100 {
		t.Errorf("expected 100, got %d", counter)
	}
}

func TestLoop_TimerFiresAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(8)
	go l.Run(ctx)

	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}

	stopped := false
	var timer Timer
	l.Do(ctx, func() {
		timer = l.AfterFunc(20*time.Millisecond, func() { stopped = true })
	})
	l.Do(ctx, func() { timer.Stop() })

	time.Sleep(60 * time.Millisecond)
	l.Do(ctx, func() {
		if stopped {
			t.Error("stopped timer fired")
		}
	})
}

func TestLoop_ClosedAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(1)

	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	if err := l.Do(context.Background(), func() {}); err != ErrLoopClosed {
		t.Errorf("expected ErrLoopClosed, got %v", err)
	}
}

func TestLoop_DoSkipsCancelledWork(t *testing.T) {
	l := NewLoop(8)

	// The loop is not running yet, so the work stays queued until after
	// the caller has given up.
	reqCtx, cancelReq := context.WithCancel(context.Background())
	cancelReq()
	ran := false
	if err := l.Do(reqCtx, func() { ran = true }); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	if err := l.Do(ctx, func() {
		if ran {
			t.Error("work ran after its context was cancelled")
		}
	}); err != nil {
		t.Fatal(err)
	}
}

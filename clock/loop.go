// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var ErrLoopClosed = errors.New("loop closed")

// Loop serialises work onto a single goroutine. Timer callbacks scheduled
// through AfterFunc are posted to the same goroutine when they fire.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 64
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run processes work until ctx is cancelled. It must be called exactly once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.tasks:
			f()
		}
	}
}

// Post queues f without waiting for it to run.
func (l *Loop) Post(f func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	case l.tasks <- f:
		return nil
	}
}

// Do runs f on the loop goroutine and waits for it to return. If ctx is
// done before f starts, f never runs.
func (l *Loop) Do(ctx context.Context, f func()) error {
	finished := make(chan struct{})
	var skipped error
	err := l.Post(func() {
		defer close(finished)
		if err := ctx.Err(); err != nil {
			skipped = err
			return
		}
		f()
	})
	if err != nil {
		return err
	}

	select {
	case <-finished:
		return skipped
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

type loopTimer struct {
	t       *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.t.Stop()
	return true
}

func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		// The callback may already be queued when Stop is called, so the
		// flag is checked again on the loop goroutine.
		_ = l.Post(func() {
			if lt.stopped.Swap(true) {
				return
			}
			f()
		})
	})
	return lt
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wheel

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/danielhkuo/personality-quiz/clock"
)

const (
	StepInterval = 50 * time.Millisecond
	SpinDuration = 5000 * time.Millisecond
)

var ErrNoSegments = errors.New("wheel needs at least one segment")

// Segment is one wedge of the wheel. Segments are indexed like personalities.
type Segment struct {
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
}

// Wheel holds the displayed angle and at most one in-flight spin.
// It is not safe for concurrent use; drive it from the scheduler's goroutine.
type Wheel struct {
	segments []Segment
	sched    clock.Scheduler
	rng      *rand.Rand

	stepInterval time.Duration
	duration     time.Duration
	onStep       func(angle float64)

	angle float64
	spin  *spin
}

type spin struct {
	target   int
	start    float64
	rotation float64
	elapsed  time.Duration
	timer    clock.Timer
	onDone   func(target int)
}

type Option func(*Wheel)

// WithRand sets the source used to pick stop angles.
func WithRand(r *rand.Rand) Option {
	return func(w *Wheel) { w.rng = r }
}

// WithStepObserver is called with the normalized angle after every update.
func WithStepObserver(f func(angle float64)) Option {
	return func(w *Wheel) { w.onStep = f }
}

// WithTiming overrides the step interval and total spin duration.
func WithTiming(step, duration time.Duration) Option {
	return func(w *Wheel) {
		if step > 0 {
			w.stepInterval = step
		}
		if duration > 0 {
			w.duration = duration
		}
	}
}

func New(segments []Segment, sched clock.Scheduler, opts ...Option) (*Wheel, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	w := &Wheel{
		segments:     append([]Segment(nil), segments...),
		sched:        sched,
		stepInterval: StepInterval,
		duration:     SpinDuration,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return w, nil
}

func (w *Wheel) Segments() []Segment {
	return append([]Segment(nil), w.segments...)
}

func (w *Wheel) Len() int {
	return len(w.segments)
}

// Angle returns the displayed angle in [0, 360).
func (w *Wheel) Angle() float64 {
	return w.angle
}

// SegmentIndex returns the segment currently under the indicator.
func (w *Wheel) SegmentIndex() int {
	return SegmentIndexAt(len(w.segments), w.angle)
}

func (w *Wheel) Spinning() bool {
	return w.spin != nil
}

// Elapsed returns how far into the current spin the wheel is.
func (w *Wheel) Elapsed() time.Duration {
	if w.spin == nil {
		return 0
	}
	return w.spin.elapsed
}

func (w *Wheel) setAngle(degrees float64) {
	w.angle = Normalize(degrees)
	if w.onStep != nil {
		w.onStep(w.angle)
	}
}

// SpinTo starts spinning towards segment target and calls onDone with it
// once the wheel stops. An out-of-range target is ignored and SpinTo
// returns false. A spin already in flight is cancelled without completing.
func (w *Wheel) SpinTo(target int, onDone func(target int)) bool {
	if target < 0 || target >= len(w.segments) {
		return false
	}
	w.Cancel()

	offset := TargetOffset(len(w.segments), target, w.rng.Float64())
	s := &spin{
		target:   target,
		start:    w.angle,
		rotation: Rotation(w.angle, offset),
		onDone:   onDone,
	}
	w.spin = s
	w.step(s)
	return true
}

func (w *Wheel) step(s *spin) {
	if w.spin != s {
		return
	}
	if s.elapsed >= w.duration {
		w.finish(s)
		return
	}

	w.setAngle(s.start + EaseInOutQuad(
		float64(s.elapsed),
		0,
		s.rotation,
		float64(w.duration),
	))

	s.timer = w.sched.AfterFunc(w.stepInterval, func() {
		s.elapsed += w.stepInterval
		w.step(s)
	})
}

func (w *Wheel) finish(s *spin) {
	w.spin = nil
	if s.timer != nil {
		s.timer.Stop()
	}
	w.setAngle(s.start + s.rotation)

	if s.onDone != nil {
		s.onDone(s.target)
	}
}

// Skip ends the current spin at its target and completes it. It reports
// whether a spin was in flight.
func (w *Wheel) Skip() bool {
	if w.spin == nil {
		return false
	}
	w.finish(w.spin)
	return true
}

// Cancel stops the current spin without completing it.
func (w *Wheel) Cancel() bool {
	s := w.spin
	if s == nil {
		return false
	}
	w.spin = nil
	if s.timer != nil {
		s.timer.Stop()
	}
	return true
}

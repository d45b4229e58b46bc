// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wheel

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/danielhkuo/personality-quiz/clock"
)

func fourSegments() []Segment {
	return []Segment{{Label: "A"}, {Label: "B"}, {Label: "C"}, {Label: "D"}}
}

func newTestWheel(t *testing.T, seed uint64, segments []Segment, opts ...Option) (*Wheel, *clock.Manual) {
	t.Helper()
	m := clock.NewManual()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(seed, seed+1)))}, opts...)
	w, err := New(segments, m, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return w, m
}

func TestNew_RequiresSegments(t *testing.T) {
	if _, err := New(nil, clock.NewManual()); err != ErrNoSegments {
		t.Errorf("expected ErrNoSegments, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-720, 0},
		{1800 + 225.5, 225.5},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTargetOffset_StaysInsideArcWithMargin(t *testing.T) {
	for _, r := range []float64{0, 0.25, 0.5, 0.999999} {
		got := TargetOffset(4, 2, r)
		if got < 181 || got > 269 {
			t.Errorf("r=%v: offset %v outside [181, 269]", r, got)
		}
	}

	// Narrow arcs shrink the margin instead of leaving the arc
	for _, r := range []float64{0, 0.5, 0.999999} {
		got := TargetOffset(360, 10, r)
		if got <= 10 || got >= 11 {
			t.Errorf("r=%v: offset %v outside (10, 11)", r, got)
		}
	}
}

func TestRotation_LandsOnOffsetFromAnyStart(t *testing.T) {
	for _, start := range []float64{0, 45, 200, 359.5} {
		rot := Rotation(start, 225)
		if rot < SpinRounds*360 {
			t.Errorf("start=%v: rotation %v shorter than %d rounds", start, rot, SpinRounds)
		}
		if got := Normalize(start + rot); math.Abs(got-225) > 1e-9 {
			t.Errorf("start=%v: landed at %v, want 225", start, got)
		}
	}
}

func TestEaseInOutQuad(t *testing.T) {
	d := float64(SpinDuration)
	if got := EaseInOutQuad(0, 10, 100, d); got != 10 {
		t.Errorf("start: got %v", got)
	}
	if got := EaseInOutQuad(d/2, 10, 100, d); math.Abs(got-60) > 1e-9 {
		t.Errorf("midpoint: got %v", got)
	}
	if got := EaseInOutQuad(d, 10, 100, d); math.Abs(got-110) > 1e-9 {
		t.Errorf("end: got %v", got)
	}

	// Slow at the ends, fast in the middle
	early := EaseInOutQuad(d*0.1, 0, 100, d) - EaseInOutQuad(0, 0, 100, d)
	middle := EaseInOutQuad(d*0.55, 0, 100, d) - EaseInOutQuad(d*0.45, 0, 100, d)
	if early >= middle {
		t.Errorf("expected middle step %v to exceed early step %v", middle, early)
	}
}

func TestSpinTo_LandsInTargetSegment(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		w, m := newTestWheel(t, seed, fourSegments())

		done := -1
		calls := 0
		if !w.SpinTo(2, func(target int) {
			done = target
			calls++
		}) {
			t.Fatal("SpinTo rejected a valid target")
		}

		m.Advance(SpinDuration + time.Second)

		if calls != 1 || done != 2 {
			t.Fatalf("seed %d: expected one completion with 2, got %d calls, target %d", seed, calls, done)
		}
		angle := w.Angle()
		if angle < 181 || angle > 269 {
			t.Errorf("seed %d: final angle %v outside [181, 269]", seed, angle)
		}
		if w.SegmentIndex() != 2 {
			t.Errorf("seed %d: segment index %d", seed, w.SegmentIndex())
		}
		if m.Pending() != 0 {
			t.Errorf("seed %d: %d timers left after completion", seed, m.Pending())
		}
	}
}

func TestSpinTo_TakesFullDuration(t *testing.T) {
	w, m := newTestWheel(t, 7, fourSegments())
	finished := false
	w.SpinTo(1, func(int) { finished = true })

	m.Advance(SpinDuration - StepInterval)
	if finished {
		t.Fatal("spin finished early")
	}
	if !w.Spinning() {
		t.Fatal("expected wheel to be spinning")
	}

	m.Advance(StepInterval)
	if !finished {
		t.Error("spin did not finish at full duration")
	}
}

func TestSpinTo_FromNonZeroStart(t *testing.T) {
	w, m := newTestWheel(t, 3, fourSegments())
	w.SpinTo(0, nil)
	m.Advance(SpinDuration)

	w.SpinTo(3, nil)
	m.Advance(SpinDuration)

	if w.SegmentIndex() != 3 {
		t.Errorf("expected segment 3, got %d (angle %v)", w.SegmentIndex(), w.Angle())
	}
}

func TestSpinTo_OutOfRangeIsNoop(t *testing.T) {
	w, m := newTestWheel(t, 1, fourSegments())
	called := false
	for _, target := range []int{-1, 4, 100} {
		if w.SpinTo(target, func(int) { called = true }) {
			t.Errorf("target %d accepted", target)
		}
	}
	m.Advance(2 * SpinDuration)
	if called || w.Spinning() || m.Pending() != 0 {
		t.Error("out-of-range target started a spin")
	}
}

func TestSkip_AlwaysCompletesWithTarget(t *testing.T) {
	for elapsed := time.Duration(0); elapsed < SpinDuration; elapsed += 250 * time.Millisecond {
		w, m := newTestWheel(t, uint64(elapsed), fourSegments())

		var got []int
		w.SpinTo(2, func(target int) { got = append(got, target) })
		m.Advance(elapsed)

		if !w.Skip() {
			t.Fatalf("elapsed %v: Skip reported no spin", elapsed)
		}
		m.Advance(2 * SpinDuration)

		if len(got) != 1 || got[0] != 2 {
			t.Fatalf("elapsed %v: expected single completion with 2, got %v", elapsed, got)
		}
		if w.SegmentIndex() != 2 {
			t.Errorf("elapsed %v: wheel shows segment %d after skip", elapsed, w.SegmentIndex())
		}
	}

	// Just before the end
	w, m := newTestWheel(t, 99, fourSegments())
	var got []int
	w.SpinTo(2, func(target int) { got = append(got, target) })
	m.Advance(SpinDuration - time.Millisecond)
	w.Skip()
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected completion with 2, got %v", got)
	}
}

func TestSkipAndCancel_IdempotentWhenIdle(t *testing.T) {
	w, _ := newTestWheel(t, 1, fourSegments())
	if w.Skip() {
		t.Error("Skip on idle wheel reported a spin")
	}
	if w.Cancel() {
		t.Error("Cancel on idle wheel reported a spin")
	}
}

func TestCancel_NeverCompletes(t *testing.T) {
	w, m := newTestWheel(t, 1, fourSegments())
	called := false
	w.SpinTo(1, func(int) { called = true })
	m.Advance(time.Second)

	if !w.Cancel() {
		t.Fatal("Cancel reported no spin")
	}
	m.Advance(2 * SpinDuration)
	if called {
		t.Error("cancelled spin completed")
	}
	if w.Skip() {
		t.Error("Skip after Cancel found a spin")
	}
}

func TestSpinTo_RestartCancelsPrevious(t *testing.T) {
	w, m := newTestWheel(t, 5, fourSegments())
	var got []int
	w.SpinTo(1, func(target int) { got = append(got, target) })
	m.Advance(time.Second)
	w.SpinTo(3, func(target int) { got = append(got, target) })
	m.Advance(2 * SpinDuration)

	if len(got) != 1 || got[0] != 3 {
		t.Errorf("expected only the second spin to complete, got %v", got)
	}
}

func TestStepObserver(t *testing.T) {
	steps := 0
	w, m := newTestWheel(t, 2, fourSegments(), WithStepObserver(func(angle float64) {
		if angle < 0 || angle >= 360 {
			t.Errorf("observer got unnormalized angle %v", angle)
		}
		steps++
	}))
	w.SpinTo(0, nil)
	m.Advance(SpinDuration)

	// One sample per interval plus the exact final angle
	want := int(SpinDuration/StepInterval) + 1
	if steps != want {
		t.Errorf("expected %d steps, got %d", want, steps)
	}
}

func TestSingleSegment(t *testing.T) {
	w, m := newTestWheel(t, 4, []Segment{{Label: "Only"}})
	done := -1
	w.SpinTo(0, func(target int) { done = target })
	m.Advance(SpinDuration)
	if done != 0 || w.SegmentIndex() != 0 {
		t.Errorf("expected segment 0, got done=%d index=%d", done, w.SegmentIndex())
	}
}

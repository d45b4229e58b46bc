// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wheel

import "math"

const (
	// SpinRounds is the number of full turns added to every spin
	SpinRounds = 5

	// BorderMargin keeps stop angles away from segment borders, in degrees
	BorderMargin = 1.0
)

// Normalize maps any angle into [0, 360).
func Normalize(degrees float64) float64 {
	a := math.Mod(degrees, 360)
	if a < 0 {
		a += 360
	}
	// math.Mod can return 360 - epsilon rounding up to 360 after the add
	if a >= 360 {
		a = 0
	}
	return a
}

// TargetArc returns the angular range [min, max) of segment k out of n.
func TargetArc(n, k int) (min, max float64) {
	width := 360 / float64(n)
	return width * float64(k), width * float64(k+1)
}

// TargetOffset picks a stop angle inside segment k of n. r is a uniform
// sample from [0, 1).
func TargetOffset(n, k int, r float64) float64 {
	min, max := TargetArc(n, k)
	margin := BorderMargin
	if width := max - min; width < 4*BorderMargin {
		margin = width / 4
	}
	return min + margin + r*(max-min-2*margin)
}

// Rotation returns the positive rotation that takes start to offset after
// SpinRounds full turns.
func Rotation(start, offset float64) float64 {
	return SpinRounds*360 + Normalize(offset-Normalize(start))
}

// SegmentIndexAt returns the segment under the indicator at the given angle.
func SegmentIndexAt(n int, degrees float64) int {
	idx := int(math.Floor(Normalize(degrees) / (360 / float64(n))))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// EaseInOutQuad interpolates from b to b+c over duration d at time t.
func EaseInOutQuad(t, b, c, d float64) float64 {
	if d <= 0 {
		return b + c
	}
	t /= d / 2
	if t < 1 {
		return c/2*t*t + b
	}
	t--
	return -c/2*(t*(t-2)-1) + b
}

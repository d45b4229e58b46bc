// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package wheel implements the wheel-of-fortune reveal: picking a stop angle
inside a target segment and animating towards it.

# Geometry

A wheel has N equal segments. Segment k covers the arc

	[360*k/N, 360*(k+1)/N)

The stop angle is drawn uniformly from that arc with a one degree inward
margin so the wheel never stops on a border.

# Spinning

SpinTo rotates SpinRounds full turns plus whatever is needed to reach the
stop angle from the current angle. The displayed angle follows a quadratic
ease-in-ease-out curve, sampled every StepInterval for SpinDuration:

	angle = start + EaseInOutQuad(t, 0, rotation, SpinDuration)

The last sample is the exact stop angle, so the segment under the indicator
is always the requested one.

# Interruption

Skip cancels the pending step and completes with the requested segment,
never with whatever the wheel is displaying. Cancel stops without
completing. Both are no-ops when nothing is spinning.
*/
package wheel

package parameter

import "math"

// Rocket Trajectory
const (
	// PursuitDivisor is the per-tick easing divisor: the rocket covers 1/PursuitDivisor of the remaining gap each tick
	PursuitDivisor = 50.0

	// PayoutStretch maps payout-1 onto the vertical trajectory axis
	PayoutStretch = 10.0

	// HorizontalSteps divides the playfield width into per-time-unit steps
	HorizontalSteps = 100.0

	// VerticalSteps divides the playfield height into per-payout-unit steps
	VerticalSteps = 25.0

	// AngleDamping divides the payout/time angle before the baseline is applied
	AngleDamping = 10.0

	// BaseAngle is the resting rocket angle (-30 degrees)
	BaseAngle = -math.Pi / 6
)

// Rocket Scale
const (
	// MinScale is the smallest rocket and curve scale
	MinScale = 0.6

	// MaxScale is the largest rocket and curve scale
	MaxScale = 1.2

	// ScaleDistanceThreshold is the distance from the scale origin at which the rocket would reach zero scale
	ScaleDistanceThreshold = 2000.0

	// ScaleOriginX is the x of the point distance is measured from (y is the playfield bottom)
	ScaleOriginX = 100.0

	// RocketWidthRatio is the rocket sprite size as a fraction of playfield width
	RocketWidthRatio = 0.3

	// CurveWidthRatio is the ascent curve line width as a fraction of the rocket size
	CurveWidthRatio = 0.04
)

// Ascent Curve
const (
	// CurveControlRatio places the curve control point along the camera-adjusted rocket X
	CurveControlRatio = 0.75

	// CurveStartInset shifts the launch end left of RuleX
	CurveStartInset = 5.0

	// CurveEndInset pulls both curve ends in from the rocket and the playfield floor
	CurveEndInset = 2.0

	// CurveEndNudge shifts the head right so it tucks under the rocket exhaust
	CurveEndNudge = 0.7
)

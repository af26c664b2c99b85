package vmath

import "math"

// Vec2 is a float64 2D point or offset in logical pixels
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{x, y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Dist returns the euclidean distance between a and b
func (a Vec2) Dist(b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates a toward b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Approach moves current 1/divisor of the way toward target
// Returns the step so callers can reject unwanted directions
func Approach(current, target, divisor float64) float64 {
	return (target - current) / divisor
}

// QuadPoint evaluates the quadratic Bezier p0-c-p1 at t
func QuadPoint(p0, c, p1 Vec2, t float64) Vec2 {
	u := 1 - t
	return Vec2{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

// QuadTangentAngle returns the direction of the curve at its end point
func QuadTangentAngle(c, p1 Vec2) float64 {
	return math.Atan2(2*(p1.Y-c.Y), 2*(p1.X-c.X))
}

// GradientT projects p onto the segment from-to, returning the unclamped parameter
func GradientT(from, to, p Vec2) float64 {
	axis := to.Sub(from)
	lenSq := axis.Dot(axis)
	if lenSq == 0 {
		return 1
	}
	return p.Sub(from).Dot(axis) / lenSq
}

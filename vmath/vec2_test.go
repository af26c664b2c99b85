package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuadPoint_Endpoints(t *testing.T) {
	p0, c, p1 := V2(0, 100), V2(50, 100), V2(100, 0)

	assert.Equal(t, p0, QuadPoint(p0, c, p1, 0))
	assert.Equal(t, p1, QuadPoint(p0, c, p1, 1))

	mid := QuadPoint(p0, c, p1, 0.5)
	assert.InDelta(t, 50, mid.X, 1e-9)
	assert.InDelta(t, 75, mid.Y, 1e-9)
}

func TestQuadTangentAngle(t *testing.T) {
	assert.InDelta(t, 0, QuadTangentAngle(V2(0, 0), V2(10, 0)), 1e-12)
	assert.InDelta(t, -math.Pi/2, QuadTangentAngle(V2(0, 10), V2(0, 0)), 1e-12)
}

func TestApproach_MovesFraction(t *testing.T) {
	assert.InDelta(t, 2, Approach(0, 100, 50), 1e-12)
	assert.InDelta(t, -2, Approach(100, 0, 50), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.6, Clamp(0.1, 0.6, 1.2))
	assert.Equal(t, 1.2, Clamp(3, 0.6, 1.2))
	assert.Equal(t, 1.0, Clamp(1, 0.6, 1.2))
}

func TestGradientT(t *testing.T) {
	assert.InDelta(t, 0.5, GradientT(V2(0, 0), V2(10, 0), V2(5, 3)), 1e-12)
	assert.Equal(t, 1.0, GradientT(V2(1, 1), V2(1, 1), V2(4, 4)))
}

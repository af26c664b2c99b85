package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/vmath"
)

// Trajectory is the rocket flight model
type Trajectory struct {
	Rocket vmath.Vec2
	Angle  float64
	Scale  float64

	// Elapsed is (now - startTime) in hundredths of a second
	Elapsed float64

	// Payout is the last applied multiplier, frozen while the round is over
	Payout float64
}

// Reset snaps the rocket back to the launch point at the playfield bottom
func (t *Trajectory) Reset(height float64) {
	t.Rocket = vmath.V2(parameter.RuleX, height)
	t.Angle = parameter.BaseAngle
	t.Scale = 1
	t.Elapsed = 0
	t.Payout = 1
}

// Advance eases the rocket toward the position implied by payout and elapsed time
func (t *Trajectory) Advance(st round.State, now time.Time, width, height float64) {
	t.Payout = st.Payout
	t.Elapsed = float64(now.Sub(st.StartTime)) / float64(100*time.Millisecond)
	norm := (t.Payout - 1) * parameter.PayoutStretch

	// Scale uses the position before this tick's movement
	dist := t.Rocket.Dist(vmath.V2(parameter.ScaleOriginX, height))
	t.Scale = vmath.Clamp(1-dist/parameter.ScaleDistanceThreshold, parameter.MinScale, parameter.MaxScale)

	t.Angle = -math.Atan2(norm, t.Elapsed)/parameter.AngleDamping + parameter.BaseAngle

	// Pursuit: close 1/PursuitDivisor of the gap per tick, never moving left
	targetX := width / parameter.HorizontalSteps * t.Elapsed
	targetY := height - height/parameter.VerticalSteps*norm
	if dx := vmath.Approach(t.Rocket.X, targetX, parameter.PursuitDivisor); dx > 0 {
		t.Rocket.X += dx
	}
	t.Rocket.Y += vmath.Approach(t.Rocket.Y, targetY, parameter.PursuitDivisor)
}

// Freeze records the final payout without moving the rocket
func (t *Trajectory) Freeze(payout float64) {
	t.Payout = payout
}

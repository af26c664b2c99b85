package engine

import (
	"fmt"

	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/vmath"
)

// Snapshot is a copy of the simulation state after a tick
type Snapshot struct {
	Status round.Status
	Rocket vmath.Vec2
	Camera vmath.Vec2
	Angle  float64
	Scale  float64

	ElapsedCentiseconds float64
	PayoutDisplay       float64

	RulerXDivisor float64
	RulerYDivisor float64

	Stars     int
	Particles int
	Animated  bool
}

// PayoutText formats the payout readout, e.g. "2.50x"
func (s Snapshot) PayoutText() string {
	return fmt.Sprintf("%.2fx", s.PayoutDisplay)
}

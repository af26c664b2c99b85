package parameter

import "time"

// Simulation Loop
const (
	// TickInterval is the fixed update+render cadence (~60 Hz)
	TickInterval = 16 * time.Millisecond
)

// Surface Layout
const (
	// StatusBarAllowance is the logical pixel strip below the playfield reserved for the time ruler labels
	StatusBarAllowance = 50.0

	// RuleX is the horizontal launch point and ruler origin in logical pixels
	RuleX = 55.0

	// TimeRulerOffsetY is the time ruler label distance from the bottom of the surface
	TimeRulerOffsetY = 20.0
)

// Log Output
const (
	LogDir  = "logs"
	LogFile = "crashx.log"
)

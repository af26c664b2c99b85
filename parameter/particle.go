package parameter

import "time"

// Explosion Sprite Sheet
const (
	// ExplosionFrameCount is the number of vertically stacked frames in the explosion sheet
	ExplosionFrameCount = 14

	// ExplosionDuration is the full playback time of one explosion
	ExplosionDuration = 1000 * time.Millisecond

	// ExplosionLoop controls whether the explosion restarts after its last frame
	ExplosionLoop = false
)

// Star Field
const (
	// StarMaxCount bounds the concurrent star population
	StarMaxCount = 100

	// StarMaxSize is the exclusive upper bound of star radius in logical pixels
	StarMaxSize = 5.0

	// StarMaxLifetime is the exclusive upper bound of star lifetime in ticks
	StarMaxLifetime = 500

	// StarDriftX and StarDriftY are the per-tick drift while a round is in progress
	StarDriftX = -0.7
	StarDriftY = 0.1

	// StarAlpha is the star sprite opacity
	StarAlpha = 0.6
)

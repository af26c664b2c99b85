package render

import (
	"image"
	"time"

	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/vmath"
)

// Scene is the complete input of one rendered frame
// Positions are world coordinates; the renderer applies the camera
type Scene struct {
	// Playfield dimensions and full surface height
	Width         float64
	Height        float64
	SurfaceHeight float64

	Status    round.Status
	Payout    float64
	Countdown time.Duration

	Rocket vmath.Vec2
	Camera vmath.Vec2
	Scale  float64

	Stars     []StarSprite
	Particles []ParticleSprite
	Ruler     RulerLayout
	Sprites   Sprites

	// Overlay is an optional debug line drawn at the bottom
	Overlay string
}

// StarSprite is one background star
type StarSprite struct {
	Pos  vmath.Vec2
	Size float64
}

// ParticleSprite is one sprite-sheet frame ready to draw
type ParticleSprite struct {
	Src    image.Rectangle
	Center vmath.Vec2
	Size   float64
}

// Sprites holds decoded raster resources, nil while not ready
type Sprites struct {
	Rocket    image.Image
	Star      image.Image
	Explosion image.Image
}

// RulerLabel is a screen-fixed axis label
type RulerLabel struct {
	Pos  vmath.Vec2
	Text string
}

// RulerMark is a screen-fixed tick line
type RulerMark struct {
	From, To vmath.Vec2
}

// RulerLayout holds both axes for one frame
type RulerLayout struct {
	TimeLabels   []RulerLabel
	PayoutLabels []RulerLabel
	Marks        []RulerMark
}

// Reset truncates all slices keeping capacity
func (l *RulerLayout) Reset() {
	l.TimeLabels = l.TimeLabels[:0]
	l.PayoutLabels = l.PayoutLabels[:0]
	l.Marks = l.Marks[:0]
}

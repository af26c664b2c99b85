package visual

import (
	"github.com/lixenwraith/crashx/terminal"
)

// terminal.RGB color definitions for the ascent view
var (
	RgbBlack = terminal.RGB{R: 0, G: 0, B: 0}
	RgbWhite = terminal.RGB{R: 255, G: 255, B: 255}

	// Accent is the readout and curve head color (#faca15)
	RgbAccent = terminal.RGB{R: 250, G: 202, B: 21}

	// Curve tail color (#6eaace), drawn fully transparent
	RgbCurveTail = terminal.RGB{R: 110, G: 170, B: 206}

	// Ruler ticks and labels (#ff9600)
	RgbRuler = terminal.RGB{R: 255, G: 150, B: 0}

	// Background gradient from top-right navy (#0e3b69) to black
	RgbSkyTop    = terminal.RGB{R: 14, G: 59, B: 105}
	RgbSkyBottom = terminal.RGB{R: 0, G: 0, B: 0}

	// Debug overlay text
	RgbDebug = terminal.RGB{R: 180, G: 180, B: 180}
)

// Alpha levels
const (
	CurveTailAlpha = 0.0
	CurveHeadAlpha = 1.0
	RulerAlpha     = 0.9
)

// Background gradient direction, CSS convention: 0 points up, 90 right
const SkyGradientDeg = 227.0

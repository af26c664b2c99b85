package render

import (
	"image"

	"github.com/lixenwraith/crashx/vmath"
)

// Align is horizontal text alignment relative to the anchor point
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// TextStyle describes one text run
// Size is the glyph height in logical pixels; cell-based presenters only use it to pick bold
type TextStyle struct {
	Size  float64
	Align Align
	Color RGB
	Alpha float64
	Bold  bool
}

// Gradient is a two-stop linear gradient along a stroke from its start to its end point
type Gradient struct {
	From      RGB
	To        RGB
	FromAlpha float64
	ToAlpha   float64
}

// At returns color and opacity at parameter t in [0,1]
func (g Gradient) At(t float64) (RGB, float64) {
	return Lerp(g.From, g.To, t), g.FromAlpha + (g.ToAlpha-g.FromAlpha)*t
}

// SpriteOp places a source region centred on a destination point
type SpriteOp struct {
	Center vmath.Vec2
	Width  float64
	Height float64
	Angle  float64
	Alpha  float64
}

// Surface is the drawing target the renderer paints one frame onto
// Coordinates are logical pixels with the origin top-left
type Surface interface {
	// Size returns the full surface dimensions
	Size() (width, height int)

	// Clear resets pixels, text and transform for a new frame
	Clear()

	// Save pushes the current translation, Restore pops it
	Save()
	Restore()

	// Translate offsets all following draw calls
	Translate(dx, dy float64)

	// StrokeQuadratic strokes the quadratic curve from-ctrl-to with round caps
	StrokeQuadratic(from, ctrl, to vmath.Vec2, width float64, g Gradient)

	// StrokeLine strokes a straight segment
	StrokeLine(from, to vmath.Vec2, width float64, c RGB, alpha float64)

	// DrawImage draws src of img; nil images are skipped
	DrawImage(img image.Image, src image.Rectangle, op SpriteOp)

	// FillText draws text anchored at the vertical middle of the glyphs
	FillText(text string, at vmath.Vec2, style TextStyle)

	// Present hands the finished frame to the output
	Present() error
}

package render

import (
	"fmt"
	"image"
	"math"

	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/parameter/visual"
	"github.com/lixenwraith/crashx/round"
	"github.com/lixenwraith/crashx/vmath"
)

// Renderer paints a Scene onto a Surface
// Holds no frame state: the same scene always produces the same draw calls
type Renderer struct {
	curve Gradient
}

func NewRenderer() *Renderer {
	return &Renderer{
		curve: Gradient{
			From:      visual.RgbCurveTail,
			To:        visual.RgbAccent,
			FromAlpha: visual.CurveTailAlpha,
			ToAlpha:   visual.CurveHeadAlpha,
		},
	}
}

// Draw renders one frame: curve, camera-space sprites, readout, ruler, overlay
func (r *Renderer) Draw(s Surface, sc *Scene) {
	s.Clear()

	r.drawCurve(s, sc)

	s.Save()
	s.Translate(sc.Camera.X, sc.Camera.Y)
	r.drawStars(s, sc)
	if sc.Status == round.StatusOver {
		r.drawParticles(s, sc)
	} else {
		r.drawRocket(s, sc)
	}
	s.Restore()

	r.drawStatus(s, sc)
	r.drawRuler(s, sc)
	r.drawOverlay(s, sc)
}

// RocketSize returns the rocket sprite side before scaling
func RocketSize(width float64) float64 {
	return width * parameter.RocketWidthRatio
}

// CurveEnds returns the ascent curve control points in screen space
func CurveEnds(sc *Scene) (from, ctrl, to vmath.Vec2, lineWidth float64) {
	lineWidth = RocketSize(sc.Width) * parameter.CurveWidthRatio * sc.Scale
	head := sc.Rocket.Add(sc.Camera)
	from = vmath.V2(parameter.RuleX-parameter.CurveStartInset, sc.Height-parameter.CurveEndInset)
	ctrl = vmath.V2(head.X*parameter.CurveControlRatio, sc.Height)
	to = vmath.V2(
		head.X-parameter.CurveEndInset+parameter.CurveEndNudge,
		head.Y-parameter.CurveEndInset+lineWidth/2,
	)
	return from, ctrl, to, lineWidth
}

// RocketHeading is the direction of the ascent curve where it meets the rocket
func RocketHeading(sc *Scene) float64 {
	head := sc.Rocket.Add(sc.Camera)
	ctrl := vmath.V2(head.X*parameter.CurveControlRatio, sc.Height)
	end := head.Sub(vmath.V2(parameter.CurveEndInset, parameter.CurveEndInset))
	return vmath.QuadTangentAngle(ctrl, end)
}

func (r *Renderer) drawCurve(s Surface, sc *Scene) {
	from, ctrl, to, lw := CurveEnds(sc)
	s.StrokeQuadratic(from, ctrl, to, lw, r.curve)
}

func (r *Renderer) drawStars(s Surface, sc *Scene) {
	img := sc.Sprites.Star
	if img == nil {
		return
	}
	b := img.Bounds()
	for _, st := range sc.Stars {
		side := st.Size * 2
		s.DrawImage(img, b, SpriteOp{
			Center: st.Pos,
			Width:  side,
			Height: side,
			Alpha:  parameter.StarAlpha,
		})
	}
}

func (r *Renderer) drawRocket(s Surface, sc *Scene) {
	img := sc.Sprites.Rocket
	if img == nil {
		return
	}
	side := RocketSize(sc.Width) * sc.Scale
	s.DrawImage(img, img.Bounds(), SpriteOp{
		Center: sc.Rocket,
		Width:  side,
		Height: side,
		Angle:  RocketHeading(sc),
		Alpha:  1,
	})
}

func (r *Renderer) drawParticles(s Surface, sc *Scene) {
	img := sc.Sprites.Explosion
	if img == nil {
		return
	}
	for _, p := range sc.Particles {
		s.DrawImage(img, p.Src, SpriteOp{
			Center: p.Center,
			Width:  p.Size,
			Height: p.Size,
			Alpha:  1,
		})
	}
}

// StatusText returns the large readout and the label under it
func StatusText(sc *Scene) (readout, label string) {
	switch sc.Status {
	case round.StatusInProgress, round.StatusOver:
		return fmt.Sprintf("%.2fx", sc.Payout), parameter.TextCurrentPayout
	}

	switch sc.Status {
	case round.StatusRefunded:
		label = parameter.TextRoundRefunded
	case round.StatusBlocking:
		label = parameter.TextRoundBlocked
	}

	// Truncate to hundredths of a second, then show tenths
	count := math.Floor(float64(sc.Countdown.Milliseconds())/parameter.CountdownUnit) / 100
	if count < 0 {
		return parameter.TextWaiting, label
	}
	if label == "" {
		label = parameter.TextStarting
	}
	return fmt.Sprintf("0%.1f", count), label
}

func (r *Renderer) drawStatus(s Surface, sc *Scene) {
	readout, label := StatusText(sc)
	cx := sc.Width / 2
	s.FillText(readout, vmath.V2(cx, sc.Height*parameter.PayoutTextY), TextStyle{
		Size:  sc.Height * parameter.PayoutFontRatio,
		Align: AlignCenter,
		Color: visual.RgbAccent,
		Alpha: 1,
		Bold:  true,
	})
	s.FillText(label, vmath.V2(cx, sc.Height*parameter.LabelTextY), TextStyle{
		Size:  sc.Height * parameter.LabelFontRatio,
		Align: AlignCenter,
		Color: visual.RgbAccent,
		Alpha: 1,
	})
}

func (r *Renderer) drawRuler(s Surface, sc *Scene) {
	style := TextStyle{
		Size:  sc.Height * parameter.RulerFontRatio,
		Align: AlignEnd,
		Color: visual.RgbRuler,
		Alpha: visual.RulerAlpha,
	}
	for _, l := range sc.Ruler.TimeLabels {
		s.FillText(l.Text, l.Pos, style)
	}
	for _, l := range sc.Ruler.PayoutLabels {
		s.FillText(l.Text, l.Pos, style)
	}
	for _, m := range sc.Ruler.Marks {
		s.StrokeLine(m.From, m.To, parameter.RulerLineWidth, visual.RgbRuler, visual.RulerAlpha)
	}
}

func (r *Renderer) drawOverlay(s Surface, sc *Scene) {
	if sc.Overlay == "" {
		return
	}
	s.FillText(sc.Overlay, vmath.V2(parameter.OverlayMargin, sc.SurfaceHeight-parameter.OverlayMargin), TextStyle{
		Size:  sc.SurfaceHeight * parameter.OverlayFontRatio,
		Align: AlignStart,
		Color: visual.RgbDebug,
		Alpha: 1,
	})
}

// FrameRect returns the sprite-sheet rectangle of one vertically stacked frame
func FrameRect(sheet image.Rectangle, frame, count int) image.Rectangle {
	if count < 1 {
		return sheet
	}
	h := sheet.Dy() / count
	y := sheet.Min.Y + frame*h
	return image.Rect(sheet.Min.X, y, sheet.Max.X, y+h)
}

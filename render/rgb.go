package render

import (
	"image/color"

	"github.com/lixenwraith/crashx/terminal"
)

// RGB is the shared 24-bit colour of the canvas and the cell buffer
type RGB = terminal.RGB

// clamp rounds v into a colour channel
func clamp(v float64) uint8 {
	switch {
	case v >= 255:
		return 255
	case v <= 0:
		return 0
	}
	return uint8(v + 0.5)
}

// mix moves channel a toward b by t in [0,1]
func mix(a, b uint8, t float64) uint8 {
	return clamp(float64(a) + (float64(b)-float64(a))*t)
}

// Blend paints src over dst with opacity alpha
func Blend(dst, src RGB, alpha float64) RGB {
	switch {
	case alpha >= 1:
		return src
	case alpha <= 0:
		return dst
	}
	return Lerp(dst, src, alpha)
}

// Lerp interpolates from a (t=0) to b (t=1), t is clamped
func Lerp(a, b RGB, t float64) RGB {
	t = max(0, min(t, 1))
	return RGB{R: mix(a.R, b.R, t), G: mix(a.G, b.G, t), B: mix(a.B, b.B, t)}
}

// NRGBA converts to an image colour with the given opacity
func NRGBA(c RGB, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: clamp(alpha * 255)}
}

package asset

import (
	"image"
	"image/color"
	"math"

	"github.com/lixenwraith/crashx/parameter/visual"
	"github.com/lixenwraith/crashx/render"
)

// RocketSprite draws a rocket pointing right on a transparent square
func RocketSprite(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	cy := s / 2
	hull := render.RGB{R: 230, G: 236, B: 242}
	flame := visual.RgbAccent

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			dy := math.Abs(py - cy)

			// Body: ellipse from 25% to 85% width, nose tapers to the right
			bx := (px - s*0.55) / (s * 0.3)
			by := dy / (s * 0.12)
			if bx*bx+by*by <= 1 {
				img.SetNRGBA(x, y, color.NRGBA{R: hull.R, G: hull.G, B: hull.B, A: 255})
				continue
			}

			// Fins: triangles at the tail
			if px > s*0.22 && px < s*0.4 && dy < s*0.22-(px-s*0.22)*0.6 && dy > s*0.08 {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 60, B: 50, A: 255})
				continue
			}

			// Exhaust: fading cone behind the body
			if px < s*0.28 && dy < (px-s*0.02)*0.35 {
				a := (px - s*0.02) / (s * 0.26)
				img.SetNRGBA(x, y, render.NRGBA(flame, a))
			}
		}
	}
	return img
}

// StarSprite draws a soft white dot
func StarSprite(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			if d >= 1 {
				continue
			}
			img.SetNRGBA(x, y, render.NRGBA(visual.RgbWhite, (1-d)*(1-d)))
		}
	}
	return img
}

// ExplosionSheet draws a fireball sheet of size x size frames stacked vertically, growing and fading
func ExplosionSheet(size, frames int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size*frames))
	c := float64(size) / 2
	core := render.RGB{R: 255, G: 240, B: 200}
	rim := render.RGB{R: 220, G: 70, B: 20}

	for f := 0; f < frames; f++ {
		t := (float64(f) + 1) / float64(frames)
		radius := c * (0.3 + 0.7*t)
		fade := 1 - t*t
		oy := f * size

		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / radius
				if d >= 1 {
					continue
				}
				col := render.Lerp(core, rim, math.Min(d+t*0.5, 1))
				img.SetNRGBA(x, oy+y, render.NRGBA(col, fade*(1-d*d)))
			}
		}
	}
	return img
}

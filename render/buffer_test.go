package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/crashx/terminal"
	"github.com/lixenwraith/crashx/vmath"
)

func fillRect(c *Canvas, x0, y0, x1, y1 int, col color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Image().SetRGBA(x, y, col)
		}
	}
}

func TestRenderBuffer_ResizeAndClear(t *testing.T) {
	b := NewRenderBuffer(4, 2)
	b.SetWithBg(1, 1, 'x', RGB{R: 1, G: 2, B: 3}, RGB{R: 4, G: 5, B: 6})
	assert.Equal(t, 'x', b.Cell(1, 1).Rune)

	b.Resize(2, 2)
	w, h := b.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, ' ', b.Cell(1, 1).Rune)

	// Out of bounds writes are dropped
	b.SetWithBg(5, 5, 'y', RGB{}, RGB{})
	b.SetFgOnly(-1, 0, 'y', RGB{}, terminal.AttrNone)
	assert.Equal(t, terminal.Cell{}, b.Cell(5, 5))
}

func TestCompose_HalfBlocks(t *testing.T) {
	c := NewCanvas(8, 16, nil)
	fillRect(c, 0, 0, 8, 16, color.RGBA{A: 255})
	fillRect(c, 0, 0, 4, 4, color.RGBA{R: 200, A: 255})
	fillRect(c, 4, 12, 8, 16, color.RGBA{G: 100, A: 255})
	// Half of the block is blue, so the average is half intensity
	fillRect(c, 0, 8, 2, 12, color.RGBA{B: 200, A: 255})

	b := NewRenderBuffer(2, 2)
	b.Compose(c, 4, 8)

	tl := b.Cell(0, 0)
	assert.Equal(t, HalfBlock, tl.Rune)
	assert.Equal(t, RGB{R: 200}, tl.Fg)
	assert.Equal(t, RGB{}, tl.Bg)

	br := b.Cell(1, 1)
	assert.Equal(t, RGB{}, br.Fg)
	assert.Equal(t, RGB{G: 100}, br.Bg)

	bl := b.Cell(0, 1)
	assert.Equal(t, RGB{B: 100}, bl.Fg)
}

func TestCompose_BufferLargerThanCanvas(t *testing.T) {
	c := NewCanvas(4, 8, nil)
	b := NewRenderBuffer(3, 3)

	assert.NotPanics(t, func() { b.Compose(c, 4, 8) })
	assert.Equal(t, RGB{}, b.Cell(2, 2).Fg)
}

func TestCompose_TextAlignment(t *testing.T) {
	c := NewCanvas(80, 16, nil)
	c.FillText("abcd", vmath.V2(40, 4), TextStyle{Align: AlignCenter, Color: RGB{R: 255, G: 255, B: 255}, Alpha: 1, Bold: true})
	c.FillText("7x", vmath.V2(40, 12), TextStyle{Align: AlignEnd, Color: RGB{R: 255, G: 0, B: 0}, Alpha: 1})
	c.FillText("left", vmath.V2(0, 12), TextStyle{Align: AlignStart, Color: RGB{R: 255, G: 0, B: 0}})
	c.FillText("off", vmath.V2(0, -4), TextStyle{})

	b := NewRenderBuffer(20, 2)
	b.Compose(c, 4, 8)

	// Centre column 10 minus half of four cells
	assert.Equal(t, 'a', b.Cell(8, 0).Rune)
	assert.Equal(t, 'd', b.Cell(11, 0).Rune)
	assert.Equal(t, terminal.AttrBold, b.Cell(8, 0).Attrs)
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, b.Cell(8, 0).Fg)

	// End alignment finishes just before the anchor column
	assert.Equal(t, '7', b.Cell(8, 1).Rune)
	assert.Equal(t, 'x', b.Cell(9, 1).Rune)
	assert.Equal(t, HalfBlock, b.Cell(10, 1).Rune)

	// Zero alpha means opaque
	assert.Equal(t, 'l', b.Cell(0, 1).Rune)
	assert.Equal(t, RGB{R: 255, G: 0, B: 0}, b.Cell(0, 1).Fg)

	assert.NotEqual(t, 'o', b.Cell(0, 0).Rune)
}

func TestSetText_BlendsTowardBackground(t *testing.T) {
	b := NewRenderBuffer(4, 1)
	b.SetWithBg(0, 0, ' ', RGB{}, RGB{R: 0, G: 0, B: 0})

	n := b.SetText(0, 0, "ab", RGB{R: 200, G: 200, B: 200}, 0.5, terminal.AttrNone)
	assert.Equal(t, 2, n)
	assert.Equal(t, RGB{R: 100, G: 100, B: 100}, b.Cell(0, 0).Fg)
}

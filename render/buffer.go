package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/crashx/terminal"
)

// HalfBlock is the upper half block: foreground paints the top pixel row, background the bottom
const HalfBlock = '▀'

// RenderBuffer is a cell compositor backed by a terminal.Cell array
// Uses []terminal.Cell directly to allow zero-copy export
type RenderBuffer struct {
	cells  []terminal.Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]terminal.Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns the buffer dimensions in cells
func (b *RenderBuffer) Size() (int, int) { return b.width, b.height }

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = terminal.Cell{Rune: ' ', Fg: terminal.RGBBlack, Bg: terminal.RGBBlack}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// inBounds returns true if in buffer bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the cell at x, y or an empty cell when out of bounds
func (b *RenderBuffer) Cell(x, y int) terminal.Cell {
	if !b.inBounds(x, y) {
		return terminal.Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetWithBg writes a cell with explicit fg and bg colors (opaque replace)
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Bg = bg
	dst.Attrs = terminal.AttrNone
}

// SetFgOnly writes rune, foreground and attrs while preserving existing background
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg RGB, attrs terminal.Attr) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = attrs
}

// SetText writes a string starting at x, y over existing backgrounds
// Each cell background is blended toward fg by alpha so text reads as a glyph, not a block
// Returns the number of cells written
func (b *RenderBuffer) SetText(x, y int, text string, fg RGB, alpha float64, attrs terminal.Attr) int {
	n := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if b.inBounds(x+n, y) {
			dst := &b.cells[y*b.width+x+n]
			dst.Rune = r
			dst.Fg = Blend(dst.Bg, fg, alpha)
			dst.Attrs = attrs
		}
		n += w
	}
	return n
}

// ===== CANVAS DOWNSAMPLING =====

// Compose fills the buffer from canvas pixels and overlays the canvas text runs
// Each cell covers cellW x cellH logical pixels split into a top and bottom half;
// the halves become fg and bg of a HalfBlock
func (b *RenderBuffer) Compose(c *Canvas, cellW, cellH int) {
	cellW, cellH = max(cellW, 1), max(cellH, 2)
	half := cellH / 2
	img := c.Image()
	cw, ch := c.Size()

	for cy := 0; cy < b.height; cy++ {
		py := cy * cellH
		for cx := 0; cx < b.width; cx++ {
			px := cx * cellW
			top := average(img.Pix, img.Stride, cw, ch, px, py, cellW, half)
			bottom := average(img.Pix, img.Stride, cw, ch, px, py+half, cellW, cellH-half)
			b.SetWithBg(cx, cy, HalfBlock, top, bottom)
		}
	}

	for _, run := range c.Texts() {
		b.composeText(run, cellW, cellH)
	}
}

// composeText places a text run on the cell grid honoring alignment
func (b *RenderBuffer) composeText(run TextRun, cellW, cellH int) {
	cols := runewidth.StringWidth(run.Text)
	x := int(run.At.X) / cellW
	switch run.Style.Align {
	case AlignCenter:
		x -= cols / 2
	case AlignEnd:
		x -= cols
	}
	if run.At.Y < 0 {
		return
	}
	y := int(run.At.Y) / cellH

	attrs := terminal.AttrNone
	if run.Style.Bold {
		attrs = terminal.AttrBold
	}
	alpha := run.Style.Alpha
	if alpha <= 0 {
		alpha = 1
	}
	b.SetText(x, y, run.Text, run.Style.Color, alpha, attrs)
}

// average returns the mean color of a pixel block clipped to the image
func average(pix []uint8, stride, w, h, x0, y0, bw, bh int) RGB {
	x1, y1 := min(x0+bw, w), min(y0+bh, h)
	if x0 >= x1 || y0 >= y1 {
		return terminal.RGBBlack
	}
	var r, g, bl, n int
	for y := y0; y < y1; y++ {
		o := y*stride + x0*4
		for x := x0; x < x1; x++ {
			r += int(pix[o])
			g += int(pix[o+1])
			bl += int(pix[o+2])
			o += 4
			n++
		}
	}
	return RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(bl / n)}
}

// ===== OUTPUT =====

// FlushToTerminal writes render buffer to terminal
func (b *RenderBuffer) FlushToTerminal(term terminal.Terminal) {
	term.Flush(b.cells, b.width, b.height)
}

package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/crashx/terminal"
)

// TerminalPresenter downsamples canvas frames into terminal cells
type TerminalPresenter struct {
	term  terminal.Terminal
	buf   *RenderBuffer
	cellW int
	cellH int
}

// NewTerminalPresenter creates a presenter mapping cellW x cellH logical pixels to one cell
func NewTerminalPresenter(term terminal.Terminal, cellW, cellH int) *TerminalPresenter {
	w, h := term.Size()
	return &TerminalPresenter{
		term:  term,
		buf:   NewRenderBuffer(w, h),
		cellW: max(cellW, 1),
		cellH: max(cellH, 2),
	}
}

// CanvasSize returns the logical canvas size that covers the terminal
func (p *TerminalPresenter) CanvasSize() (int, int) {
	w, h := p.term.Size()
	return w * p.cellW, h * p.cellH
}

func (p *TerminalPresenter) Present(c *Canvas) error {
	w, h := p.term.Size()
	if bw, bh := p.buf.Size(); bw != w || bh != h {
		p.buf.Resize(w, h)
	}
	p.buf.Compose(c, p.cellW, p.cellH)
	p.buf.FlushToTerminal(p.term)
	return nil
}

// PNGPresenter writes every n-th frame as a numbered PNG file
type PNGPresenter struct {
	dir    string
	every  uint64
	frames atomic.Uint64
	saved  atomic.Uint64
}

// NewPNGPresenter creates dir if needed; every below 1 records all frames
func NewPNGPresenter(dir string, every int) (*PNGPresenter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create record dir: %w", err)
	}
	return &PNGPresenter{dir: dir, every: uint64(max(every, 1))}, nil
}

// Saved returns the number of frames written
func (p *PNGPresenter) Saved() uint64 { return p.saved.Load() }

func (p *PNGPresenter) Present(c *Canvas) error {
	n := p.frames.Add(1) - 1
	if n%p.every != 0 {
		return nil
	}

	src := c.Image()
	frame := image.NewRGBA(src.Bounds())
	draw.Draw(frame, frame.Bounds(), src, image.Point{}, draw.Src)
	for _, run := range c.Texts() {
		drawText(frame, run)
	}

	name := filepath.Join(p.dir, fmt.Sprintf("frame_%06d.png", n/p.every))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close frame %s: %w", name, err)
	}
	p.saved.Add(1)
	return nil
}

// drawText rasterises a run with the fixed 7x13 face, vertically centred on the anchor
func drawText(dst draw.Image, run TextRun) {
	face := basicfont.Face7x13
	alpha := run.Style.Alpha
	if alpha <= 0 {
		alpha = 1
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(NRGBA(run.Style.Color, alpha)),
		Face: face,
	}

	width := d.MeasureString(run.Text)
	x := fixed.I(int(run.At.X))
	switch run.Style.Align {
	case AlignCenter:
		x -= width / 2
	case AlignEnd:
		x -= width
	}
	m := face.Metrics()
	y := fixed.I(int(run.At.Y)) + (m.Ascent-m.Descent)/2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(run.Text)
}

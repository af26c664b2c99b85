package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/lixenwraith/crashx/parameter/visual"
	"github.com/lixenwraith/crashx/vmath"
)

// Presenter receives a finished canvas frame
type Presenter interface {
	Present(c *Canvas) error
}

// TextRun is one recorded FillText call in surface coordinates
type TextRun struct {
	Text  string
	At    vmath.Vec2
	Style TextStyle
}

// Canvas is the software Surface over an RGBA image
// Text is recorded, not rasterised; presenters decide how to draw it
type Canvas struct {
	img    *image.RGBA
	sky    *image.RGBA
	width  int
	height int

	offset vmath.Vec2
	stack  []vmath.Vec2
	texts  []TextRun

	// Per-stroke coverage, reused between strokes
	cover    []float32
	coverRGB []RGB
	dirty    []int

	presenter Presenter
}

// NewCanvas creates a canvas; presenter may be nil for offscreen use
func NewCanvas(width, height int, presenter Presenter) *Canvas {
	width = max(width, 1)
	height = max(height, 1)
	size := width * height
	c := &Canvas{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		sky:       image.NewRGBA(image.Rect(0, 0, width, height)),
		width:     width,
		height:    height,
		cover:     make([]float32, size),
		coverRGB:  make([]RGB, size),
		presenter: presenter,
	}
	c.paintSky()
	c.Clear()
	return c
}

// paintSky fills the cached background gradient
func (c *Canvas) paintSky() {
	rad := visual.SkyGradientDeg * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	span := math.Abs(float64(c.width)*dx) + math.Abs(float64(c.height)*dy)
	cx, cy := float64(c.width)/2, float64(c.height)/2

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			t := ((float64(x)+0.5-cx)*dx+(float64(y)+0.5-cy)*dy)/span + 0.5
			col := Lerp(visual.RgbSkyTop, visual.RgbSkyBottom, t)
			c.sky.SetRGBA(x, y, color.RGBA{R: col.R, G: col.G, B: col.B, A: 255})
		}
	}
}

// Image returns the backing pixels
func (c *Canvas) Image() *image.RGBA { return c.img }

// Texts returns text runs recorded since the last Clear
func (c *Canvas) Texts() []TextRun { return c.texts }

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) Size() (int, int) { return c.width, c.height }

func (c *Canvas) Clear() {
	copy(c.img.Pix, c.sky.Pix)
	c.texts = c.texts[:0]
	c.stack = c.stack[:0]
	c.offset = vmath.Vec2{}
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.offset)
}

func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.offset = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

func (c *Canvas) Translate(dx, dy float64) {
	c.offset = c.offset.Add(vmath.V2(dx, dy))
}

// StrokeQuadratic samples the curve densely and stamps round discs
// Coverage is merged by max so overlapping stamps never darken
func (c *Canvas) StrokeQuadratic(from, ctrl, to vmath.Vec2, width float64, g Gradient) {
	if width <= 0 || !finite(from, ctrl, to) {
		return
	}
	from, ctrl, to = from.Add(c.offset), ctrl.Add(c.offset), to.Add(c.offset)

	length := from.Dist(ctrl) + ctrl.Dist(to)
	step := math.Max(width/4, 0.5)
	n := int(math.Ceil(length/step)) + 1
	if n > 1<<14 {
		n = 1 << 14
	}

	r := width / 2
	for i := 0; i <= n; i++ {
		p := vmath.QuadPoint(from, ctrl, to, float64(i)/float64(n))
		c.stamp(p, r, func(px vmath.Vec2) (RGB, float64) {
			return g.At(vmath.Clamp(vmath.GradientT(from, to, px), 0, 1))
		})
	}
	c.commitStroke()
}

func (c *Canvas) StrokeLine(from, to vmath.Vec2, width float64, col RGB, alpha float64) {
	if width <= 0 || !finite(from, to) {
		return
	}
	from, to = from.Add(c.offset), to.Add(c.offset)

	step := math.Max(width/4, 0.5)
	n := int(math.Ceil(from.Dist(to)/step)) + 1
	r := width / 2
	solid := func(vmath.Vec2) (RGB, float64) { return col, alpha }
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.stamp(vmath.V2(vmath.Lerp(from.X, to.X, t), vmath.Lerp(from.Y, to.Y, t)), r, solid)
	}
	c.commitStroke()
}

// stamp writes an antialiased disc into the stroke coverage
func (c *Canvas) stamp(p vmath.Vec2, r float64, paint func(vmath.Vec2) (RGB, float64)) {
	x0 := max(int(math.Floor(p.X-r)), 0)
	x1 := min(int(math.Ceil(p.X+r)), c.width-1)
	y0 := max(int(math.Floor(p.Y-r)), 0)
	y1 := min(int(math.Ceil(p.Y+r)), c.height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			center := vmath.V2(float64(x)+0.5, float64(y)+0.5)
			edge := r + 0.5 - center.Dist(p)
			if edge <= 0 {
				continue
			}
			col, alpha := paint(center)
			a := float32(alpha * math.Min(edge, 1))
			idx := y*c.width + x
			if c.cover[idx] == 0 {
				c.dirty = append(c.dirty, idx)
			}
			if a > c.cover[idx] {
				c.cover[idx] = a
				c.coverRGB[idx] = col
			}
		}
	}
}

// commitStroke blends accumulated coverage onto the image and resets it
func (c *Canvas) commitStroke() {
	pix := c.img.Pix
	for _, idx := range c.dirty {
		a := float64(c.cover[idx])
		if a > 0 {
			o := idx * 4
			dst := RGB{R: pix[o], G: pix[o+1], B: pix[o+2]}
			out := Blend(dst, c.coverRGB[idx], a)
			pix[o], pix[o+1], pix[o+2] = out.R, out.G, out.B
		}
		c.cover[idx] = 0
	}
	c.dirty = c.dirty[:0]
}

// DrawImage maps src onto a rotated, scaled rectangle centred on op.Center
func (c *Canvas) DrawImage(img image.Image, src image.Rectangle, op SpriteOp) {
	if img == nil || op.Alpha <= 0 || op.Width <= 0 || op.Height <= 0 {
		return
	}
	src = src.Intersect(img.Bounds())
	if src.Empty() || !finite(op.Center) {
		return
	}

	sx := op.Width / float64(src.Dx())
	sy := op.Height / float64(src.Dy())
	cos, sin := math.Cos(op.Angle), math.Sin(op.Angle)
	scx := float64(src.Min.X) + float64(src.Dx())/2
	scy := float64(src.Min.Y) + float64(src.Dy())/2
	center := op.Center.Add(c.offset)

	// dst = T(center) * R(angle) * S(sx, sy) * T(-srcCenter) * src
	m := f64.Aff3{
		cos * sx, -sin * sy, center.X - (cos*sx*scx - sin*sy*scy),
		sin * sx, cos * sy, center.Y - (sin*sx*scx + cos*sy*scy),
	}

	var opts *xdraw.Options
	if op.Alpha < 1 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: clamp(op.Alpha * 255)})}
	}
	xdraw.BiLinear.Transform(c.img, m, img, src, xdraw.Over, opts)
}

func (c *Canvas) FillText(text string, at vmath.Vec2, style TextStyle) {
	if text == "" {
		return
	}
	c.texts = append(c.texts, TextRun{Text: text, At: at.Add(c.offset), Style: style})
}

func (c *Canvas) Present() error {
	if c.presenter == nil {
		return nil
	}
	return c.presenter.Present(c)
}

func finite(ps ...vmath.Vec2) bool {
	for _, p := range ps {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

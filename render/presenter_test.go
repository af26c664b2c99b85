package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crashx/terminal"
	"github.com/lixenwraith/crashx/vmath"
)

func TestTerminalPresenter_FlushesHalfBlocks(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := terminal.NewWithScreen(sim)
	require.NoError(t, term.Init())
	t.Cleanup(term.Fini)
	sim.SetSize(10, 4)

	p := NewTerminalPresenter(term, 4, 8)
	w, h := p.CanvasSize()
	assert.Equal(t, 40, w)
	assert.Equal(t, 32, h)

	c := NewCanvas(w, h, p)
	c.FillText("1.00x", vmath.V2(20, 12), TextStyle{Align: AlignCenter, Color: RGB{R: 250, G: 202, B: 21}, Alpha: 1})
	require.NoError(t, c.Present())

	mainc, _, _, _ := sim.GetContent(0, 3)
	assert.Equal(t, HalfBlock, mainc)

	mainc, _, style, _ := sim.GetContent(3, 1)
	assert.Equal(t, '1', mainc)
	fg, _, _ := style.Decompose()
	assert.Equal(t, RGB{R: 250, G: 202, B: 21}, terminal.FromTcell(fg))

	// Presenter follows terminal size changes
	sim.SetSize(12, 5)
	require.NoError(t, c.Present())
	bw, bh := p.buf.Size()
	assert.Equal(t, 12, bw)
	assert.Equal(t, 5, bh)
}

func TestPNGPresenter_WritesEveryNthFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	p, err := NewPNGPresenter(dir, 2)
	require.NoError(t, err)

	c := NewCanvas(64, 32, p)
	c.FillText("waiting...", vmath.V2(32, 16), TextStyle{Align: AlignCenter, Color: RGB{R: 255, G: 255, B: 255}})
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Present())
	}

	assert.Equal(t, uint64(3), p.Saved())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "frame_000000.png", entries[0].Name())
	assert.Equal(t, "frame_000002.png", entries[2].Name())

	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	// Text was rasterised into the recorded frame only
	diff := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if got != c.Image().RGBAAt(x, y) {
				diff++
			}
		}
	}
	assert.Positive(t, diff)
}

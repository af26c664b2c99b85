package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << 0
	AttrDim  Attr = 1 << 1
)

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// EventType classifies terminal events
type EventType uint8

const (
	EventNone EventType = iota
	EventResize
	EventKey
	EventClosed
)

// Event is a terminal input or lifecycle event
type Event struct {
	Type   EventType
	Width  int
	Height int
	Key    tcell.Key
	Rune   rune
}

// Terminal provides cell output and lifecycle events
type Terminal interface {
	// Init enters the alternate screen and hides the cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions in cells
	Size() (width, height int)

	// Flush writes cell buffer to terminal
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int)

	// Sync forces full redraw
	Sync()

	// PollEvent blocks until next resize, key or close event
	PollEvent() Event
}

type tcellTerminal struct {
	screen tcell.Screen

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a terminal on the controlling tty
func New() (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &tcellTerminal{screen: screen}, nil
}

// NewWithScreen wraps an existing screen, e.g. tcell.NewSimulationScreen
func NewWithScreen(screen tcell.Screen) Terminal {
	return &tcellTerminal{screen: screen}
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.HideCursor()
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	t.screen.Clear()
	t.initialized = true
	return nil
}

func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.screen.Fini()
	t.finalized = true
}

func (t *tcellTerminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellTerminal) Flush(cells []Cell, width, height int) {
	if len(cells) < width*height {
		return
	}
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			c := cells[row+x]
			style := tcell.StyleDefault.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
			if c.Attrs&AttrBold != 0 {
				style = style.Bold(true)
			}
			if c.Attrs&AttrDim != 0 {
				style = style.Dim(true)
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, style)
		}
	}
	t.screen.Show()
}

func (t *tcellTerminal) Sync() {
	t.screen.Sync()
}

func (t *tcellTerminal) PollEvent() Event {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return Event{Type: EventClosed}
		case *tcell.EventResize:
			w, h := ev.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventKey:
			return Event{Type: EventKey, Key: ev.Key(), Rune: ev.Rune()}
		}
	}
}

// Reset sequences: show cursor, leave alternate screen, reset attributes
var resetSequence = []byte("\x1b[?25h\x1b[?1049l\x1b[0m")

// EmergencyReset restores a usable terminal after a crash without touching tcell state
func EmergencyReset(w io.Writer) {
	w.Write(resetSequence)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

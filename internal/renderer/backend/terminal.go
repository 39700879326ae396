package backend

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/segment"
)

// ErrEventQueueFull is returned by PostInterrupt when tcell's event queue
// cannot accept another event.
var ErrEventQueueFull = errors.New("backend: event queue full")

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen,
// such as a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Init()
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// DrawLine draws segs on row y. Each character takes its display width in
// cells; a tab takes one cell and other zero-width characters are dropped.
// A segment with empty text draws one blank cell in its face.
func (t *Terminal) DrawLine(y int, segs []segment.Segment) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if y < 0 || y >= height {
		return 0
	}

	x, drawn := 0, 0
	for _, seg := range segs {
		if x >= width {
			break
		}
		style := convertFace(seg.Face)
		drawn++

		if seg.Text == "" {
			t.screen.SetContent(x, y, ' ', nil, style)
			x++
			continue
		}
		for _, r := range seg.Text {
			w := runewidth.RuneWidth(r)
			if r == '\t' {
				r, w = ' ', 1
			}
			if w == 0 {
				continue
			}
			if x+w > width {
				break
			}
			t.screen.SetContent(x, y, r, nil, style)
			x += w
		}
	}
	return drawn
}

func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

func (t *Terminal) PostInterrupt(data any) error {
	if err := t.screen.PostEvent(tcell.NewEventInterrupt(data)); err != nil {
		return ErrEventQueueFull
	}
	return nil
}

// convertFace converts a face to a tcell style. Default colours stay
// tcell.ColorDefault so the terminal's own colours show through.
func convertFace(f core.Face) tcell.Style {
	style := tcell.StyleDefault
	if !f.Foreground.IsDefault() {
		style = style.Foreground(convertColor(f.Foreground))
	}
	if !f.Background.IsDefault() {
		style = style.Background(convertColor(f.Background))
	}
	return style
}

func convertColor(c core.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		return Event{
			Type: EventInterrupt,
			Data: e.Data(),
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyCtrlC:
		return KeyCtrlC
	default:
		return KeyOther
	}
}

// Package backend provides the drawing surface segments are rendered to.
package backend

import (
	"strings"
	"sync"

	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/segment"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int

	// Data is the payload of an interrupt posted with PostInterrupt.
	Data any
}

// Key represents a keyboard key.
type Key int

// Keys the viewer reacts to. Everything else arrives as KeyOther.
const (
	KeyOther Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyCtrlC
)

// Backend defines the interface for display backends.
type Backend interface {
	Init() error
	Shutdown()
	Size() (width, height int)
	Clear()

	// DrawLine draws segs left to right on row y, clipped to the screen
	// width, and returns the number of segments drawn.
	DrawLine(y int, segs []segment.Segment) int

	Show()
	PollEvent() Event

	// PostInterrupt queues an EventInterrupt carrying data. It is safe to
	// call from any goroutine.
	PostInterrupt(data any) error
}

// NullBackend records drawn lines in memory. It is used for testing and
// for rendering without a terminal.
type NullBackend struct {
	mu     sync.Mutex
	width  int
	height int
	lines  [][]segment.Segment
	events chan Event
}

// NewNullBackend creates a null backend of the given size.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		lines:  make([][]segment.Segment, height),
		events: make(chan Event, 16),
	}
}

func (b *NullBackend) Init() error { return nil }
func (b *NullBackend) Shutdown()   {}
func (b *NullBackend) Show()       {}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.lines)
}

func (b *NullBackend) DrawLine(y int, segs []segment.Segment) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return 0
	}
	b.lines[y] = append([]segment.Segment(nil), segs...)
	return len(segs)
}

// Line returns the segments last drawn on row y.
func (b *NullBackend) Line(y int) []segment.Segment {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return nil
	}
	return b.lines[y]
}

// Text returns the text last drawn on row y.
func (b *NullBackend) Text(y int) string {
	var sb strings.Builder
	for _, s := range b.Line(y) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// FaceAt returns the face of the segment covering byte offset x of row y's
// text, or the default face.
func (b *NullBackend) FaceAt(y, x int) core.Face {
	for _, s := range b.Line(y) {
		if x < len(s.Text) {
			return s.Face
		}
		x -= len(s.Text)
	}
	return core.DefaultFace
}

// PollEvent blocks until an event is posted with Inject or PostInterrupt.
func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

// Inject queues an event for PollEvent.
func (b *NullBackend) Inject(ev Event) {
	b.events <- ev
}

func (b *NullBackend) PostInterrupt(data any) error {
	b.events <- Event{Type: EventInterrupt, Data: data}
	return nil
}

// Resize changes the backend size and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	lines := make([][]segment.Segment, height)
	copy(lines, b.lines)
	b.lines = lines
	b.mu.Unlock()
	b.events <- Event{Type: EventResize, Width: width, Height: height}
}

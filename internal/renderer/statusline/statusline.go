// Package statusline provides the status bar drawn under the document.
package statusline

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/facegrid/internal/renderer/backend"
	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/segment"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// Default faces.
var (
	BarFace     = core.NewFace(core.ColorWhite, core.ColorFromRGB(68, 68, 68))
	NameFace    = core.NewFace(core.ColorBlack, core.ColorFromRGB(97, 175, 239))
	WarningFace = core.Fg(core.ColorYellow)
	ErrorFace   = core.NewFace(core.ColorWhite, core.ColorRed)
)

// StatusLine renders the bottom status bar: file name, language, theme and
// the visible line range.
type StatusLine struct {
	// Display state
	filename   string
	language   string
	theme      string
	firstLine  int // First visible line, 1-indexed
	lastLine   int // Last visible line, 1-indexed
	totalLines int
	percent    int

	// Message display
	message     string
	messageType MessageType

	width int
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{}
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetLanguage updates the displayed language.
func (s *StatusLine) SetLanguage(language string) {
	s.language = language
}

// SetTheme updates the displayed theme.
func (s *StatusLine) SetTheme(theme string) {
	s.theme = theme
}

// SetView updates the visible range, given as a half-open range of 0-based
// rows, the buffer's line count and the scroll percentage (0 to 100).
func (s *StatusLine) SetView(start, end, total int, percent float64) {
	s.firstLine = start + 1
	s.lastLine = end
	s.totalLines = total
	s.percent = int(percent + 0.5)
}

// SetMessage displays a status message in place of the bar.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Height returns the number of rows the status line uses.
func (s *StatusLine) Height() int {
	return 1
}

// Segments returns the status line's segments, padded to its width.
func (s *StatusLine) Segments() []segment.Segment {
	if s.message != "" {
		return s.messageSegments()
	}
	return s.barSegments()
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) int {
	return b.DrawLine(row, s.Segments())
}

func (s *StatusLine) barSegments() []segment.Segment {
	filename := s.filename
	if filename == "" {
		filename = "[stdin]"
	}
	name := " " + filename + " "

	var left strings.Builder
	if s.language != "" {
		left.WriteString(" " + s.language)
	}
	if s.theme != "" {
		left.WriteString(" | " + s.theme)
	}
	right := s.formatPosition() + " "

	used := runewidth.StringWidth(name) + runewidth.StringWidth(left.String()) + runewidth.StringWidth(right)
	gap := max(s.width-used, 1)

	return []segment.Segment{
		{Face: NameFace, Text: name},
		{Face: BarFace, Text: left.String() + strings.Repeat(" ", gap) + right},
	}
}

func (s *StatusLine) messageSegments() []segment.Segment {
	f := BarFace
	switch s.messageType {
	case MessageWarning:
		f = WarningFace
	case MessageError:
		f = ErrorFace
	}
	text := " " + s.message
	if pad := s.width - runewidth.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return []segment.Segment{{Face: f, Text: text}}
}

// formatPosition formats the position info for the right side.
func (s *StatusLine) formatPosition() string {
	// Format: "12-35/300 | 4%"
	if s.totalLines == 0 {
		return "0/0"
	}
	result := strconv.Itoa(s.firstLine) + "-" + strconv.Itoa(s.lastLine) + "/" + strconv.Itoa(s.totalLines)

	switch {
	case s.firstLine <= 1 && s.lastLine >= s.totalLines:
		result += " | All"
	case s.firstLine <= 1:
		result += " | Top"
	case s.lastLine >= s.totalLines:
		result += " | Bot"
	default:
		result += " | " + strconv.Itoa(s.percent) + "%"
	}
	return result
}

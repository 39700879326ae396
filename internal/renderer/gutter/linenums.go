package gutter

import (
	"strconv"

	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/segment"
)

// DefaultFace is the line-number face used when the theme defines none.
var DefaultFace = core.Fg(core.ColorGray)

// LineNumbers formats the line-number column: each row's 1-based number,
// right-aligned to the widest number in the buffer, followed by a space.
type LineNumbers struct {
	Face core.Face

	// MinWidth is the minimum number of digit columns.
	MinWidth int
}

// NewLineNumbers returns a line-number column drawn in f.
func NewLineNumbers(f core.Face) LineNumbers {
	return LineNumbers{Face: f}
}

func (ln LineNumbers) digits(lineCount int) int {
	return max(Width(lineCount), ln.MinWidth)
}

// Columns returns the number of cells the column occupies for a buffer of
// lineCount lines, separator included.
func (ln LineNumbers) Columns(lineCount int) int {
	return ln.digits(lineCount) + 1
}

// Format returns the gutter text of row.
func (ln LineNumbers) Format(row, lineCount int) string {
	return PadLeft(strconv.Itoa(row+1), ln.digits(lineCount)) + " "
}

// Segment returns the gutter segment of row.
func (ln LineNumbers) Segment(row, lineCount int) segment.Segment {
	return segment.Segment{Face: ln.Face, Text: ln.Format(row, lineCount)}
}

// Prepend returns segs with the gutter segment of row in front. segs is not
// modified.
func (ln LineNumbers) Prepend(row, lineCount int, segs []segment.Segment) []segment.Segment {
	out := make([]segment.Segment, 0, len(segs)+1)
	out = append(out, ln.Segment(row, lineCount))
	return append(out, segs...)
}

// Package grid provides the per-character face overlay that runs parallel
// to a buffer's text lines.
//
// Columns are rune indices: a line of n runes owns exactly n face cells.
// The grid never edits text; it is rebuilt with New when the buffer is
// reloaded.
package grid

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/facegrid/internal/renderer/face"
)

// InvariantError describes a row whose face count disagrees with its
// text length. It is raised with panic, never returned.
type InvariantError struct {
	Row   int
	Runes int
	Cells int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("grid: row %d has %d cells for %d characters", e.Row, e.Cells, e.Runes)
}

// Grid holds buffer lines and one face.ID per character.
type Grid struct {
	lines []string
	faces [][]face.ID
}

// New creates a grid for lines with every cell set to face.DefaultID.
// The lines slice is retained, not copied; callers must not mutate it
// while the grid is in use.
func New(lines []string) *Grid {
	g := &Grid{
		lines: lines,
		faces: make([][]face.ID, len(lines)),
	}
	for i, line := range lines {
		g.faces[i] = make([]face.ID, utf8.RuneCountInString(line))
	}
	g.AssertInvariant()
	return g
}

// Len returns the number of rows.
func (g *Grid) Len() int {
	return len(g.lines)
}

// Lines returns the buffer lines backing the grid.
func (g *Grid) Lines() []string {
	return g.lines
}

// Line returns the text of a row.
func (g *Grid) Line(row int) string {
	return g.lines[row]
}

// RuneLen returns the number of characters (and cells) in a row.
func (g *Grid) RuneLen(row int) int {
	return len(g.faces[row])
}

// Row returns the face cells of a row. The slice aliases grid storage and
// must be treated as read-only; use SetRange to modify it.
func (g *Grid) Row(row int) []face.ID {
	return g.faces[row]
}

// At returns the face of one cell, or face.DefaultID when out of range.
func (g *Grid) At(row, col int) face.ID {
	if row < 0 || row >= len(g.faces) || col < 0 || col >= len(g.faces[row]) {
		return face.DefaultID
	}
	return g.faces[row][col]
}

// SetRange sets cells [start, end) of row to id. The range is clamped to
// the row; rows out of range and empty ranges are ignored so that stale
// spans degrade instead of failing.
func (g *Grid) SetRange(row, start, end int, id face.ID) {
	if row < 0 || row >= len(g.faces) {
		return
	}
	cells := g.faces[row]
	if start < 0 {
		start = 0
	}
	if end > len(cells) {
		end = len(cells)
	}
	for i := start; i < end; i++ {
		cells[i] = id
	}
}

// Reset sets every cell back to face.DefaultID.
func (g *Grid) Reset() {
	for _, cells := range g.faces {
		clear(cells)
	}
}

// Snapshot returns a deep copy of the face cells.
func (g *Grid) Snapshot() [][]face.ID {
	out := make([][]face.ID, len(g.faces))
	for i, cells := range g.faces {
		out[i] = append([]face.ID(nil), cells...)
	}
	return out
}

// Restore replaces the face cells with a snapshot taken from this grid.
func (g *Grid) Restore(snap [][]face.ID) {
	for i := range g.faces {
		if i < len(snap) {
			copy(g.faces[i], snap[i])
		}
	}
	g.AssertInvariant()
}

// AssertInvariant panics with *InvariantError if any row's cell count
// differs from its character count. A mismatch means grid maintenance is
// broken and continuing would draw garbage.
func (g *Grid) AssertInvariant() {
	if len(g.faces) != len(g.lines) {
		panic(&InvariantError{Row: min(len(g.faces), len(g.lines)), Runes: -1, Cells: -1})
	}
	for i, line := range g.lines {
		if n := utf8.RuneCountInString(line); n != len(g.faces[i]) {
			panic(&InvariantError{Row: i, Runes: n, Cells: len(g.faces[i])})
		}
	}
}

// Package highlight derives faces from buffer text and writes them into a
// grid.
//
// Every highlighter works the same way: it reads the grid's lines, produces
// a flat list of captures (row, column range, role name), resolves each role
// to a face handle and writes the captures into the grid in emission order.
// A later capture overwrites an earlier one where they overlap.
package highlight

import (
	"context"
	"errors"

	"github.com/dshills/facegrid/internal/renderer/grid"
)

// Errors returned by highlighter construction and passes.
var (
	// ErrLanguage is returned when no grammar or lexer exists for a language.
	ErrLanguage = errors.New("highlight: unsupported language")

	// ErrQuery is returned when a query or rule set cannot be compiled.
	ErrQuery = errors.New("highlight: invalid query")

	// ErrParse is returned when a pass cannot parse the buffer at all.
	ErrParse = errors.New("highlight: parse failed")

	// ErrScript is returned when a highlight script fails to load or run.
	ErrScript = errors.New("highlight: script failed")
)

// Highlighter mutates a grid given the text it holds.
type Highlighter interface {
	// Name identifies the highlighter in logs.
	Name() string

	// Apply runs a full pass over g. A highlighter that returns an error
	// must not have modified g.
	Apply(ctx context.Context, g *grid.Grid, res *Resolver) error
}

// Factory constructs a highlighter. Construction errors are configuration
// errors and are reported once, at pipeline setup.
type Factory func() (Highlighter, error)

// Capture is a half-open column range on one row carrying a role name.
// Columns are rune indices.
type Capture struct {
	Row      int
	StartCol int
	EndCol   int
	Name     string
}

// Span is a capture that may cover several rows, as reported by grammars
// that do not split their nodes at line breaks.
type Span struct {
	StartRow, StartCol int
	EndRow, EndCol     int
	Name               string
}

// SplitRows appends the per-row captures of s to dst. The first row runs
// from StartCol to the end of the line, middle rows are covered entirely
// and the last row runs from column 0 to EndCol. rowLen reports the
// character count of a row.
func SplitRows(dst []Capture, s Span, rowLen func(row int) int) []Capture {
	if s.EndRow < s.StartRow {
		return dst
	}
	if s.StartRow == s.EndRow {
		if s.EndCol > s.StartCol {
			dst = append(dst, Capture{Row: s.StartRow, StartCol: s.StartCol, EndCol: s.EndCol, Name: s.Name})
		}
		return dst
	}
	for row := s.StartRow; row <= s.EndRow; row++ {
		start, end := 0, rowLen(row)
		if row == s.StartRow {
			start = s.StartCol
		}
		if row == s.EndRow {
			end = s.EndCol
		}
		if end > start {
			dst = append(dst, Capture{Row: row, StartCol: start, EndCol: end, Name: s.Name})
		}
	}
	return dst
}

// ApplyCaptures writes caps into g in slice order. Overlapping captures
// resolve last-write-wins. Roles without a face resolve to the default
// face, which still overwrites.
func ApplyCaptures(g *grid.Grid, res *Resolver, caps []Capture) {
	for _, c := range caps {
		g.SetRange(c.Row, c.StartCol, c.EndCol, res.Resolve(c.Name))
	}
}

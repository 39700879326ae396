// Package segment turns a row of per-character face handles into the
// minimal list of same-face runs that a backend draws.
package segment

import (
	"unicode/utf8"

	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/face"
)

// Run is a maximal column range of one line sharing a face.
type Run struct {
	Face  face.ID
	Start int // first column (rune index)
	Len   int // number of columns
}

// End returns the column one past the run.
func (r Run) End() int {
	return r.Start + r.Len
}

// emptyLine is the run emitted for a zero-length line so that background
// and cursor drawing have a cell to work with.
var emptyLine = Run{Face: face.DefaultID, Start: 0, Len: 1}

// Coalesce returns the runs of a row.
func Coalesce(row []face.ID) []Run {
	return AppendRuns(nil, row)
}

// AppendRuns appends the runs of row to dst and returns the extended
// slice. Runs partition [0, len(row)) in order and no two adjacent runs
// share a face. An empty row yields a single default run of length 1.
func AppendRuns(dst []Run, row []face.ID) []Run {
	if len(row) == 0 {
		return append(dst, emptyLine)
	}

	start := 0
	cur := row[0]
	for col := 1; col < len(row); col++ {
		if row[col] != cur {
			dst = append(dst, Run{Face: cur, Start: start, Len: col - start})
			start = col
			cur = row[col]
		}
	}
	return append(dst, Run{Face: cur, Start: start, Len: len(row) - start})
}

// Segment is a run resolved for drawing: the face and the text it covers.
type Segment struct {
	Face core.Face
	Text string
}

// Resolve pairs each run with its face and the slice of line it covers.
// Columns are rune indices into line; text slices always fall on rune
// boundaries. The empty-line run resolves to an empty Text.
func Resolve(line string, runs []Run, reg *face.Registry) []Segment {
	return AppendSegments(nil, line, runs, reg)
}

// AppendSegments is Resolve appending into dst.
func AppendSegments(dst []Segment, line string, runs []Run, reg *face.Registry) []Segment {
	byteOff := 0
	col := 0
	for _, r := range runs {
		start := byteOff
		for col < r.End() && byteOff < len(line) {
			_, size := utf8.DecodeRuneInString(line[byteOff:])
			byteOff += size
			col++
		}
		dst = append(dst, Segment{Face: reg.Resolve(r.Face), Text: line[start:byteOff]})
	}
	return dst
}

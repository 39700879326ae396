package renderer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/facegrid/internal/logging"
	"github.com/dshills/facegrid/internal/renderer/backend"
	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/face"
	"github.com/dshills/facegrid/internal/renderer/grid"
	"github.com/dshills/facegrid/internal/renderer/gutter"
	"github.com/dshills/facegrid/internal/renderer/highlight"
	"github.com/dshills/facegrid/internal/renderer/segment"
	"github.com/dshills/facegrid/internal/renderer/viewport"
)

// Options configures a document.
type Options struct {
	// ShowLineNumbers draws the line-number gutter.
	ShowLineNumbers bool

	// MinLineNumberWidth is the minimum number of gutter digits.
	MinLineNumberWidth int

	// Height is the initial number of visible rows.
	Height int

	// Logger receives pipeline and pass logs. Nil discards them.
	Logger *logging.Logger
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers: true,
		Height:          24,
	}
}

// Document is one buffer with its face grid, highlighter pipeline, run
// cache and viewport. It is not safe for concurrent use.
type Document struct {
	reg      *face.Registry
	pipeline *highlight.Pipeline
	grid     *grid.Grid

	// runs caches the coalesced runs of each row; nil means not computed.
	runs [][]segment.Run

	view   *viewport.Viewport
	gutter gutter.LineNumbers
	opts   Options
	log    *logging.Logger

	last highlight.Result
}

// NewDocument creates an empty document drawing faces from reg and
// highlighting with pipeline.
func NewDocument(reg *face.Registry, pipeline *highlight.Pipeline, opts Options) *Document {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	d := &Document{
		reg:      reg,
		pipeline: pipeline,
		grid:     grid.New(nil),
		view:     viewport.New(opts.Height),
		opts:     opts,
		log:      log.WithComponent("document"),
	}
	d.gutter = gutter.LineNumbers{MinWidth: opts.MinLineNumberWidth}
	d.refreshGutterFace()
	return d
}

// SplitLines splits text into lines. A trailing newline does not start
// another line, carriage returns before newlines are dropped and empty
// text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Load replaces the buffer with lines. Every character starts with the
// default face until the next Highlight.
func (d *Document) Load(lines []string) {
	d.grid = grid.New(lines)
	d.runs = make([][]segment.Run, len(lines))
	d.view.SetLineCount(len(lines))
	d.last = highlight.Result{}
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return d.grid.Len()
}

// Line returns the text of row.
func (d *Document) Line(row int) string {
	return d.grid.Line(row)
}

// Grid returns the document's face grid.
func (d *Document) Grid() *grid.Grid {
	return d.grid
}

// Registry returns the document's face registry.
func (d *Document) Registry() *face.Registry {
	return d.reg
}

// Viewport returns the document's viewport.
func (d *Document) Viewport() *viewport.Viewport {
	return d.view
}

// LastResult returns the result of the most recent highlight pass.
func (d *Document) LastResult() highlight.Result {
	return d.last
}

// Highlight runs the pipeline over the whole buffer and drops the run
// cache.
func (d *Document) Highlight(ctx context.Context) highlight.Result {
	pass := uuid.NewString()
	log := d.log.WithField("pass", pass)
	log.Debug("highlight pass started: %d lines, %d highlighters", d.grid.Len(), d.pipeline.Len())

	d.last = d.pipeline.Run(ctx, d.grid, d.reg)
	clear(d.runs)

	log.Debug("highlight pass finished in %s: %d applied, %d failed",
		d.last.Elapsed, len(d.last.Applied), len(d.last.Failures))
	return d.last
}

// SetTheme loads a theme into the registry. Face ids already in the grid
// stay valid, so the run cache is kept; roles the new theme adds take
// effect at the next Highlight.
func (d *Document) SetTheme(entries []face.ThemeEntry) {
	d.reg.LoadTheme(entries)
	d.refreshGutterFace()
	d.log.Debug("theme loaded: %d entries, %d faces", len(entries), d.reg.Len())
}

func (d *Document) refreshGutterFace() {
	d.gutter.Face = gutter.DefaultFace
	if id, ok := d.reg.Lookup(face.RoleLineNumber); ok {
		d.gutter.Face = d.reg.Resolve(id)
	}
}

// Runs returns the coalesced runs of row. The slice is cached and must not
// be modified.
func (d *Document) Runs(row int) []segment.Run {
	if d.runs[row] == nil {
		d.runs[row] = segment.Coalesce(d.grid.Row(row))
	}
	return d.runs[row]
}

// Segments returns the drawable segments of row, without gutter.
func (d *Document) Segments(row int) []segment.Segment {
	return segment.Resolve(d.grid.Line(row), d.Runs(row), d.reg)
}

// Resize sets the number of visible rows.
func (d *Document) Resize(height int) {
	d.view.Resize(height)
}

// Render clears b, draws the visible lines and shows the result. It
// returns the number of draw calls made.
func (d *Document) Render(b backend.Backend) int {
	b.Clear()
	calls := d.Draw(b)
	b.Show()
	return calls
}

// Draw draws the visible lines from the top of b, with the gutter when
// enabled, and returns the number of draw calls made.
func (d *Document) Draw(b backend.Backend) int {
	calls := 0
	start, end := d.view.VisibleRange()
	for row := start; row < end; row++ {
		segs := d.Segments(row)
		if d.opts.ShowLineNumbers {
			segs = d.gutter.Prepend(row, d.grid.Len(), segs)
		}
		calls += b.DrawLine(row-start, segs)
	}
	return calls
}

// Dump writes every line's segments to w, one line per row, as
// face "text" pairs.
func (d *Document) Dump(w io.Writer) error {
	for row := 0; row < d.grid.Len(); row++ {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%*d:", gutter.Width(d.grid.Len()), row+1)
		for _, s := range d.Segments(row) {
			fmt.Fprintf(&sb, " %s %q", faceLabel(s.Face), s.Text)
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func faceLabel(f core.Face) string {
	if f.IsDefault() {
		return "-"
	}
	return f.String()
}

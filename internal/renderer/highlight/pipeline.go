package highlight

import (
	"context"
	"time"

	"github.com/dshills/facegrid/internal/logging"
	"github.com/dshills/facegrid/internal/renderer/face"
	"github.com/dshills/facegrid/internal/renderer/grid"
)

// Failure records a highlighter whose pass returned an error.
type Failure struct {
	Highlighter string
	Err         error
}

// Result summarises one pipeline run.
type Result struct {
	Applied  []string
	Failures []Failure
	Elapsed  time.Duration
}

// Pipeline runs a fixed, ordered sequence of highlighters. Each sees the
// grid as left by the highlighters before it.
type Pipeline struct {
	highlighters []Highlighter
	log          *logging.Logger
}

// NewPipeline builds a pipeline from factories, in order. A factory that
// fails is logged once and its highlighter left out; setup never fails.
func NewPipeline(log *logging.Logger, factories ...Factory) *Pipeline {
	if log == nil {
		log = logging.Nop()
	}
	p := &Pipeline{log: log.WithComponent("highlight")}
	for i, f := range factories {
		h, err := f()
		if err != nil {
			p.log.Warn("highlighter %d disabled: %v", i, err)
			continue
		}
		p.Add(h)
	}
	return p
}

// Add appends a highlighter to the end of the sequence.
func (p *Pipeline) Add(h Highlighter) {
	p.highlighters = append(p.highlighters, h)
	p.log.Debug("highlighter %s enabled at position %d", h.Name(), len(p.highlighters)-1)
}

// Len returns the number of active highlighters.
func (p *Pipeline) Len() int {
	return len(p.highlighters)
}

// Names returns the active highlighter names, in order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.highlighters))
	for i, h := range p.highlighters {
		names[i] = h.Name()
	}
	return names
}

// Run resets g to the default face and applies every highlighter in
// sequence. A highlighter that fails is logged and its writes discarded;
// the remaining highlighters still run. Run stops early only when ctx is
// done, leaving the grid as the completed highlighters left it.
//
// The grid invariant is checked after every highlighter; a violation
// panics.
func (p *Pipeline) Run(ctx context.Context, g *grid.Grid, reg *face.Registry) Result {
	start := time.Now()
	var res Result

	g.Reset()
	resolver := NewResolver(reg)

	for _, h := range p.highlighters {
		if err := ctx.Err(); err != nil {
			p.log.Warn("highlighter %s skipped: %v", h.Name(), err)
			res.Failures = append(res.Failures, Failure{Highlighter: h.Name(), Err: err})
			break
		}

		snap := g.Snapshot()
		if err := h.Apply(ctx, g, resolver); err != nil {
			g.Restore(snap)
			p.log.Warn("highlighter %s failed: %v", h.Name(), err)
			res.Failures = append(res.Failures, Failure{Highlighter: h.Name(), Err: err})
			continue
		}
		g.AssertInvariant()
		res.Applied = append(res.Applied, h.Name())
	}

	res.Elapsed = time.Since(start)
	return res
}

package highlight

import (
	"context"
	"embed"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/dshills/facegrid/internal/renderer/grid"
)

//go:embed queries/*.scm
var queryFiles embed.FS

// Grammar pairs a tree-sitter language with a highlight query.
type Grammar struct {
	Name     string
	Language *sitter.Language
	Query    string
}

// grammars lists the built-in grammars by language name.
var grammars = map[string]func() *sitter.Language{
	"go":   golang.GetLanguage,
	"rust": rust.GetLanguage,
}

// BuiltinGrammar returns the grammar and bundled query for a language.
func BuiltinGrammar(language string) (Grammar, error) {
	lang, ok := grammars[language]
	if !ok {
		return Grammar{}, fmt.Errorf("%w: no grammar for %q", ErrLanguage, language)
	}
	query, err := queryFiles.ReadFile("queries/" + language + ".scm")
	if err != nil {
		return Grammar{}, fmt.Errorf("%w: no query for %q", ErrLanguage, language)
	}
	return Grammar{Name: language, Language: lang(), Query: string(query)}, nil
}

// TreeSitter highlights by parsing the whole buffer with a tree-sitter
// grammar and running a capture query over the tree.
//
// Parsing is error tolerant: malformed input produces a tree with ERROR
// nodes, and captures matched in the valid parts of the tree still apply.
type TreeSitter struct {
	name     string
	language *sitter.Language
	query    *sitter.Query
}

// NewTreeSitter compiles gr's query. A malformed query is a configuration
// error wrapping ErrQuery.
func NewTreeSitter(gr Grammar) (*TreeSitter, error) {
	if gr.Language == nil {
		return nil, fmt.Errorf("%w: grammar %q has no language", ErrLanguage, gr.Name)
	}
	q, err := sitter.NewQuery([]byte(gr.Query), gr.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, gr.Name, err)
	}
	return &TreeSitter{
		name:     "treesitter:" + gr.Name,
		language: gr.Language,
		query:    q,
	}, nil
}

// TreeSitterFactory returns a factory for a built-in grammar.
func TreeSitterFactory(language string) Factory {
	return func() (Highlighter, error) {
		gr, err := BuiltinGrammar(language)
		if err != nil {
			return nil, err
		}
		return NewTreeSitter(gr)
	}
}

// Name implements Highlighter.
func (h *TreeSitter) Name() string {
	return h.name
}

// Captures parses lines and returns the query's captures in match order,
// split per row.
func (h *TreeSitter) Captures(ctx context.Context, lines []string) ([]Capture, error) {
	src := []byte(strings.Join(lines, "\n"))

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(h.language)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, h.name, err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(h.query, tree.RootNode())

	cols := newColumns(lines)
	rowLen := func(row int) int { return cols.col(row, len(lines[row])) }

	var caps []Capture
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, src)
		for _, c := range m.Captures {
			start, end := c.Node.StartPoint(), c.Node.EndPoint()
			startRow, endRow := int(start.Row), int(end.Row)
			if endRow >= len(lines) {
				endRow = len(lines) - 1
				end.Column = uint32(len(lines[endRow]))
			}
			caps = SplitRows(caps, Span{
				StartRow: startRow,
				StartCol: cols.col(startRow, int(start.Column)),
				EndRow:   endRow,
				EndCol:   cols.col(endRow, int(end.Column)),
				Name:     h.query.CaptureNameForId(c.Index),
			}, rowLen)
		}
	}
	return caps, nil
}

// Apply implements Highlighter.
func (h *TreeSitter) Apply(ctx context.Context, g *grid.Grid, res *Resolver) error {
	if g.Len() == 0 {
		return nil
	}
	caps, err := h.Captures(ctx, g.Lines())
	if err != nil {
		return err
	}
	ApplyCaptures(g, res, caps)
	return nil
}

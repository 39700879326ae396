package renderer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/facegrid/internal/renderer/backend"
	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/face"
	"github.com/dshills/facegrid/internal/renderer/highlight"
	"github.com/dshills/facegrid/internal/renderer/segment"
)

func newDocument(t *testing.T, theme string, opts Options, factories ...highlight.Factory) *Document {
	t.Helper()
	entries, ok := face.BuiltinTheme(theme)
	require.True(t, ok, "theme %q", theme)
	reg := face.NewRegistry()
	reg.LoadTheme(entries)
	return NewDocument(reg, highlight.NewPipeline(nil, factories...), opts)
}

func themeFace(t *testing.T, theme, role string) core.Face {
	t.Helper()
	entries, ok := face.BuiltinTheme(theme)
	require.True(t, ok)
	for _, e := range entries {
		if e.Name == role {
			return e.Face
		}
	}
	t.Fatalf("theme %q has no %q", theme, role)
	return core.Face{}
}

func TestDocumentEndToEnd(t *testing.T) {
	doc := newDocument(t, "default-dark", DefaultOptions(), highlight.TreeSitterFactory("rust"))
	doc.Load([]string{"let x = 5; // hi!"})

	res := doc.Highlight(context.Background())
	require.Empty(t, res.Failures)
	require.Equal(t, []string{"treesitter:rust"}, res.Applied)

	kw := themeFace(t, "default-dark", face.RoleKeyword)
	num := themeFace(t, "default-dark", face.RoleNumber)
	cm := themeFace(t, "default-dark", face.RoleComment)

	assert.Equal(t, []segment.Segment{
		{Face: kw, Text: "let"},
		{Face: core.DefaultFace, Text: " x = "},
		{Face: num, Text: "5"},
		{Face: core.DefaultFace, Text: "; "},
		{Face: cm, Text: "// hi!"},
	}, doc.Segments(0))
}

func TestDocumentEmptyBuffer(t *testing.T) {
	doc := newDocument(t, "default-dark", DefaultOptions(), highlight.RulesFactory("go"))
	doc.Load(nil)
	doc.Highlight(context.Background())

	b := backend.NewNullBackend(40, 10)
	assert.Equal(t, 0, doc.Len())
	assert.Equal(t, 0, doc.Render(b))
	assert.Equal(t, "", b.Text(0))
}

func TestDocumentEmptyLine(t *testing.T) {
	doc := newDocument(t, "default-dark", DefaultOptions())
	doc.Load([]string{"a", "", "b"})
	doc.Highlight(context.Background())

	assert.Equal(t, []segment.Run{{Face: face.DefaultID, Start: 0, Len: 1}}, doc.Runs(1))
	assert.Equal(t, []segment.Segment{{Face: core.DefaultFace, Text: ""}}, doc.Segments(1))
}

func TestDocumentRender(t *testing.T) {
	opts := DefaultOptions()
	opts.Height = 2
	doc := newDocument(t, "default-dark", opts, highlight.RulesFactory("go"))
	doc.Load([]string{"package main", "", "func main() {}"})
	doc.Highlight(context.Background())

	b := backend.NewNullBackend(40, 2)
	calls := doc.Render(b)

	// Row 0: gutter + "package" + " main"; row 1: gutter + empty line.
	assert.Equal(t, 5, calls)
	assert.Equal(t, "1 package main", b.Text(0))
	assert.Equal(t, "2 ", b.Text(1))
	assert.Equal(t, themeFace(t, "default-dark", face.RoleLineNumber), b.FaceAt(0, 0))
	assert.Equal(t, themeFace(t, "default-dark", face.RoleKeyword), b.FaceAt(0, 2))

	doc.Viewport().ScrollBy(1)
	doc.Render(b)
	assert.Equal(t, "2 ", b.Text(0))
	assert.Equal(t, "3 func main() {}", b.Text(1))
}

func TestDocumentRenderWithoutGutter(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowLineNumbers = false
	doc := newDocument(t, "default-dark", opts)
	doc.Load([]string{"plain"})
	doc.Highlight(context.Background())

	b := backend.NewNullBackend(40, 5)
	assert.Equal(t, 1, doc.Render(b))
	assert.Equal(t, "plain", b.Text(0))
}

func TestDocumentSetThemeRecolours(t *testing.T) {
	doc := newDocument(t, "default-dark", DefaultOptions(), highlight.RulesFactory("go"))
	doc.Load([]string{"return"})
	doc.Highlight(context.Background())
	before := doc.Runs(0)

	entries, _ := face.BuiltinTheme("monokai")
	doc.SetTheme(entries)

	assert.Equal(t, before, doc.Runs(0))
	assert.Equal(t, themeFace(t, "monokai", face.RoleKeyword), doc.Segments(0)[0].Face)

	b := backend.NewNullBackend(40, 5)
	doc.Render(b)
	assert.Equal(t, themeFace(t, "monokai", face.RoleLineNumber), b.FaceAt(0, 0))
}

func TestDocumentRunsCached(t *testing.T) {
	doc := newDocument(t, "default-dark", DefaultOptions(), highlight.RulesFactory("go"))
	doc.Load([]string{"if x { return }"})
	doc.Highlight(context.Background())

	first := doc.Runs(0)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &doc.Runs(0)[0])

	doc.Highlight(context.Background())
	assert.Equal(t, first, doc.Runs(0))
}

func TestDocumentHighlightIsIdempotent(t *testing.T) {
	doc := newDocument(t, "dracula", DefaultOptions(),
		highlight.TreeSitterFactory("go"), highlight.RulesFactory("go"))
	doc.Load([]string{"package main", "", "// c", "func main() { println(\"hi\") }"})

	doc.Highlight(context.Background())
	first := doc.Grid().Snapshot()
	doc.Highlight(context.Background())

	assert.Equal(t, first, doc.Grid().Snapshot())
}

func TestDocumentDump(t *testing.T) {
	doc := newDocument(t, "default-dark", DefaultOptions(), highlight.RulesFactory("go"))
	doc.Load([]string{"go f()", ""})
	doc.Highlight(context.Background())

	var buf bytes.Buffer
	require.NoError(t, doc.Dump(&buf))

	kw := themeFace(t, "default-dark", face.RoleKeyword)
	want := "1: " + kw.String() + ` "go" - " f()"` + "\n" +
		`2: - ""` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank line", "a\n\nb", []string{"a", "", "b"}},
		{"only newline", "\n", []string{""}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.text))
		})
	}
}

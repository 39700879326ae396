package highlight

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/facegrid/internal/renderer/face"
	"github.com/dshills/facegrid/internal/renderer/grid"
)

// rule is a single-line pattern and the role it captures.
type rule struct {
	pattern *regexp.Regexp
	role    string
}

// block is a construct that may span rows, such as a block comment.
type block struct {
	start string
	end   string
	role  string
}

// Rules is a regex-based highlighter. Patterns are matched per row;
// block constructs carry their open state from one row to the next.
//
// When two constructs start at the same column, blocks win over rules and
// earlier rules win over later ones.
type Rules struct {
	language string
	rules    []rule
	blocks   []block
	keywords map[string]string
}

// NewRules creates an empty rule set for language.
func NewRules(language string) *Rules {
	return &Rules{
		language: language,
		keywords: make(map[string]string),
	}
}

// AddRule adds a single-line pattern. It panics if pattern does not compile.
func (h *Rules) AddRule(pattern, role string) *Rules {
	h.rules = append(h.rules, rule{pattern: regexp.MustCompile(pattern), role: role})
	return h
}

// AddKeywords captures each of words, as a whole identifier, with role.
func (h *Rules) AddKeywords(role string, words ...string) *Rules {
	for _, w := range words {
		h.keywords[w] = role
	}
	return h
}

// AddBlock adds a construct delimited by start and end that may span rows.
func (h *Rules) AddBlock(start, end, role string) *Rules {
	h.blocks = append(h.blocks, block{start: start, end: end, role: role})
	return h
}

// Language returns the language name.
func (h *Rules) Language() string {
	return h.language
}

// Name implements Highlighter.
func (h *Rules) Name() string {
	return "rules:" + h.language
}

// Captures returns the captures for lines, in row order.
func (h *Rules) Captures(ctx context.Context, lines []string) ([]Capture, error) {
	cols := newColumns(lines)
	var caps []Capture
	open := -1
	for row, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		emit := func(start, end int, role string) {
			caps = append(caps, Capture{
				Row:      row,
				StartCol: cols.col(row, start),
				EndCol:   cols.col(row, end),
				Name:     role,
			})
		}
		open = h.scanRow(line, open, emit)
	}
	return caps, nil
}

// Apply implements Highlighter.
func (h *Rules) Apply(ctx context.Context, g *grid.Grid, res *Resolver) error {
	caps, err := h.Captures(ctx, g.Lines())
	if err != nil {
		return err
	}
	ApplyCaptures(g, res, caps)
	return nil
}

// scanRow emits byte-offset captures for one row. open is the index of the
// block left open by the previous row, or -1; the block open at the end of
// this row is returned.
func (h *Rules) scanRow(line string, open int, emit func(start, end int, role string)) int {
	covered := make([]bool, len(line))
	mark := func(start, end int) {
		for i := start; i < end; i++ {
			covered[i] = true
		}
	}

	pos := 0
	if open >= 0 {
		b := h.blocks[open]
		i := strings.Index(line, b.end)
		if i < 0 {
			if len(line) > 0 {
				emit(0, len(line), b.role)
			}
			return open
		}
		pos = i + len(b.end)
		emit(0, pos, b.role)
		mark(0, pos)
		open = -1
	}

	matches := make([][][]int, len(h.rules))
	for i, r := range h.rules {
		matches[i] = r.pattern.FindAllStringIndex(line, -1)
	}

	for pos < len(line) {
		start, end, role, blk := -1, -1, "", -1
		for i, b := range h.blocks {
			j := strings.Index(line[pos:], b.start)
			if j >= 0 && (start < 0 || pos+j < start) {
				start, blk = pos+j, i
			}
		}
		for i, r := range h.rules {
			for _, m := range matches[i] {
				if m[0] < pos || m[1] <= m[0] {
					continue
				}
				if start < 0 || m[0] < start {
					start, end, role, blk = m[0], m[1], r.role, -1
				}
				break
			}
		}
		if start < 0 {
			break
		}

		if blk >= 0 {
			b := h.blocks[blk]
			body := start + len(b.start)
			i := strings.Index(line[body:], b.end)
			if i < 0 {
				emit(start, len(line), b.role)
				mark(start, len(line))
				h.scanKeywords(line, covered, emit)
				return blk
			}
			end, role = body+i+len(b.end), b.role
		}
		emit(start, end, role)
		mark(start, end)
		pos = end
	}

	h.scanKeywords(line, covered, emit)
	return -1
}

// scanKeywords emits captures for keywords outside the covered ranges.
func (h *Rules) scanKeywords(line string, covered []bool, emit func(start, end int, role string)) {
	if len(h.keywords) == 0 {
		return
	}
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if covered[i] || !(unicode.IsLetter(r) || r == '_') {
			i += size
			continue
		}
		start := i
		for i < len(line) {
			r, size = utf8.DecodeRuneInString(line[i:])
			if covered[i] || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
				break
			}
			i += size
		}
		if role, ok := h.keywords[line[start:i]]; ok {
			emit(start, i, role)
		}
	}
}

// RulesFor returns the built-in rule set for language.
func RulesFor(language string) (*Rules, error) {
	build, ok := builtinRules[language]
	if !ok {
		return nil, fmt.Errorf("%w: no rules for %q", ErrLanguage, language)
	}
	return build(), nil
}

// RulesFactory returns a factory for a built-in rule set.
func RulesFactory(language string) Factory {
	return func() (Highlighter, error) {
		return RulesFor(language)
	}
}

var builtinRules = map[string]func() *Rules{
	"go":         GoRules,
	"python":     PythonRules,
	"javascript": JavaScriptRules,
	"rust":       RustRules,
	"markdown":   MarkdownRules,
}

// GoRules returns rules for Go.
func GoRules() *Rules {
	return NewRules("go").
		AddBlock("/*", "*/", face.RoleComment).
		AddBlock("`", "`", face.RoleString).
		AddRule(`//.*$`, face.RoleComment).
		AddRule(`"(?:[^"\\]|\\.)*"`, face.RoleString).
		AddRule(`'(?:[^'\\]|\\.)'`, face.RoleString).
		AddRule(`\b0[xX][0-9a-fA-F_]+\b`, face.RoleNumber).
		AddRule(`\b0[oO][0-7_]+\b`, face.RoleNumber).
		AddRule(`\b0[bB][01_]+\b`, face.RoleNumber).
		AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?i?\b`, face.RoleNumber).
		AddKeywords("keyword.control",
			"if", "else", "for", "range", "switch", "case", "default",
			"break", "continue", "return", "goto", "fallthrough", "select").
		AddKeywords("keyword.declaration",
			"func", "var", "const", "type", "struct", "interface", "map", "chan").
		AddKeywords(face.RoleKeyword,
			"package", "import", "defer", "go").
		AddKeywords("constant.builtin",
			"true", "false", "nil", "iota").
		AddKeywords("type.builtin",
			"int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
			"float32", "float64", "complex64", "complex128",
			"bool", "byte", "rune", "string", "error", "any", "comparable").
		AddKeywords("function.builtin",
			"make", "new", "len", "cap", "append", "copy", "delete",
			"close", "panic", "recover", "print", "println",
			"real", "imag", "complex", "min", "max", "clear")
}

// PythonRules returns rules for Python.
func PythonRules() *Rules {
	return NewRules("python").
		AddBlock(`"""`, `"""`, face.RoleString).
		AddBlock(`'''`, `'''`, face.RoleString).
		AddRule(`#.*$`, face.RoleComment).
		AddRule(`"(?:[^"\\]|\\.)*"`, face.RoleString).
		AddRule(`'(?:[^'\\]|\\.)*'`, face.RoleString).
		AddRule(`\b0[xX][0-9a-fA-F]+\b`, face.RoleNumber).
		AddRule(`\b0[oO][0-7]+\b`, face.RoleNumber).
		AddRule(`\b0[bB][01]+\b`, face.RoleNumber).
		AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?j?\b`, face.RoleNumber).
		AddRule(`@\w+`, face.RoleAttribute).
		AddKeywords("keyword.control",
			"if", "elif", "else", "for", "while", "break", "continue",
			"return", "try", "except", "finally", "raise", "with", "as",
			"match", "case").
		AddKeywords("keyword.declaration",
			"def", "class", "lambda", "async", "await").
		AddKeywords(face.RoleKeyword,
			"import", "from", "global", "nonlocal", "pass", "yield",
			"assert", "del", "in", "is", "not", "and", "or").
		AddKeywords("constant.builtin",
			"True", "False", "None").
		AddKeywords("function.builtin",
			"print", "len", "range", "enumerate", "zip", "map", "filter",
			"open", "input", "isinstance", "issubclass", "hasattr", "getattr",
			"setattr", "delattr", "callable", "iter", "next", "sorted", "reversed",
			"sum", "min", "max", "abs", "round", "pow", "divmod", "all", "any",
			"format", "repr", "id", "hash", "dir", "vars", "locals",
			"globals", "super", "property", "staticmethod", "classmethod").
		AddKeywords("type.builtin",
			"int", "float", "str", "bool", "list", "dict", "set", "tuple",
			"bytes", "bytearray", "complex", "frozenset", "type", "object")
}

// JavaScriptRules returns rules for JavaScript and TypeScript.
func JavaScriptRules() *Rules {
	return NewRules("javascript").
		AddBlock("/*", "*/", face.RoleComment).
		AddBlock("`", "`", face.RoleString).
		AddRule(`//.*$`, face.RoleComment).
		AddRule(`"(?:[^"\\]|\\.)*"`, face.RoleString).
		AddRule(`'(?:[^'\\]|\\.)*'`, face.RoleString).
		AddRule(`\b0[xX][0-9a-fA-F]+\b`, face.RoleNumber).
		AddRule(`\b0[oO][0-7]+\b`, face.RoleNumber).
		AddRule(`\b0[bB][01]+\b`, face.RoleNumber).
		AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?n?\b`, face.RoleNumber).
		AddRule(`@\w+`, face.RoleAttribute).
		AddKeywords("keyword.control",
			"if", "else", "for", "while", "do", "switch", "case", "default",
			"break", "continue", "return", "throw", "try", "catch", "finally").
		AddKeywords("keyword.declaration",
			"function", "var", "let", "const", "class", "extends", "async", "await",
			"type", "interface", "enum", "namespace", "module", "declare").
		AddKeywords(face.RoleKeyword,
			"import", "export", "from", "as", "new", "delete",
			"typeof", "instanceof", "in", "of", "this", "super", "static",
			"get", "set", "yield", "debugger", "with").
		AddKeywords("constant.builtin",
			"true", "false", "null", "undefined", "NaN", "Infinity").
		AddKeywords("keyword.modifier",
			"public", "private", "protected", "readonly", "abstract", "override")
}

// RustRules returns rules for Rust.
func RustRules() *Rules {
	return NewRules("rust").
		AddBlock("/*", "*/", face.RoleComment).
		AddRule(`//.*$`, face.RoleComment).
		AddRule(`b?"(?:[^"\\]|\\.)*"`, face.RoleString).
		AddRule(`r#*"[^"]*"#*`, face.RoleString).
		AddRule(`'(?:[^'\\]|\\.)'`, face.RoleString).
		AddRule(`'[a-zA-Z_]\w*`, face.RoleLabel).
		AddRule(`\b0[xX][0-9a-fA-F_]+\b`, face.RoleNumber).
		AddRule(`\b0[oO][0-7_]+\b`, face.RoleNumber).
		AddRule(`\b0[bB][01_]+\b`, face.RoleNumber).
		AddRule(`\b\d[\d_]*\.?[\d_]*(?:[eE][+-]?[\d_]+)?(?:f32|f64|i\d+|u\d+|isize|usize)?\b`, face.RoleNumber).
		AddRule(`#!?\[.*?\]`, face.RoleAttribute).
		AddRule(`\b[a-z_]\w*!`, "function.macro").
		AddKeywords("keyword.control",
			"if", "else", "match", "for", "while", "loop", "break", "continue",
			"return", "yield", "in").
		AddKeywords("keyword.declaration",
			"fn", "let", "mut", "const", "static", "struct", "enum", "trait",
			"impl", "type", "mod", "macro_rules").
		AddKeywords(face.RoleKeyword,
			"use", "crate", "super", "self", "Self", "pub", "where", "as",
			"async", "await", "dyn", "move", "ref", "unsafe", "extern").
		AddKeywords("constant.builtin",
			"true", "false", "None", "Some", "Ok", "Err").
		AddKeywords("type.builtin",
			"i8", "i16", "i32", "i64", "i128", "isize",
			"u8", "u16", "u32", "u64", "u128", "usize",
			"f32", "f64", "bool", "char", "str", "String",
			"Vec", "Box", "Option", "Result")
}

// MarkdownRules returns rules for Markdown.
func MarkdownRules() *Rules {
	return NewRules("markdown").
		AddBlock("```", "```", "markup.raw").
		AddRule(`^#{1,6}\s+.*$`, "markup.heading").
		AddRule(`^>\s+.*$`, "markup.quote").
		AddRule(`^\s*(?:[-*+]|\d+\.)\s+`, "markup.list").
		AddRule("`[^`]+`", "markup.raw").
		AddRule(`\*\*[^*]+\*\*`, "markup.strong").
		AddRule(`__[^_]+__`, "markup.strong").
		AddRule(`\*[^*]+\*`, "markup.italic").
		AddRule(`\b_[^_]+_\b`, "markup.italic").
		AddRule(`~~[^~]+~~`, "markup.strikethrough").
		AddRule(`\[[^\]]+\]\([^)]+\)`, "markup.link")
}

package highlight

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dshills/facegrid/internal/renderer/face"
	"github.com/dshills/facegrid/internal/renderer/grid"
)

// Lexer highlights with a chroma lexer. It covers many more languages
// than the bundled tree-sitter grammars at the cost of purely lexical
// precision.
type Lexer struct {
	name  string
	lexer chroma.Lexer
}

// NewLexer returns a highlighter using the chroma lexer registered for
// language (a name, alias or file extension chroma recognises).
func NewLexer(language string) (*Lexer, error) {
	l := lexers.Get(language)
	if l == nil {
		return nil, fmt.Errorf("%w: no lexer for %q", ErrLanguage, language)
	}
	return &Lexer{
		name:  "lexer:" + strings.ToLower(l.Config().Name),
		lexer: chroma.Coalesce(l),
	}, nil
}

// LexerFactory returns a factory for NewLexer.
func LexerFactory(language string) Factory {
	return func() (Highlighter, error) {
		return NewLexer(language)
	}
}

// Name implements Highlighter.
func (h *Lexer) Name() string {
	return h.name
}

// Captures tokenises lines and returns one capture per styled token and
// row. Tokens spanning line breaks are split at them.
func (h *Lexer) Captures(ctx context.Context, lines []string) ([]Capture, error) {
	it, err := h.lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, h.name, err)
	}

	var caps []Capture
	row, col := 0, 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		role := tokenRole(tok.Type)
		for text := tok.Value; ; {
			piece, rest, newline := strings.Cut(text, "\n")
			n := utf8.RuneCountInString(piece)
			if role != "" && n > 0 {
				caps = append(caps, Capture{Row: row, StartCol: col, EndCol: col + n, Name: role})
			}
			col += n
			if !newline {
				break
			}
			row++
			col = 0
			text = rest
		}
	}
	return caps, nil
}

// Apply implements Highlighter.
func (h *Lexer) Apply(ctx context.Context, g *grid.Grid, res *Resolver) error {
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

// tokenRole maps a chroma token type to a capture role. Plain text,
// whitespace and error tokens map to "" and are not captured.
func tokenRole(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Comment):
		return face.RoleComment
	case t.InSubCategory(chroma.LiteralString):
		if t == chroma.LiteralStringEscape {
			return "string.escape"
		}
		return face.RoleString
	case t.InSubCategory(chroma.LiteralNumber):
		return face.RoleNumber
	case t == chroma.KeywordType:
		return "type.builtin"
	case t == chroma.KeywordConstant:
		return "constant.builtin"
	case t.InCategory(chroma.Keyword):
		return face.RoleKeyword
	case t == chroma.NameFunction, t == chroma.NameFunctionMagic:
		return face.RoleFunction
	case t == chroma.NameBuiltin, t == chroma.NameBuiltinPseudo:
		return "function.builtin"
	case t == chroma.NameClass, t == chroma.NameException:
		return face.RoleType
	case t == chroma.NameNamespace:
		return face.RoleNamespace
	case t == chroma.NameConstant:
		return face.RoleConstant
	case t == chroma.NameAttribute, t == chroma.NameDecorator:
		return face.RoleAttribute
	case t == chroma.NameTag:
		return face.RoleTag
	case t == chroma.NameLabel:
		return face.RoleLabel
	case t == chroma.NameProperty:
		return face.RoleProperty
	case t.InCategory(chroma.Operator):
		return face.RoleOperator
	case t.InCategory(chroma.Punctuation):
		return face.RolePunctuation
	case t == chroma.GenericHeading, t == chroma.GenericSubheading:
		return face.RoleKeyword
	}
	return ""
}

package highlight

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/chroma/v2"

	"github.com/dshills/facegrid/internal/renderer/face"
	"github.com/dshills/facegrid/internal/renderer/grid"
)

func TestNewLexer(t *testing.T) {
	tests := []struct {
		language string
		wantName string
		wantErr  error
	}{
		{"go", "lexer:go", nil},
		{"rust", "lexer:rust", nil},
		{"no-such-language-anywhere", "", ErrLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			h, err := NewLexer(tt.language)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewLexer() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLexer() error = %v", err)
			}
			if h.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", h.Name(), tt.wantName)
			}
		})
	}
}

func TestLexerApply(t *testing.T) {
	reg := newThemedRegistry(t)
	h, err := NewLexer("rust")
	if err != nil {
		t.Fatal(err)
	}
	g := grid.New([]string{"let x = 5; // hi"})

	if err := h.Apply(context.Background(), g, NewResolver(reg)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	assertRange(t, g, 0, 0, 3, mustLookup(t, reg, face.RoleKeyword))
	assertRange(t, g, 0, 8, 9, mustLookup(t, reg, face.RoleNumber))
	assertRange(t, g, 0, 11, 16, mustLookup(t, reg, face.RoleComment))
}

func TestLexerSplitsTokensAtLineBreaks(t *testing.T) {
	h, err := NewLexer("go")
	if err != nil {
		t.Fatal(err)
	}

	caps, err := h.Captures(context.Background(), []string{"x := 1 /* ünï", "", "end */"})
	if err != nil {
		t.Fatalf("Captures() error = %v", err)
	}

	want := map[Capture]bool{
		{Row: 0, StartCol: 7, EndCol: 13, Name: face.RoleComment}: false,
		{Row: 2, StartCol: 0, EndCol: 6, Name: face.RoleComment}:  false,
	}
	for _, c := range caps {
		if _, ok := want[c]; ok {
			want[c] = true
		}
		if c.Row == 1 {
			t.Errorf("unexpected capture on empty row: %+v", c)
		}
	}
	for c, seen := range want {
		if !seen {
			t.Errorf("missing capture %+v in %+v", c, caps)
		}
	}
}

func TestTokenRole(t *testing.T) {
	tests := []struct {
		tok  chroma.TokenType
		want string
	}{
		{chroma.CommentSingle, face.RoleComment},
		{chroma.CommentPreproc, face.RoleComment},
		{chroma.LiteralStringDouble, face.RoleString},
		{chroma.LiteralStringEscape, "string.escape"},
		{chroma.LiteralNumberHex, face.RoleNumber},
		{chroma.KeywordType, "type.builtin"},
		{chroma.KeywordConstant, "constant.builtin"},
		{chroma.KeywordDeclaration, face.RoleKeyword},
		{chroma.NameFunction, face.RoleFunction},
		{chroma.NameBuiltin, "function.builtin"},
		{chroma.NameClass, face.RoleType},
		{chroma.OperatorWord, face.RoleOperator},
		{chroma.Punctuation, face.RolePunctuation},
		{chroma.Text, ""},
		{chroma.Name, ""},
		{chroma.Error, ""},
	}

	for _, tt := range tests {
		if got := tokenRole(tt.tok); got != tt.want {
			t.Errorf("tokenRole(%v) = %q, want %q", tt.tok, got, tt.want)
		}
	}
}

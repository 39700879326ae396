package highlight

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Engine names a highlighter implementation.
type Engine string

// Available engines.
const (
	EngineTreeSitter Engine = "treesitter"
	EngineLexer      Engine = "lexer"
	EngineRules      Engine = "rules"
)

// ParseEngine returns the engine called s.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case EngineTreeSitter, EngineLexer, EngineRules:
		return e, nil
	}
	return "", fmt.Errorf("%w: unknown engine %q", ErrLanguage, s)
}

// Language describes a language the highlighters recognise.
type Language struct {
	Name       string
	Extensions []string
}

// Factory returns a highlighter factory for l using engine. Engines that
// lack support for l yield a factory that fails with ErrLanguage.
func (l Language) Factory(engine Engine) Factory {
	switch engine {
	case EngineTreeSitter:
		return TreeSitterFactory(l.Name)
	case EngineLexer:
		return LexerFactory(l.Name)
	case EngineRules:
		return RulesFactory(l.Name)
	}
	return func() (Highlighter, error) {
		return nil, fmt.Errorf("%w: unknown engine %q", ErrLanguage, engine)
	}
}

// Languages maps languages by name and file extension.
type Languages struct {
	byName      map[string]Language
	byExtension map[string]Language
}

// NewLanguages creates an empty language table.
func NewLanguages() *Languages {
	return &Languages{
		byName:      make(map[string]Language),
		byExtension: make(map[string]Language),
	}
}

// DefaultLanguages returns the table of built-in languages.
func DefaultLanguages() *Languages {
	ls := NewLanguages()
	ls.Register(Language{Name: "go", Extensions: []string{".go"}})
	ls.Register(Language{Name: "rust", Extensions: []string{".rs"}})
	ls.Register(Language{Name: "python", Extensions: []string{".py", ".pyw", ".pyi"}})
	ls.Register(Language{Name: "javascript", Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}})
	ls.Register(Language{Name: "markdown", Extensions: []string{".md", ".markdown"}})
	return ls
}

// Register adds l, replacing any language with the same name or extensions.
func (ls *Languages) Register(l Language) {
	ls.byName[l.Name] = l
	for _, ext := range l.Extensions {
		ls.byExtension[normalizeExt(ext)] = l
	}
}

// ByName returns the language called name.
func (ls *Languages) ByName(name string) (Language, bool) {
	l, ok := ls.byName[name]
	return l, ok
}

// ByExtension returns the language for a file extension, with or without
// the leading dot.
func (ls *Languages) ByExtension(ext string) (Language, bool) {
	if ext == "" {
		return Language{}, false
	}
	l, ok := ls.byExtension[normalizeExt(ext)]
	return l, ok
}

// ForPath returns the language for a file path.
func (ls *Languages) ForPath(path string) (Language, bool) {
	return ls.ByExtension(filepath.Ext(path))
}

// Names returns the registered language names, sorted.
func (ls *Languages) Names() []string {
	names := make([]string, 0, len(ls.byName))
	for name := range ls.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return ext
}

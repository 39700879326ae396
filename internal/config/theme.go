package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/face"
)

// Theme file formats, by extension.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// ThemeFile is the on-disk form of a theme. Faces are applied over the
// entries of Base, if set: a face whose name Base already defines replaces
// it in place, others are appended in file order.
//
//	name = "mine"
//	base = "monokai"
//
//	[[faces]]
//	name = "keyword"
//	fg = "#ff79c6"
type ThemeFile struct {
	Name  string     `toml:"name" yaml:"name"`
	Base  string     `toml:"base" yaml:"base"`
	Faces []FaceSpec `toml:"faces" yaml:"faces"`
}

// FaceSpec is one theme face. Colours are hex triples or "default"; an
// empty colour means default.
type FaceSpec struct {
	Name string `toml:"name" yaml:"name"`
	Fg   string `toml:"fg" yaml:"fg"`
	Bg   string `toml:"bg" yaml:"bg"`
}

// Entries resolves the theme into registry entries, in theme order.
func (tf ThemeFile) Entries() ([]face.ThemeEntry, error) {
	var entries []face.ThemeEntry
	if tf.Base != "" {
		base, ok := face.BuiltinTheme(tf.Base)
		if !ok {
			return nil, fmt.Errorf("%w: base %q", ErrUnknownTheme, tf.Base)
		}
		entries = append(entries, base...)
	}

	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Name] = i
	}

	for i, spec := range tf.Faces {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, &ValidationError{Key: fmt.Sprintf("faces[%d].name", i), Value: spec.Name, Message: "must not be empty"}
		}
		f, err := spec.Face()
		if err != nil {
			return nil, err
		}
		if at, ok := index[spec.Name]; ok {
			entries[at].Face = f
			continue
		}
		index[spec.Name] = len(entries)
		entries = append(entries, face.ThemeEntry{Name: spec.Name, Face: f})
	}
	return entries, nil
}

// Face parses the spec's colours.
func (s FaceSpec) Face() (core.Face, error) {
	fg, err := core.ParseColor(s.Fg)
	if err != nil {
		return core.Face{}, fmt.Errorf("%w: face %q fg %q", ErrInvalidColor, s.Name, s.Fg)
	}
	bg, err := core.ParseColor(s.Bg)
	if err != nil {
		return core.Face{}, fmt.Errorf("%w: face %q bg %q", ErrInvalidColor, s.Name, s.Bg)
	}
	return core.NewFace(fg, bg), nil
}

// ThemeFormat returns the theme format for path's extension.
func ThemeFormat(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// ParseTheme decodes a theme file in format. Unknown keys are rejected.
func ParseTheme(source string, data []byte, format string) (ThemeFile, error) {
	var tf ThemeFile
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&tf); err != nil {
			return tf, newTOMLError(source, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&tf); err != nil && !errors.Is(err, io.EOF) {
			return tf, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return tf, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return tf, nil
}

// LoadThemeFile reads and resolves the theme file at path.
func LoadThemeFile(path string) ([]face.ThemeEntry, error) {
	format, ok := ThemeFormat(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file %s: %w", path, err)
	}
	tf, err := ParseTheme(path, data, format)
	if err != nil {
		return nil, err
	}
	entries, err := tf.Entries()
	if err != nil {
		return nil, fmt.Errorf("theme file %s: %w", path, err)
	}
	return entries, nil
}

// IsThemeFile reports whether theme names a theme file rather than a
// built-in theme.
func IsThemeFile(theme string) bool {
	if _, ok := face.BuiltinTheme(theme); ok {
		return false
	}
	_, ok := ThemeFormat(theme)
	return ok
}

// ResolveTheme returns the entries of the built-in theme called theme, or
// of the theme file at that path.
func ResolveTheme(theme string) ([]face.ThemeEntry, error) {
	if entries, ok := face.BuiltinTheme(theme); ok {
		return entries, nil
	}
	if IsThemeFile(theme) {
		return LoadThemeFile(theme)
	}
	return nil, fmt.Errorf("%w: %q (built-in themes: %s)", ErrUnknownTheme, theme,
		strings.Join(face.BuiltinThemeNames(), ", "))
}

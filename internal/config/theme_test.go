package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/facegrid/internal/renderer/core"
	"github.com/dshills/facegrid/internal/renderer/face"
)

const tomlTheme = `
name = "mine"

[[faces]]
name = "keyword"
fg = "#ff0000"

[[faces]]
name = "comment"
fg = "#888"
bg = "#000000"

[[faces]]
name = "string"
fg = "default"
`

const yamlTheme = `
name: mine
faces:
  - name: keyword
    fg: "#ff0000"
  - name: comment
    fg: "#888"
    bg: "#000000"
  - name: string
    fg: default
`

func TestLoadThemeFile(t *testing.T) {
	want := []face.ThemeEntry{
		{Name: "keyword", Face: core.Fg(core.ColorFromRGB(255, 0, 0))},
		{Name: "comment", Face: core.NewFace(core.ColorFromRGB(0x88, 0x88, 0x88), core.ColorFromRGB(0, 0, 0))},
		{Name: "string", Face: core.DefaultFace},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "mine.toml", tomlTheme},
		{"yaml", "mine.yaml", yamlTheme},
		{"yml", "mine.yml", yamlTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			entries, err := LoadThemeFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, entries)
		})
	}
}

func TestThemeFileBase(t *testing.T) {
	tf := ThemeFile{
		Base: "monokai",
		Faces: []FaceSpec{
			{Name: face.RoleKeyword, Fg: "#010203"},
			{Name: "markup.heading", Fg: "#ffffff"},
		},
	}
	entries, err := tf.Entries()
	require.NoError(t, err)

	base, _ := face.BuiltinTheme("monokai")
	require.Len(t, entries, len(base)+1)

	for i, e := range base {
		assert.Equal(t, e.Name, entries[i].Name, "base order kept")
		if e.Name == face.RoleKeyword {
			assert.Equal(t, core.Fg(core.ColorFromRGB(1, 2, 3)), entries[i].Face)
		}
	}
	assert.Equal(t, "markup.heading", entries[len(entries)-1].Name)

	again, _ := face.BuiltinTheme("monokai")
	assert.Equal(t, base, again, "built-in theme not modified")
}

func TestThemeFileErrors(t *testing.T) {
	tests := []struct {
		name string
		tf   ThemeFile
		want error
	}{
		{"unknown base", ThemeFile{Base: "nope"}, ErrUnknownTheme},
		{"bad fg", ThemeFile{Faces: []FaceSpec{{Name: "keyword", Fg: "red"}}}, ErrInvalidColor},
		{"bad bg", ThemeFile{Faces: []FaceSpec{{Name: "keyword", Bg: "#12"}}}, ErrInvalidColor},
		{"empty name", ThemeFile{Faces: []FaceSpec{{Fg: "#fff"}}}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tf.Entries()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseThemeRejectsUnknownKeys(t *testing.T) {
	_, err := ParseTheme("t.toml", []byte("name = \"x\"\ncolour = \"red\"\n"), FormatTOML)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe), "toml: %v", err)

	_, err = ParseTheme("t.yaml", []byte("name: x\ncolour: red\n"), FormatYAML)
	assert.True(t, errors.As(err, &pe), "yaml: %v", err)

	_, err = ParseTheme("t.json", []byte("{}"), "json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseThemeEmptyYAML(t *testing.T) {
	tf, err := ParseTheme("empty.yaml", nil, FormatYAML)
	require.NoError(t, err)
	entries, err := tf.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolveTheme(t *testing.T) {
	entries, err := ResolveTheme("dracula")
	require.NoError(t, err)
	want, _ := face.BuiltinTheme("dracula")
	assert.Equal(t, want, entries)
	assert.False(t, IsThemeFile("dracula"))

	path := writeFile(t, "t.toml", tomlTheme)
	assert.True(t, IsThemeFile(path))
	entries, err = ResolveTheme(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = ResolveTheme("no-such-theme")
	assert.ErrorIs(t, err, ErrUnknownTheme)

	_, err = ResolveTheme("/does/not/exist.yaml")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownTheme)

	_, err = LoadThemeFile("theme.ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

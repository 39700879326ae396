// Package config loads facegrid settings and theme files.
//
// Settings come from three places, later ones overriding earlier:
//
//	┌─────────────────────────────┐
//	│  3. Command line flags      │  ← applied by the caller
//	├─────────────────────────────┤
//	│  2. FACEGRID_* environment  │
//	├─────────────────────────────┤
//	│  1. facegrid.toml           │  ← ~/.config/facegrid/facegrid.toml
//	└─────────────────────────────┘
//
// A missing config file is not an error; the built-in defaults apply.
//
// Themes are named either by a built-in theme name or by the path of a
// TOML or YAML theme file; see ResolveTheme.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/facegrid/internal/logging"
	"github.com/dshills/facegrid/internal/renderer/face"
	"github.com/dshills/facegrid/internal/renderer/highlight"
)

// FileName is the name of the settings file inside the config directory.
const FileName = "facegrid.toml"

// Config holds facegrid settings.
type Config struct {
	// Theme is a built-in theme name or the path of a theme file.
	Theme string `toml:"theme"`

	// WatchTheme reloads a file theme when it changes on disk.
	WatchTheme bool `toml:"watch_theme"`

	// Engine selects the base highlighter: treesitter, lexer or rules.
	Engine string `toml:"engine"`

	// Overlays lists Lua highlighter scripts run after the base engine, in
	// order.
	Overlays []string `toml:"overlays"`

	// LineNumbers draws the line-number gutter.
	LineNumbers bool `toml:"line_numbers"`

	// StatusLine draws the status bar under the document.
	StatusLine bool `toml:"status_line"`

	// MinLineNumberWidth is the minimum number of gutter digits.
	MinLineNumberWidth int `toml:"min_line_number_width"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// LogFile receives logs. Empty means stderr.
	LogFile string `toml:"log_file"`

	// HighlightTimeout bounds one highlight pass, as a Go duration. Empty or
	// "0" means no limit.
	HighlightTimeout string `toml:"highlight_timeout"`

	// Extensions maps extra file extensions to language names.
	Extensions map[string]string `toml:"extensions"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme:       face.DefaultThemeName,
		Engine:      string(highlight.EngineTreeSitter),
		LineNumbers: true,
		StatusLine:  true,
		LogLevel:    "warn",
	}
}

// DefaultPath returns the settings file path in the user's config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "facegrid", FileName), nil
}

// Load reads settings from path over the defaults, applies FACEGRID_*
// environment overrides and validates the result. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.Parse(path, data)
}

// Parse decodes TOML settings from data over c. source names the data in
// errors.
func (c *Config) Parse(source string, data []byte) error {
	if err := toml.Unmarshal(data, c); err != nil {
		return newTOMLError(source, err)
	}
	return nil
}

func newTOMLError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

// Validate checks every setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Theme) == "" {
		return &ValidationError{Key: "theme", Value: c.Theme, Message: "must not be empty"}
	}
	if _, err := highlight.ParseEngine(c.Engine); err != nil {
		return &ValidationError{Key: "engine", Value: c.Engine, Message: "must be treesitter, lexer or rules"}
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return &ValidationError{Key: "log_level", Value: c.LogLevel, Message: "must be debug, info, warn or error"}
	}
	if c.MinLineNumberWidth < 0 {
		return &ValidationError{Key: "min_line_number_width", Value: c.MinLineNumberWidth, Message: "must not be negative"}
	}
	if _, err := c.Timeout(); err != nil {
		return &ValidationError{Key: "highlight_timeout", Value: c.HighlightTimeout, Message: err.Error()}
	}
	for ext, lang := range c.Extensions {
		if ext == "" || lang == "" {
			return &ValidationError{Key: "extensions", Value: ext + "=" + lang, Message: "extension and language must not be empty"}
		}
	}
	return nil
}

// HighlightEngine returns the configured engine.
func (c Config) HighlightEngine() highlight.Engine {
	e, err := highlight.ParseEngine(c.Engine)
	if err != nil {
		return highlight.EngineTreeSitter
	}
	return e
}

// Level returns the configured log level.
func (c Config) Level() logging.Level {
	level, ok := logging.ParseLevel(c.LogLevel)
	if !ok {
		return logging.LevelWarn
	}
	return level
}

// Timeout returns the highlight pass limit; zero means none.
func (c Config) Timeout() (time.Duration, error) {
	if c.HighlightTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HighlightTimeout)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return d, nil
}

// RegisterExtensions adds the configured extension mappings to ls.
// Mappings naming an unknown language are returned as an error after the
// known ones are registered.
func (c Config) RegisterExtensions(ls *highlight.Languages) error {
	var unknown []string
	for ext, name := range c.Extensions {
		lang, ok := ls.ByName(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		lang.Extensions = append(append([]string(nil), lang.Extensions...), ext)
		ls.Register(lang)
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: extensions map to unknown languages %s", ErrInvalidValue, strings.Join(unknown, ", "))
	}
	return nil
}

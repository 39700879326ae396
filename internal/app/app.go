// Package app wires the face grid, highlighter pipeline and backend into
// the facegrid viewer and runs its event loop.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/facegrid/internal/config"
	"github.com/dshills/facegrid/internal/config/watcher"
	"github.com/dshills/facegrid/internal/logging"
	"github.com/dshills/facegrid/internal/renderer"
	"github.com/dshills/facegrid/internal/renderer/backend"
	"github.com/dshills/facegrid/internal/renderer/face"
	"github.com/dshills/facegrid/internal/renderer/highlight"
	"github.com/dshills/facegrid/internal/renderer/statusline"
)

// Options configures the application.
type Options struct {
	// Path is the file to show. When empty, Lines are shown instead.
	Path string

	// Lines is the buffer used when Path is empty.
	Lines []string

	// Language forces a language by name instead of detecting it from
	// Path's extension.
	Language string

	// Config holds the loaded settings.
	Config config.Config

	// Languages is the language table; nil means the built-in one.
	Languages *highlight.Languages

	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger
}

// Application is the facegrid viewer: one document, one backend and an
// optional theme file watcher.
type Application struct {
	mu sync.Mutex

	cfg       config.Config
	log       *logging.Logger
	languages *highlight.Languages
	language  string

	doc     *renderer.Document
	backend backend.Backend
	timeout time.Duration
	metrics *Metrics

	// status is nil when the status line is disabled.
	status *statusline.StatusLine
	height int

	// theme is the current theme's built-in name or file path.
	theme string

	running atomic.Bool
}

// New loads the buffer and theme, builds the pipeline and runs the first
// highlight pass.
func New(opts Options) (*Application, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	app := &Application{
		cfg:       opts.Config,
		log:       log.WithComponent("app"),
		languages: opts.Languages,
		metrics:   NewMetrics(),
	}
	if app.languages == nil {
		app.languages = highlight.DefaultLanguages()
	}
	if err := app.cfg.RegisterExtensions(app.languages); err != nil {
		app.log.Warn("%v", err)
	}

	if err := app.bootstrap(opts, log); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap(opts Options, log *logging.Logger) error {
	timeout, err := app.cfg.Timeout()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.timeout = timeout

	entries, err := config.ResolveTheme(app.cfg.Theme)
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	app.theme = app.cfg.Theme
	reg := face.NewRegistry()
	reg.LoadTheme(entries)

	lines := opts.Lines
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return &OperationError{Op: "open", Target: opts.Path, Err: err}
		}
		lines = renderer.SplitLines(string(data))
	}

	lang, err := app.detectLanguage(opts.Language, opts.Path)
	if err != nil {
		return &InitError{Component: "language", Err: err}
	}
	pipeline := BuildPipeline(app.cfg, lang, log)

	app.doc = renderer.NewDocument(reg, pipeline, renderer.Options{
		ShowLineNumbers:    app.cfg.LineNumbers,
		MinLineNumberWidth: app.cfg.MinLineNumberWidth,
		Height:             renderer.DefaultOptions().Height,
		Logger:             log,
	})
	app.doc.Load(lines)

	if app.cfg.StatusLine {
		app.status = statusline.New()
		app.status.SetFilename(opts.Path)
		app.status.SetLanguage(app.language)
		app.status.SetTheme(app.theme)
	}
	app.log.Info("loaded %d lines, language %q, highlighters %v", len(lines), app.language, pipeline.Names())

	app.highlight()
	return nil
}

// detectLanguage returns the forced language, or the one matching path.
// An unrecognised path yields nil: the buffer is shown without a base
// highlighter.
func (app *Application) detectLanguage(name, path string) (*highlight.Language, error) {
	if name != "" {
		lang, ok := app.languages.ByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", highlight.ErrLanguage, name)
		}
		app.language = lang.Name
		return &lang, nil
	}
	if path == "" {
		return nil, nil
	}
	lang, ok := app.languages.ForPath(path)
	if !ok {
		return nil, nil
	}
	app.language = lang.Name
	return &lang, nil
}

// BuildPipeline returns the pipeline cfg describes for lang: the base
// engine's highlighter, when lang is known, followed by each overlay
// script in order.
func BuildPipeline(cfg config.Config, lang *highlight.Language, log *logging.Logger) *highlight.Pipeline {
	var factories []highlight.Factory
	if lang != nil {
		factories = append(factories, lang.Factory(cfg.HighlightEngine()))
	}
	for _, path := range cfg.Overlays {
		factories = append(factories, highlight.ScriptFactory(path))
	}
	return highlight.NewPipeline(log, factories...)
}

// Document returns the application's document.
func (app *Application) Document() *renderer.Document {
	return app.doc
}

// Language returns the name of the detected language, or "".
func (app *Application) Language() string {
	return app.language
}

// Theme returns the current theme's name or file path.
func (app *Application) Theme() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.theme
}

// StatusLine returns the status line, or nil when it is disabled.
func (app *Application) StatusLine() *statusline.StatusLine {
	return app.status
}

// Metrics returns the application metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Dump writes the document's segments to w.
func (app *Application) Dump(w io.Writer) error {
	return app.doc.Dump(w)
}

// SetBackend sets the backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run initialises the backend and runs the event loop until the user
// quits or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if reloader := app.startReloader(); reloader != nil {
		defer func() {
			if err := reloader.Stop(); err != nil {
				app.log.Warn("stopping theme watcher: %v", err)
			}
		}()
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			if err := app.backend.PostInterrupt(quitRequest{}); err != nil {
				app.log.Warn("posting quit: %v", err)
			}
		case <-stop:
		}
	}()

	app.layout(app.backend.Size())
	app.render()

	return app.eventLoop()
}

// startReloader watches the theme file when configured to. Failures only
// disable live reload.
func (app *Application) startReloader() *watcher.ThemeReloader {
	if !app.cfg.WatchTheme || !config.IsThemeFile(app.cfg.Theme) {
		return nil
	}
	r, err := watcher.NewThemeReloader(app.cfg.Theme, app.backend, watcher.WithLogger(app.log))
	if err != nil {
		app.log.Warn("theme live reload disabled: %v", err)
		return nil
	}
	r.Start()
	app.log.Debug("watching theme file %s", r.Path())
	return r
}

// highlight runs one pass over the document, bounded by the configured
// timeout. Failures are logged by the pipeline.
func (app *Application) highlight() highlight.Result {
	ctx := context.Background()
	if app.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.timeout)
		defer cancel()
	}

	res := app.doc.Highlight(ctx)
	app.metrics.RecordPass(res.Elapsed, len(res.Failures))
	return res
}

// layout sizes the document to the screen, less the status line row.
func (app *Application) layout(width, height int) {
	app.height = height
	docHeight := height
	if app.status != nil {
		app.status.Resize(width)
		docHeight = max(height-app.status.Height(), 1)
	}
	app.doc.Resize(docHeight)
}

func (app *Application) render() {
	start := time.Now()
	b := app.backend

	b.Clear()
	calls := app.doc.Draw(b)
	if app.status != nil {
		view := app.doc.Viewport()
		first, end := view.VisibleRange()
		app.status.SetView(first, end, app.doc.Len(), view.ScrollPercent())
		app.status.SetTheme(app.Theme())
		calls += app.status.Render(b, app.height-app.status.Height())
	}
	b.Show()

	app.metrics.RecordRender(time.Since(start), calls)
}

// applyTheme loads entries and re-highlights so that roles the theme adds
// are bound.
func (app *Application) applyTheme(theme string, entries []face.ThemeEntry) {
	app.mu.Lock()
	app.theme = theme
	app.mu.Unlock()

	app.doc.SetTheme(entries)
	app.highlight()
	if app.status != nil {
		app.status.ClearMessage()
	}
	app.log.Info("theme %s applied", theme)
}

// nextTheme switches to the built-in theme after the current one. A file
// theme is followed by the first built-in theme.
func (app *Application) nextTheme() {
	names := face.BuiltinThemeNames()
	current := app.Theme()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := app.applyBuiltinTheme(next); err != nil {
		app.log.Error("switching theme: %v", err)
	}
}

// applyBuiltinTheme applies the built-in theme called name. An unknown name
// leaves the current theme in place.
func (app *Application) applyBuiltinTheme(name string) error {
	entries, ok := face.BuiltinTheme(name)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownTheme, name)
	}
	app.applyTheme(name, entries)
	return nil
}

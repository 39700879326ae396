package watcher

import (
	"github.com/dshills/facegrid/internal/config"
	"github.com/dshills/facegrid/internal/renderer/face"
)

// Poster delivers data to an event loop. The terminal backend's
// PostInterrupt satisfies it.
type Poster interface {
	PostInterrupt(data any) error
}

// ThemeReloaded is posted when a watched theme file parsed cleanly.
type ThemeReloaded struct {
	Path    string
	Entries []face.ThemeEntry
}

// ThemeReloadFailed is posted when a watched theme file changed but could
// not be loaded. The current theme should stay in place.
type ThemeReloadFailed struct {
	Path string
	Err  error
}

// ThemeReloader watches one theme file and posts its parsed entries to an
// event loop. Parsing happens on the watcher goroutine; the face registry
// is only touched by whoever receives the posted value.
type ThemeReloader struct {
	path    string
	poster  Poster
	watcher *Watcher
}

// NewThemeReloader creates a reloader for the theme file at path. Call
// Start to begin watching.
func NewThemeReloader(path string, poster Poster, opts ...Option) (*ThemeReloader, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	r := &ThemeReloader{path: path, poster: poster, watcher: w}
	w.OnChange(r.handle)
	return r, nil
}

// Path returns the watched theme file.
func (r *ThemeReloader) Path() string {
	return r.path
}

// Start begins watching.
func (r *ThemeReloader) Start() {
	r.watcher.Start()
}

// Stop stops watching.
func (r *ThemeReloader) Stop() error {
	return r.watcher.Stop()
}

func (r *ThemeReloader) handle(event Event) {
	if event.Op == OpRemove || event.Op == OpRename {
		r.watcher.log.Debug("theme file %s: %s, keeping current theme", event.Path, event.Op)
		return
	}

	var msg any
	entries, err := config.LoadThemeFile(event.Path)
	if err != nil {
		msg = ThemeReloadFailed{Path: event.Path, Err: err}
	} else {
		msg = ThemeReloaded{Path: event.Path, Entries: entries}
	}
	if err := r.poster.PostInterrupt(msg); err != nil {
		r.watcher.log.Warn("dropping theme reload for %s: %v", event.Path, err)
	}
}

package app

import (
	"errors"

	"github.com/dshills/facegrid/internal/config/watcher"
	"github.com/dshills/facegrid/internal/renderer/backend"
	"github.com/dshills/facegrid/internal/renderer/statusline"
)

// quitRequest is posted to the event loop when Run's context ends.
type quitRequest struct{}

func (app *Application) eventLoop() error {
	for {
		ev := app.backend.PollEvent()
		err := app.handleBackendEvent(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	app.metrics.RecordEvent()

	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev)
	default:
		return nil
	}
}

func (app *Application) handleResize(ev backend.Event) error {
	app.layout(ev.Width, ev.Height)
	app.render()
	return nil
}

// handleKeyEvent maps keys to viewer commands:
//
//	q, Esc, Ctrl-C   quit
//	j, Down          scroll down one line
//	k, Up            scroll up one line
//	Space, PgDn      page down
//	b, PgUp          page up
//	g, Home          first line
//	G, End           last page
//	t                next built-in theme
//	r                highlight again
func (app *Application) handleKeyEvent(ev backend.Event) error {
	view := app.doc.Viewport()

	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyDown:
		view.ScrollBy(1)
	case backend.KeyUp:
		view.ScrollBy(-1)
	case backend.KeyPageDown:
		view.PageDown()
	case backend.KeyPageUp:
		view.PageUp()
	case backend.KeyHome:
		view.ScrollToTop()
	case backend.KeyEnd:
		view.ScrollToBottom()
	case backend.KeyRune:
		switch ev.Rune {
		case 'q':
			return ErrQuit
		case 'j':
			view.ScrollBy(1)
		case 'k':
			view.ScrollBy(-1)
		case ' ':
			view.PageDown()
		case 'b':
			view.PageUp()
		case 'g':
			view.ScrollToTop()
		case 'G':
			view.ScrollToBottom()
		case 't':
			app.nextTheme()
		case 'r':
			app.highlight()
		default:
			return nil
		}
	default:
		return nil
	}

	app.render()
	return nil
}

// handleInterrupt handles values posted from other goroutines. The face
// registry is only changed here, on the event loop.
func (app *Application) handleInterrupt(ev backend.Event) error {
	switch data := ev.Data.(type) {
	case quitRequest:
		return ErrQuit
	case watcher.ThemeReloaded:
		app.metrics.RecordThemeReload(true)
		app.applyTheme(data.Path, data.Entries)
		app.render()
	case watcher.ThemeReloadFailed:
		app.metrics.RecordThemeReload(false)
		app.log.Warn("theme reload failed, keeping current theme: %v", data.Err)
		if app.status != nil {
			app.status.SetMessage("theme reload failed: "+data.Err.Error(), statusline.MessageError)
			app.render()
		}
	}
	return nil
}

package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/facegrid/internal/config"
	"github.com/dshills/facegrid/internal/renderer/core"
)

type chanPoster chan any

func (p chanPoster) PostInterrupt(data any) error {
	select {
	case p <- data:
		return nil
	default:
		return errors.New("full")
	}
}

func (p chanPoster) next(t *testing.T) any {
	t.Helper()
	select {
	case v := <-p:
		return v
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for post")
		return nil
	}
}

func newReloader(t *testing.T, path string) chanPoster {
	t.Helper()
	poster := make(chanPoster, 4)
	r, err := NewThemeReloader(path, poster, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewThemeReloader() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Stop() })
	if r.Path() != path {
		t.Errorf("Path() = %q", r.Path())
	}
	r.Start()
	return poster
}

func TestThemeReloaderPostsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	if err := os.WriteFile(path, []byte("[[faces]]\nname = \"keyword\"\nfg = \"#000000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	poster := newReloader(t, path)

	if err := os.WriteFile(path, []byte("[[faces]]\nname = \"keyword\"\nfg = \"#ff0000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	msg, ok := poster.next(t).(ThemeReloaded)
	if !ok {
		t.Fatalf("posted %T, want ThemeReloaded", msg)
	}
	if len(msg.Entries) != 1 || msg.Entries[0].Face != core.Fg(core.ColorRed) {
		t.Errorf("entries = %+v", msg.Entries)
	}
}

func TestThemeReloaderPostsFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	poster := newReloader(t, path)

	if err := os.WriteFile(path, []byte("faces:\n  - name: keyword\n    fg: purple\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	msg, ok := poster.next(t).(ThemeReloadFailed)
	if !ok {
		t.Fatalf("posted %T, want ThemeReloadFailed", msg)
	}
	if !errors.Is(msg.Err, config.ErrInvalidColor) {
		t.Errorf("err = %v, want ErrInvalidColor", msg.Err)
	}
}

func TestThemeReloaderMissingDirectory(t *testing.T) {
	_, err := NewThemeReloader(filepath.Join(t.TempDir(), "nope", "t.toml"), make(chanPoster, 1))
	if err == nil {
		t.Error("NewThemeReloader() in missing directory succeeded")
	}
}

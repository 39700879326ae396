package face

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/facegrid/internal/renderer/core"
)

var (
	red   = core.Fg(core.ColorRed)
	white = core.Fg(core.ColorWhite)
	gray  = core.Fg(core.ColorGray)
	black = core.NewFace(core.ColorBlack, core.ColorWhite)
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	id, ok := r.Lookup(DefaultName)
	if !ok || id != DefaultID {
		t.Errorf("Lookup(default) = %d, %v; want 0, true", id, ok)
	}
	f, ok := r.Face(DefaultID)
	if !ok || f != core.DefaultFace {
		t.Errorf("Face(0) = %v, %v; want default face", f, ok)
	}
	if r.IsThemeManaged(DefaultID) {
		t.Error("default slot should be permanent")
	}
}

func TestRegisterOrUpdate(t *testing.T) {
	r := NewRegistry()

	id := r.RegisterOrUpdate("error", red)
	if id != 1 {
		t.Errorf("first registration id = %d, want 1", id)
	}

	again := r.RegisterOrUpdate("error", white)
	if again != id {
		t.Errorf("update returned %d, want stable id %d", again, id)
	}
	if f, _ := r.Face(id); f != white {
		t.Errorf("Face(%d) = %v, want updated face", id, f)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if r.Name(id) != "error" {
		t.Errorf("Name(%d) = %q", id, r.Name(id))
	}
}

func TestLookupFailures(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup should fail for an unknown name")
	}
	if _, ok := r.Face(42); ok {
		t.Error("Face should fail for an unknown id")
	}
	if got := r.FaceByName("missing"); got != InvalidFace {
		t.Errorf("FaceByName(missing) = %v, want InvalidFace", got)
	}
	if got := r.Resolve(42); got != InvalidFace {
		t.Errorf("Resolve(42) = %v, want InvalidFace", got)
	}
	if r.Name(42) != "" {
		t.Error("Name of unknown id should be empty")
	}
	if InvalidFace == core.DefaultFace {
		t.Error("InvalidFace must be distinct from the default face")
	}
}

func TestLoadThemeIdempotent(t *testing.T) {
	r := NewRegistry()
	theme := []ThemeEntry{{"keyword", red}, {"comment", gray}, {"string", white}}

	r.LoadTheme(theme)
	first := make(map[string]ID)
	for _, e := range theme {
		id, ok := r.Lookup(e.Name)
		if !ok {
			t.Fatalf("Lookup(%q) failed after LoadTheme", e.Name)
		}
		first[e.Name] = id
		if !r.IsThemeManaged(id) {
			t.Errorf("%q should be theme-managed", e.Name)
		}
	}

	r.LoadTheme(theme)
	for _, e := range theme {
		id, _ := r.Lookup(e.Name)
		if id != first[e.Name] {
			t.Errorf("%q moved from %d to %d on reload", e.Name, first[e.Name], id)
		}
	}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
}

func TestLoadThemeContinuity(t *testing.T) {
	r := NewRegistry()
	r.LoadTheme([]ThemeEntry{{"keyword", red}, {"comment", gray}, {"string", white}})
	kw, _ := r.Lookup("keyword")
	str, _ := r.Lookup("string")

	// "string" moves position and "keyword" changes colour.
	r.LoadTheme([]ThemeEntry{{"string", black}, {"keyword", white}})

	if id, ok := r.Lookup("keyword"); !ok || id != kw {
		t.Errorf("keyword id = %d, %v; want %d", id, ok, kw)
	}
	if f, _ := r.Face(kw); f != white {
		t.Errorf("keyword face = %v, want the new definition", f)
	}
	if id, _ := r.Lookup("string"); id != str {
		t.Errorf("string id = %d, want %d", id, str)
	}
	if _, ok := r.Lookup("comment"); ok {
		t.Error("comment should be unbound after a theme without it")
	}

	got := r.ThemeIDs()
	if len(got) != 2 || got[0] != str || got[1] != kw {
		t.Errorf("ThemeIDs() = %v, want [%d %d]", got, str, kw)
	}
}

func TestLoadThemeRetiredSlotKeepsFace(t *testing.T) {
	r := NewRegistry()
	r.LoadTheme([]ThemeEntry{{"keyword", red}, {"comment", gray}})
	comment, _ := r.Lookup("comment")

	r.LoadTheme([]ThemeEntry{{"keyword", red}})

	if f, ok := r.Face(comment); !ok || f != gray {
		t.Errorf("retired slot face = %v, %v; want last face kept", f, ok)
	}
	if r.Name(comment) != "" {
		t.Errorf("retired slot should be unbound, got %q", r.Name(comment))
	}

	// A new name reuses the retired slot instead of growing the registry.
	r.LoadTheme([]ThemeEntry{{"keyword", red}, {"type", white}})
	typ, _ := r.Lookup("type")
	if typ != comment {
		t.Errorf("type id = %d, want reused slot %d", typ, comment)
	}
	if f, _ := r.Face(typ); f != white {
		t.Errorf("reused slot face = %v", f)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestLoadThemePermanentSlot(t *testing.T) {
	r := NewRegistry()
	errID := r.RegisterOrUpdate("error", red)

	r.LoadTheme([]ThemeEntry{{"keyword", white}, {"error", black}})
	if id, _ := r.Lookup("error"); id != errID {
		t.Errorf("error id = %d, want permanent %d", id, errID)
	}
	if f, _ := r.Face(errID); f != black {
		t.Errorf("error face = %v, want theme definition", f)
	}
	if r.IsThemeManaged(errID) {
		t.Error("permanent slot must not become theme-managed")
	}

	// Dropping it from the next theme leaves the permanent binding alone.
	r.LoadTheme([]ThemeEntry{{"keyword", white}})
	if id, ok := r.Lookup("error"); !ok || id != errID {
		t.Errorf("permanent binding lost: %d, %v", id, ok)
	}
	for _, id := range r.ThemeIDs() {
		if id == errID {
			t.Error("ThemeIDs should not contain the permanent slot")
		}
	}
}

func TestLoadThemeDuplicateNames(t *testing.T) {
	r := NewRegistry()
	r.LoadTheme([]ThemeEntry{{"keyword", red}, {"keyword", white}})

	id, _ := r.Lookup("keyword")
	if f, _ := r.Face(id); f != white {
		t.Errorf("duplicate name face = %v, want last definition", f)
	}
	if got := r.ThemeIDs(); len(got) != 1 {
		t.Errorf("ThemeIDs() = %v, want one slot", got)
	}
}

func TestBuiltinThemes(t *testing.T) {
	names := BuiltinThemeNames()
	if len(names) != 5 {
		t.Fatalf("BuiltinThemeNames() = %v", names)
	}
	for _, name := range names {
		entries, ok := BuiltinTheme(name)
		if !ok || len(entries) == 0 {
			t.Errorf("BuiltinTheme(%q) empty", name)
		}
	}
	if _, ok := BuiltinTheme(DefaultThemeName); !ok {
		t.Error("default theme missing")
	}
	if _, ok := BuiltinTheme("nope"); ok {
		t.Error("unknown theme should not resolve")
	}

	// Switching between built-ins keeps every role's handle.
	r := NewRegistry()
	dark, _ := BuiltinTheme("default-dark")
	r.LoadTheme(dark)
	before := make(map[string]ID)
	for _, e := range dark {
		before[e.Name], _ = r.Lookup(e.Name)
	}
	light, _ := BuiltinTheme("light")
	r.LoadTheme(light)
	for _, e := range light {
		if id, _ := r.Lookup(e.Name); id != before[e.Name] {
			t.Errorf("%q changed id across built-in themes", e.Name)
		}
	}
}

func TestLoadThemeProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewRegistry()
		pool := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		largest := 0

		loads := rapid.IntRange(1, 8).Draw(rt, "loads")
		for i := 0; i < loads; i++ {
			names := rapid.SliceOfDistinct(rapid.SampledFrom(pool), rapid.ID[string]).Draw(rt, fmt.Sprintf("theme%d", i))
			entries := make([]ThemeEntry, len(names))
			for j, n := range names {
				entries[j] = ThemeEntry{Name: n, Face: core.Fg(core.ColorFromRGB(uint8(i), uint8(j), 0))}
			}

			before := make(map[string]ID)
			for _, n := range names {
				if id, ok := r.Lookup(n); ok {
					before[n] = id
				}
			}

			r.LoadTheme(entries)
			if len(names) > largest {
				largest = len(names)
			}

			for _, e := range entries {
				id, ok := r.Lookup(e.Name)
				if !ok {
					rt.Fatalf("%q unbound after load", e.Name)
				}
				if prev, had := before[e.Name]; had && prev != id {
					rt.Fatalf("%q moved from %d to %d", e.Name, prev, id)
				}
				if f, _ := r.Face(id); f != e.Face {
					rt.Fatalf("%q face = %v, want %v", e.Name, f, e.Face)
				}
			}
			if r.Len() > 1+largest {
				rt.Fatalf("Len() = %d exceeds bound %d", r.Len(), 1+largest)
			}
		}
	})
}

// Package face provides the face registry: a stable handle-based store of
// named faces that highlighters write into the grid and renderers resolve
// back into colours.
//
// Handles are plain integers so that a grid of them stays compact. A handle
// issued for a name remains valid for the life of the registry; theme
// reloads overwrite faces in place rather than reissuing handles.
package face

import "github.com/dshills/facegrid/internal/renderer/core"

// ID is a stable handle into a Registry.
type ID uint32

// DefaultID is the reserved handle of the default, unstyled face.
const DefaultID ID = 0

// DefaultName is the name bound to DefaultID.
const DefaultName = "default"

// InvalidFace is returned for lookups that cannot be satisfied.
// It is deliberately loud so that missing theme entries are noticed.
var InvalidFace = core.NewFace(core.ColorMagenta, core.ColorYellow)

// ThemeEntry is one named face of a theme.
type ThemeEntry struct {
	Name string
	Face core.Face
}

// Registry owns the set of faces and the name bindings that point at them.
//
// Slots are never removed. A theme-managed slot whose name is dropped by a
// later theme keeps its last face and is handed to the next new name a
// theme introduces, so the number of slots is bounded by the permanent
// registrations plus the largest theme ever loaded.
//
// A Registry is not safe for concurrent use; it is owned by the goroutine
// that runs highlight passes and renders.
type Registry struct {
	faces  []core.Face
	names  []string // reverse binding, "" when the slot is unbound
	byName map[string]ID
	themed []bool

	// themeOrder lists the theme-managed slots bound by the current theme,
	// in theme order.
	themeOrder []ID

	// spare lists theme-managed slots not bound by the current theme.
	spare []ID
}

// NewRegistry creates a registry holding only the default face.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]ID),
	}
	r.alloc(DefaultName, core.DefaultFace, false)
	return r
}

// alloc appends a new slot bound to name.
func (r *Registry) alloc(name string, f core.Face, themed bool) ID {
	id := ID(len(r.faces))
	r.faces = append(r.faces, f)
	r.names = append(r.names, name)
	r.themed = append(r.themed, themed)
	r.byName[name] = id
	return id
}

// RegisterOrUpdate binds name to f. If name is already bound its slot is
// overwritten and the existing ID returned; otherwise a new permanent slot
// is allocated.
func (r *Registry) RegisterOrUpdate(name string, f core.Face) ID {
	if id, ok := r.byName[name]; ok {
		r.faces[id] = f
		return id
	}
	return r.alloc(name, f, false)
}

// Lookup returns the ID bound to name.
func (r *Registry) Lookup(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Face returns the face stored at id.
func (r *Registry) Face(id ID) (core.Face, bool) {
	if int(id) >= len(r.faces) {
		return core.Face{}, false
	}
	return r.faces[id], true
}

// Resolve returns the face stored at id, or InvalidFace for an unknown id.
func (r *Registry) Resolve(id ID) core.Face {
	if f, ok := r.Face(id); ok {
		return f
	}
	return InvalidFace
}

// FaceByName returns the face bound to name, or InvalidFace.
func (r *Registry) FaceByName(name string) core.Face {
	if id, ok := r.byName[name]; ok {
		return r.faces[id]
	}
	return InvalidFace
}

// Name returns the name currently bound to id, or "" if the slot is
// unbound or unknown.
func (r *Registry) Name(id ID) string {
	if int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

// Len returns the number of slots ever allocated.
func (r *Registry) Len() int {
	return len(r.faces)
}

// IsThemeManaged reports whether id was allocated by a theme load.
func (r *Registry) IsThemeManaged(id ID) bool {
	return int(id) < len(r.themed) && r.themed[id]
}

// ThemeIDs returns the slots bound by the current theme, in theme order.
func (r *Registry) ThemeIDs() []ID {
	out := make([]ID, len(r.themeOrder))
	copy(out, r.themeOrder)
	return out
}

// LoadTheme replaces the theme-managed faces with entries.
//
// A name that is already bound keeps its ID and gets the new face. A name
// seen for the first time takes a theme slot the new theme does not rebind,
// in the order the previous theme listed them, before any fresh slot is
// allocated. Names of the previous theme that entries do not mention are
// unbound; their slots keep their last face until reused.
//
// Entries naming a permanent slot (one created by RegisterOrUpdate)
// update that slot's face but do not make it theme-managed. Duplicate names
// resolve to one slot holding the last definition.
func (r *Registry) LoadTheme(entries []ThemeEntry) {
	want := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		want[e.Name] = struct{}{}
	}

	// Theme slots whose names survive stay put; the rest become reusable.
	free := make([]ID, 0, len(r.themeOrder)+len(r.spare))
	for _, id := range r.themeOrder {
		if _, keep := want[r.names[id]]; !keep {
			r.unbind(id)
			free = append(free, id)
		}
	}
	free = append(free, r.spare...)

	order := make([]ID, 0, len(entries))
	seen := make(map[ID]struct{}, len(entries))
	for _, e := range entries {
		id, ok := r.byName[e.Name]
		switch {
		case ok:
			r.faces[id] = e.Face
		case len(free) > 0:
			id, free = free[0], free[1:]
			r.faces[id] = e.Face
			r.names[id] = e.Name
			r.byName[e.Name] = id
		default:
			id = r.alloc(e.Name, e.Face, true)
		}
		if !r.themed[id] {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		order = append(order, id)
	}

	r.themeOrder = order
	r.spare = free
}

// unbind removes the name binding of a slot without touching its face.
func (r *Registry) unbind(id ID) {
	if name := r.names[id]; name != "" {
		if bound, ok := r.byName[name]; ok && bound == id {
			delete(r.byName, name)
		}
	}
	r.names[id] = ""
}

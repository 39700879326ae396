package highlight

import (
	"strings"

	"github.com/dshills/facegrid/internal/renderer/face"
)

// aliases maps capture roles that name a refinement of another role to
// the role whose face they share when the theme does not define them.
var aliases = map[string]string{
	"function.method":    face.RoleFunction,
	"function.macro":     face.RoleFunction,
	"function.call":      face.RoleFunction,
	"function.builtin":   face.RoleFunction,
	"method":             face.RoleFunction,
	"constructor":        face.RoleType,
	"type.builtin":       face.RoleType,
	"constant.builtin":   face.RoleConstant,
	"boolean":            face.RoleConstant,
	"variable.builtin":   face.RoleVariable,
	"variable.parameter": face.RoleVariable,
	"parameter":          face.RoleVariable,
	"field":              face.RoleProperty,
	"string.special":     face.RoleString,
	"string.escape":      face.RoleString,
	"escape":             face.RoleString,
	"character":          face.RoleString,
	"float":              face.RoleNumber,
	"module":             face.RoleNamespace,
	"include":            face.RoleKeyword,
	"conditional":        face.RoleKeyword,
	"repeat":             face.RoleKeyword,

	"markup.heading":       face.RoleKeyword,
	"markup.quote":         face.RoleComment,
	"markup.list":          face.RolePunctuation,
	"markup.raw":           face.RoleString,
	"markup.strong":        face.RoleConstant,
	"markup.italic":        face.RoleType,
	"markup.strikethrough": face.RoleComment,
	"markup.link":          face.RoleFunction,
}

// Resolver maps capture role names to face handles. It is created for a
// single pass; results are memoised, so a theme change needs a new Resolver.
type Resolver struct {
	reg   *face.Registry
	cache map[string]face.ID
}

// NewResolver creates a resolver over reg.
func NewResolver(reg *face.Registry) *Resolver {
	return &Resolver{
		reg:   reg,
		cache: make(map[string]face.ID),
	}
}

// Resolve returns the face handle for a role. A leading '@' is ignored.
// The role is looked up as is, then through the alias table, then with
// its last dotted segment removed, repeatedly. A role that never matches
// resolves to face.DefaultID.
func (r *Resolver) Resolve(role string) face.ID {
	if id, ok := r.cache[role]; ok {
		return id
	}
	id := r.lookup(strings.TrimPrefix(role, "@"))
	r.cache[role] = id
	return id
}

func (r *Resolver) lookup(name string) face.ID {
	for name != "" {
		if id, ok := r.reg.Lookup(name); ok {
			return id
		}
		if alias, ok := aliases[name]; ok {
			name = alias
			continue
		}
		dot := strings.LastIndexByte(name, '.')
		if dot < 0 {
			break
		}
		name = name[:dot]
	}
	return face.DefaultID
}

package face

import (
	"sort"

	"github.com/dshills/facegrid/internal/renderer/core"
)

// Canonical role names. Highlighters emit these (or dotted refinements of
// them) and themes define faces for them.
const (
	RoleKeyword     = "keyword"
	RoleComment     = "comment"
	RoleString      = "string"
	RoleNumber      = "number"
	RoleFunction    = "function"
	RoleType        = "type"
	RoleConstant    = "constant"
	RoleVariable    = "variable"
	RoleOperator    = "operator"
	RolePunctuation = "punctuation"
	RoleProperty    = "property"
	RoleNamespace   = "namespace"
	RoleLabel       = "label"
	RoleAttribute   = "attribute"
	RoleTag         = "tag"
	RoleError       = "error"
	RoleLineNumber  = "line-number"
)

// palette holds the colours of a built-in theme.
type palette struct {
	keyword, comment, str, number, function, typ core.Color
	constant, variable, operator, punctuation    core.Color
	invalid, invalidBg, lineNumber               core.Color
}

// entries expands a palette into theme order.
func (p palette) entries() []ThemeEntry {
	return []ThemeEntry{
		{RoleKeyword, core.Fg(p.keyword)},
		{RoleComment, core.Fg(p.comment)},
		{RoleString, core.Fg(p.str)},
		{RoleNumber, core.Fg(p.number)},
		{RoleFunction, core.Fg(p.function)},
		{RoleType, core.Fg(p.typ)},
		{RoleConstant, core.Fg(p.constant)},
		{RoleVariable, core.Fg(p.variable)},
		{RoleOperator, core.Fg(p.operator)},
		{RolePunctuation, core.Fg(p.punctuation)},
		{RoleProperty, core.Fg(p.variable)},
		{RoleNamespace, core.Fg(p.typ)},
		{RoleLabel, core.Fg(p.constant)},
		{RoleAttribute, core.Fg(p.function)},
		{RoleTag, core.Fg(p.keyword)},
		{RoleError, core.NewFace(p.invalid, p.invalidBg)},
		{RoleLineNumber, core.Fg(p.lineNumber)},
	}
}

var builtinThemes = map[string]palette{
	"default-dark": {
		keyword:     core.ColorFromRGB(86, 156, 214),
		comment:     core.ColorFromRGB(106, 153, 85),
		str:         core.ColorFromRGB(206, 145, 120),
		number:      core.ColorFromRGB(181, 206, 168),
		function:    core.ColorFromRGB(220, 220, 170),
		typ:         core.ColorFromRGB(78, 201, 176),
		constant:    core.ColorFromRGB(79, 193, 255),
		variable:    core.ColorFromRGB(156, 220, 254),
		operator:    core.ColorFromRGB(212, 212, 212),
		punctuation: core.ColorFromRGB(212, 212, 212),
		invalid:     core.ColorFromRGB(244, 71, 71),
		invalidBg:   core.ColorDefault,
		lineNumber:  core.ColorGray,
	},
	"monokai": {
		keyword:     core.ColorFromRGB(249, 38, 114),
		comment:     core.ColorFromRGB(117, 113, 94),
		str:         core.ColorFromRGB(230, 219, 116),
		number:      core.ColorFromRGB(174, 129, 255),
		function:    core.ColorFromRGB(166, 226, 46),
		typ:         core.ColorFromRGB(102, 217, 239),
		constant:    core.ColorFromRGB(174, 129, 255),
		variable:    core.ColorFromRGB(248, 248, 242),
		operator:    core.ColorFromRGB(249, 38, 114),
		punctuation: core.ColorFromRGB(248, 248, 242),
		invalid:     core.ColorFromRGB(249, 38, 114),
		invalidBg:   core.ColorFromRGB(80, 20, 40),
		lineNumber:  core.ColorFromRGB(144, 144, 138),
	},
	"dracula": {
		keyword:     core.ColorFromRGB(255, 121, 198),
		comment:     core.ColorFromRGB(98, 114, 164),
		str:         core.ColorFromRGB(241, 250, 140),
		number:      core.ColorFromRGB(189, 147, 249),
		function:    core.ColorFromRGB(80, 250, 123),
		typ:         core.ColorFromRGB(139, 233, 253),
		constant:    core.ColorFromRGB(189, 147, 249),
		variable:    core.ColorFromRGB(248, 248, 242),
		operator:    core.ColorFromRGB(255, 121, 198),
		punctuation: core.ColorFromRGB(248, 248, 242),
		invalid:     core.ColorFromRGB(255, 85, 85),
		invalidBg:   core.ColorDefault,
		lineNumber:  core.ColorFromRGB(98, 114, 164),
	},
	"solarized-dark": {
		keyword:     core.ColorFromRGB(133, 153, 0),
		comment:     core.ColorFromRGB(88, 110, 117),
		str:         core.ColorFromRGB(42, 161, 152),
		number:      core.ColorFromRGB(211, 54, 130),
		function:    core.ColorFromRGB(38, 139, 210),
		typ:         core.ColorFromRGB(181, 137, 0),
		constant:    core.ColorFromRGB(108, 113, 196),
		variable:    core.ColorFromRGB(38, 139, 210),
		operator:    core.ColorFromRGB(133, 153, 0),
		punctuation: core.ColorFromRGB(88, 110, 117),
		invalid:     core.ColorFromRGB(220, 50, 47),
		invalidBg:   core.ColorDefault,
		lineNumber:  core.ColorFromRGB(88, 110, 117),
	},
	"light": {
		keyword:     core.ColorFromRGB(0, 0, 255),
		comment:     core.ColorFromRGB(0, 128, 0),
		str:         core.ColorFromRGB(163, 21, 21),
		number:      core.ColorFromRGB(9, 134, 88),
		function:    core.ColorFromRGB(121, 94, 38),
		typ:         core.ColorFromRGB(38, 127, 153),
		constant:    core.ColorFromRGB(0, 112, 193),
		variable:    core.ColorFromRGB(0, 16, 128),
		operator:    core.ColorFromRGB(0, 0, 0),
		punctuation: core.ColorFromRGB(0, 0, 0),
		invalid:     core.ColorFromRGB(205, 49, 49),
		invalidBg:   core.ColorDefault,
		lineNumber:  core.ColorFromRGB(110, 118, 129),
	},
}

// DefaultThemeName is the theme loaded when none is configured.
const DefaultThemeName = "default-dark"

// BuiltinTheme returns the entries of a built-in theme.
func BuiltinTheme(name string) ([]ThemeEntry, bool) {
	p, ok := builtinThemes[name]
	if !ok {
		return nil, false
	}
	return p.entries(), true
}

// BuiltinThemeNames returns the names of the built-in themes, sorted.
func BuiltinThemeNames() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

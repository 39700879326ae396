package highlight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/facegrid/internal/renderer/grid"
)

// Script is a highlighter written in Lua. The script defines a global
// function highlight(lines) that receives the buffer as a 1-based table of
// strings and reports spans by calling
//
//	capture(row, first, last, role)
//
// where row is 1-based and first and last are inclusive 1-based byte
// positions, as returned by string.find.
//
// Each pass runs in a fresh interpreter with only the base, table, string
// and math libraries loaded.
type Script struct {
	name  string
	proto *lua.FunctionProto
}

// NewScript compiles source. name identifies the script in errors.
func NewScript(name, source string) (*Script, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScript, name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrScript, name, err)
	}
	return &Script{name: "script:" + name, proto: proto}, nil
}

// LoadScript reads and compiles the script at path.
func LoadScript(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	return NewScript(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), string(src))
}

// ScriptFactory returns a factory that loads the script at path.
func ScriptFactory(path string) Factory {
	return func() (Highlighter, error) {
		return LoadScript(path)
	}
}

// Name implements Highlighter.
func (h *Script) Name() string {
	return h.name
}

// Captures runs the script over lines.
func (h *Script) Captures(ctx context.Context, lines []string) (caps []Capture, err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openScriptLibraries(L)
	L.SetContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			caps, err = nil, fmt.Errorf("%w: %s: lua panic: %v", ErrScript, h.name, r)
		}
	}()

	cols := newColumns(lines)
	L.SetGlobal("capture", L.NewFunction(func(L *lua.LState) int {
		row := L.CheckInt(1) - 1
		first := L.CheckInt(2) - 1
		last := L.CheckInt(3)
		role := L.CheckString(4)
		if row < 0 || row >= len(lines) || first < 0 || last <= first {
			return 0
		}
		caps = append(caps, Capture{
			Row:      row,
			StartCol: cols.col(row, first),
			EndCol:   cols.col(row, last),
			Name:     role,
		})
		return 0
	}))

	L.Push(L.NewFunctionFromProto(h.proto))
	if err := L.PCall(0, 0, nil); err != nil {
		return nil, h.wrap(ctx, err)
	}

	fn, ok := L.GetGlobal("highlight").(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %s: highlight is not a function", ErrScript, h.name)
	}
	tbl := L.CreateTable(len(lines), 0)
	for _, line := range lines {
		tbl.Append(lua.LString(line))
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, tbl); err != nil {
		return nil, h.wrap(ctx, err)
	}
	return caps, nil
}

func (h *Script) wrap(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %s: %v", ErrScript, h.name, err)
}

// Apply implements Highlighter.
func (h *Script) Apply(ctx context.Context, g *grid.Grid, res *Resolver) error {
	caps, err := h.Captures(ctx, g.Lines())
	if err != nil {
		return err
	}
	ApplyCaptures(g, res, caps)
	return nil
}

// openScriptLibraries opens the libraries scripts may use and removes the
// base functions that load code from outside the script.
func openScriptLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

package pandoc

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// MacrosFile with the project macros, relative to the filters directory.
// It must define a global "expand" function, text in, text out.
const MacrosFile = "expand-macros.lua"

const expandFunction = "expand"

// MacroExpander rewrites course texts through the project's Lua macros,
// an in-process replacement for the "lua -l expand-macros" pipe.
// The VM carries the complete string library, macros rely on string.gsub.
type MacroExpander struct {
	mutex sync.Mutex
	state *lua.LState
}

// NewMacroExpander compiles the macro source, the name is used in errors only.
func NewMacroExpander(name, source string) (*MacroExpander, error) {
	state := lua.NewState()
	if err := state.DoString(source); err != nil {
		return nil, errors.Errorf(`cannot load macro file "%s": %w`, name, err)
	}
	if state.GetGlobal(expandFunction).Type() != lua.LTFunction {
		return nil, errors.Errorf(`macro file "%s" does not define the "%s" function`, name, expandFunction)
	}
	return &MacroExpander{state: state}, nil
}

// Expand runs the text through the "expand" function.
// The Lua state is not thread safe, calls are serialized.
func (e *MacroExpander) Expand(text string) (string, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	err := e.state.CallByParam(
		lua.P{Fn: e.state.GetGlobal(expandFunction), NRet: 1, Protect: true},
		lua.LString(text),
	)
	if err != nil {
		return "", errors.Errorf(`macro expansion failed: %w`, err)
	}
	out := e.state.Get(-1)
	e.state.Pop(1)
	if !lua.LVCanConvToString(out) {
		return "", errors.New("macro expansion returned no text")
	}
	return lua.LVAsString(out), nil
}

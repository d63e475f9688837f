package exercises

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// ExtractFile with the project exercise bank hook, relative to the
// filters directory. It must define a global "extract" function that
// maps a variant spec to the LaTeX source of the problem set.
const ExtractFile = "extract.lua"

const extractFunction = "extract"

// Extractor renders variant specs to LaTeX through the project's Lua
// hook, an in-process replacement for the "lua extract.lua" pipe.
type Extractor struct {
	mutex sync.Mutex
	state *lua.LState
}

// NewExtractor compiles the hook source, the name is used in errors only.
func NewExtractor(name, source string) (*Extractor, error) {
	state := lua.NewState()
	if err := state.DoString(source); err != nil {
		return nil, errors.Errorf(`cannot load extract file "%s": %w`, name, err)
	}
	if state.GetGlobal(extractFunction).Type() != lua.LTFunction {
		return nil, errors.Errorf(`extract file "%s" does not define the "%s" function`, name, extractFunction)
	}
	return &Extractor{state: state}, nil
}

// Extract runs the exercise spec through the "extract" function.
// The Lua state is not thread safe, calls are serialized.
func (e *Extractor) Extract(spec string) (string, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	err := e.state.CallByParam(
		lua.P{Fn: e.state.GetGlobal(extractFunction), NRet: 1, Protect: true},
		lua.LString(spec),
	)
	if err != nil {
		return "", errors.Errorf(`exercise extraction failed: %w`, err)
	}
	out := e.state.Get(-1)
	e.state.Pop(1)
	if !lua.LVCanConvToString(out) {
		return "", errors.New("exercise extraction returned no text")
	}
	return lua.LVAsString(out), nil
}

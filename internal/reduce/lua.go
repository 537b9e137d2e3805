package reduce

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultScriptTimeout bounds a single reduce call.
const DefaultScriptTimeout = time.Second

// reduceFunc is the global a reducer script must define.
const reduceFunc = "reduce"

// LuaReducer folds values with a Lua function `reduce(acc, v)`.
//
// The script runs in a sandboxed state with only the base, table, string
// and math libraries. gopher-lua states are not goroutine-safe; calls are
// serialized with a mutex.
type LuaReducer struct {
	mu sync.Mutex

	name    string
	timeout time.Duration
	L       *lua.LState
	fn      *lua.LFunction

	closed bool
}

// LuaOption configures a LuaReducer.
type LuaOption func(*LuaReducer)

// WithScriptName names the script in errors.
func WithScriptName(name string) LuaOption {
	return func(r *LuaReducer) {
		r.name = name
	}
}

// WithScriptTimeout sets the time limit for one reduce call.
// Zero disables the limit.
func WithScriptTimeout(d time.Duration) LuaOption {
	return func(r *LuaReducer) {
		r.timeout = d
	}
}

// NewLua loads source and returns a reducer calling its reduce function.
func NewLua(source string, opts ...LuaOption) (*LuaReducer, error) {
	r := &LuaReducer{timeout: DefaultScriptTimeout}
	for _, opt := range opts {
		opt(r)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, &ScriptError{Name: r.name, Err: err}
	}

	fn, ok := L.GetGlobal(reduceFunc).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, &ScriptError{Name: r.name, Err: fmt.Errorf("script does not define function %q", reduceFunc)}
	}

	r.L = L
	r.fn = fn
	return r, nil
}

// openSafeLibraries opens the side-effect free standard libraries and
// removes the loaders from base.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Call runs reduce(acc, v) and returns its numeric result.
func (r *LuaReducer) Call(acc, v float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, ErrReducerClosed
	}

	if r.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.L.SetContext(ctx)
		defer r.L.RemoveContext()
	}

	err := r.L.CallByParam(lua.P{
		Fn:      r.fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(acc), lua.LNumber(v))
	if err != nil {
		return 0, &ScriptError{Name: r.name, Err: err}
	}

	ret := r.L.Get(-1)
	r.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, &ScriptError{Name: r.name, Err: fmt.Errorf("reduce returned %s, want number", ret.Type())}
	}
	return float64(n), nil
}

// Func adapts the reducer to a Func. A script failure panics with the
// *ScriptError, so it reaches the caller like any other callback failure.
func (r *LuaReducer) Func() Func[float64] {
	return func(acc, v float64) float64 {
		out, err := r.Call(acc, v)
		if err != nil {
			panic(err)
		}
		return out
	}
}

// Close releases the Lua state. Further calls return ErrReducerClosed.
func (r *LuaReducer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}

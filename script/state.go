package script

import (
	"fortio.org/safecast"
	lua "github.com/yuin/gopher-lua"

	"github.com/fbaltor/generators"
)

// StateTypeName is the Lua type name of state handles.
const StateTypeName = "State"

// stateHandle gives Lua access to a state for the duration of one call.
type stateHandle struct {
	state *generators.StdState
}

func (h *stateHandle) release() { h.state = nil }

func registerState(L *lua.LState) {
	mt := L.NewTypeMetatable(StateTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"below":  stateBelow,
		"choose": stateChoose,
		"id":     stateID,
	}))
}

// wrapState returns a handle on state. The caller must release it before
// returning control to whoever owns state.
func wrapState(L *lua.LState, state *generators.StdState) (*lua.LUserData, *stateHandle) {
	h := &stateHandle{state: state}
	ud := L.NewUserData()
	ud.Value = h
	L.SetMetatable(ud, L.GetTypeMetatable(StateTypeName))
	return ud, h
}

func checkState(L *lua.LState, n int) *generators.StdState {
	ud := L.CheckUserData(n)
	h, ok := ud.Value.(*stateHandle)
	if !ok {
		L.ArgError(n, "State expected")
		return nil
	}
	if h.state == nil {
		L.ArgError(n, "state handle used after its call returned")
		return nil
	}
	return h.state
}

func stateBelow(L *lua.LState) int {
	state := checkState(L, 1)
	bound, err := safecast.Conv[uint64](L.CheckInt64(2))
	if err != nil {
		L.ArgError(2, "bound must not be negative")
		return 0
	}
	L.Push(lua.LNumber(state.Rand().Below(bound)))
	return 1
}

func stateChoose(L *lua.LState) int {
	state := checkState(L, 1)
	tbl := L.CheckTable(2)
	items := make([]lua.LValue, tbl.Len())
	for i := range items {
		items[i] = tbl.RawGetInt(i + 1)
	}
	if len(items) == 0 {
		L.ArgError(2, "choose from empty table")
		return 0
	}
	L.Push(generators.Choose(state.Rand(), items))
	return 1
}

func stateID(L *lua.LState) int {
	state := checkState(L, 1)
	L.Push(lua.LString(state.ID().String()))
	return 1
}

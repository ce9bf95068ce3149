package script

import (
	"fortio.org/safecast"
	lua "github.com/yuin/gopher-lua"

	"github.com/fbaltor/generators"
)

// Global names the generator classes are registered under.
const (
	RandBytesGeneratorName      = "RandBytesGenerator"
	RandPrintablesGeneratorName = "RandPrintablesGenerator"
	GeneratorName               = "Generator"
)

type nativeGenerator interface {
	generators.Generator[generators.BytesInput, *stdState]
	MaxSize() int
}

// Register exposes RandBytesGenerator, RandPrintablesGenerator and
// Generator to Lua code running in rt.
func (rt *Runtime) Register() error {
	return rt.withLock(func(L *lua.LState) error {
		registerNative(L, RandBytesGeneratorName, func(maxSize int) nativeGenerator {
			return generators.NewRandBytesGenerator[*stdState](maxSize)
		})
		registerNative(L, RandPrintablesGeneratorName, func(maxSize int) nativeGenerator {
			return generators.NewRandPrintablesGenerator[*stdState](maxSize)
		})
		rt.registerBridge(L)
		return nil
	})
}

// BridgeFrom returns the bridge held by v. Native generator objects are
// wrapped in their native variant; any other table or userdata is wrapped
// as a foreign generator.
func (rt *Runtime) BridgeFrom(v lua.LValue) (*Bridge, error) {
	if ud, ok := v.(*lua.LUserData); ok {
		if b, err := NewBridge(ud.Value); err == nil {
			return b, nil
		}
	}
	return NewForeignBridge(rt, v)
}

func registerNative(L *lua.LState, name string, ctor func(maxSize int) nativeGenerator) {
	mt := L.NewTypeMetatable(name)
	L.SetGlobal(name, mt)
	L.SetField(mt, "new", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckNumber(1)
		if !isInteger(n) {
			L.ArgError(1, "max_size must be an integer")
			return 0
		}
		if n < 0 {
			L.ArgError(1, "max_size must not be negative")
			return 0
		}
		maxSize, err := safecast.Conv[int](float64(n))
		if err != nil {
			L.ArgError(1, "max_size out of range")
			return 0
		}
		ud := L.NewUserData()
		ud.Value = ctor(maxSize)
		L.SetMetatable(ud, L.GetTypeMetatable(name))
		L.Push(ud)
		return 1
	}))
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"generate": func(L *lua.LState) int {
			g := checkNative(L, name)
			in, err := g.Generate(checkState(L, 2))
			if err != nil {
				L.RaiseError("%s.generate: %v", name, err)
				return 0
			}
			L.Push(lua.LString(in.Bytes()))
			return 1
		},
		"generate_dummy": func(L *lua.LState) int {
			g := checkNative(L, name)
			L.Push(lua.LString(g.GenerateDummy(checkState(L, 2)).Bytes()))
			return 1
		},
		"max_size": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkNative(L, name).MaxSize()))
			return 1
		},
		"as_generator": func(L *lua.LState) int {
			b, err := NewBridge(checkNative(L, name))
			if err != nil {
				L.RaiseError("%s.as_generator: %v", name, err)
				return 0
			}
			pushBridge(L, b)
			return 1
		},
	}))
}

func checkNative(L *lua.LState, name string) nativeGenerator {
	ud := L.CheckUserData(1)
	g, ok := ud.Value.(nativeGenerator)
	if !ok {
		L.ArgError(1, name+" expected")
		return nil
	}
	return g
}

func (rt *Runtime) registerBridge(L *lua.LState) {
	mt := L.NewTypeMetatable(GeneratorName)
	L.SetGlobal(GeneratorName, mt)
	L.SetFuncs(mt, map[string]lua.LGFunction{
		"new_rand_bytes": func(L *lua.LState) int {
			g, ok := L.CheckUserData(1).Value.(*randBytes)
			if !ok {
				L.ArgError(1, RandBytesGeneratorName+" expected")
				return 0
			}
			pushBridge(L, NewRandBytesBridge(g))
			return 1
		},
		"new_rand_printables": func(L *lua.LState) int {
			g, ok := L.CheckUserData(1).Value.(*randPrintables)
			if !ok {
				L.ArgError(1, RandPrintablesGeneratorName+" expected")
				return 0
			}
			pushBridge(L, NewRandPrintablesBridge(g))
			return 1
		},
		"new_foreign": func(L *lua.LState) int {
			b, err := NewForeignBridge(rt, L.CheckAny(1))
			if err != nil {
				L.ArgError(1, err.Error())
				return 0
			}
			pushBridge(L, b)
			return 1
		},
	})
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"generate": func(L *lua.LState) int {
			in, err := checkBridge(L).generate(checkState(L, 2), true)
			return pushResult(L, in, err)
		},
		"generate_dummy": func(L *lua.LState) int {
			in, err := checkBridge(L).generateDummy(checkState(L, 2), true)
			return pushResult(L, in, err)
		},
		"unwrap_foreign": func(L *lua.LState) int {
			obj, ok := checkBridge(L).Foreign()
			if !ok {
				obj = lua.LNil
			}
			L.Push(obj)
			return 1
		},
	}))
}

func pushBridge(L *lua.LState, b *Bridge) {
	ud := L.NewUserData()
	ud.Value = b
	L.SetMetatable(ud, L.GetTypeMetatable(GeneratorName))
	L.Push(ud)
}

func checkBridge(L *lua.LState) *Bridge {
	b, ok := L.CheckUserData(1).Value.(*Bridge)
	if !ok {
		L.ArgError(1, GeneratorName+" expected")
		return nil
	}
	return b
}

func pushResult(L *lua.LState, in generators.BytesInput, err error) int {
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LString(in.Bytes()))
	return 1
}

package script

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/fbaltor/generators"
)

// Names of the methods a foreign generator must provide.
const (
	MemberGenerate      = "generate"
	MemberGenerateDummy = "generate_dummy"
)

// ForeignError reports a failed call into a foreign generator.
type ForeignError struct {
	Member string
	Err    error
}

func (e *ForeignError) Error() string {
	return fmt.Sprintf("foreign generator %s: %v", e.Member, e.Err)
}

func (e *ForeignError) Unwrap() error { return e.Err }

// foreignGenerator is a generator implemented by a Lua object.
type foreignGenerator struct {
	rt  *Runtime
	obj lua.LValue
}

// call invokes member on the object. When held is true the caller already
// owns the interpreter lock (the call comes from Lua).
func (f *foreignGenerator) call(member string, state *generators.StdState, held bool) (generators.BytesInput, error) {
	var out []byte
	var err error
	if held {
		out, err = f.callLocked(member, state)
	} else {
		err = f.rt.withLock(func(*lua.LState) (err error) {
			out, err = f.callLocked(member, state)
			return err
		})
	}
	if err != nil {
		f.rt.logger.Printf("%s failed: %v", member, err)
		return generators.BytesInput{}, &ForeignError{Member: member, Err: err}
	}
	return generators.NewBytesInput(out), nil
}

func (f *foreignGenerator) callLocked(member string, state *generators.StdState) ([]byte, error) {
	if f.rt.closed {
		return nil, ErrRuntimeClosed
	}
	L := f.rt.L
	fn := L.GetField(f.obj, member)
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: %s", ErrMissingMember, member)
	}
	handle, h := wrapState(L, state)
	defer h.release()
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, f.obj, handle); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrForeignCall, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	return extractBytes(ret)
}

// extractBytes accepts a Lua string, or a sequence of integers in [0, 255].
// Tables with any key outside 1..#t are rejected.
func extractBytes(v lua.LValue) ([]byte, error) {
	switch v := v.(type) {
	case lua.LString:
		return []byte(v), nil
	case *lua.LTable:
		out := make([]byte, v.Len())
		for i := range out {
			el := v.RawGetInt(i + 1)
			n, ok := el.(lua.LNumber)
			if !ok || !isInteger(n) || n < 0 || n > 255 {
				return nil, fmt.Errorf("%w: element %d is %s", ErrBadReturn, i+1, el.String())
			}
			out[i] = byte(n)
		}
		var extra lua.LValue
		v.ForEach(func(k, _ lua.LValue) {
			if extra != nil {
				return
			}
			if i, ok := k.(lua.LNumber); !ok || !isInteger(i) || i < 1 || int(i) > len(out) {
				extra = k
			}
		})
		if extra != nil {
			return nil, fmt.Errorf("%w: unexpected key %s", ErrBadReturn, extra.String())
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrBadReturn, v.Type())
	}
}

func isInteger(n lua.LNumber) bool {
	return float64(n) == math.Trunc(float64(n))
}

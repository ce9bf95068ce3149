// Package script lets generators be written in Lua.
//
// A Runtime wraps one Lua interpreter. Every call into any Runtime goes
// through a single process-wide lock, so Lua code never runs on two
// goroutines at once. Bridge unifies the native generators and Lua objects
// behind the generators.Generator contract.
package script

import (
	"errors"
	"fmt"
	"log"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/fbaltor/generators/internal/mtx"
	"github.com/fbaltor/generators/internal/utils"
)

// ErrRuntimeClosed is returned when calling into a closed Runtime.
var ErrRuntimeClosed = errors.New("script runtime closed")

// ErrForeignCall is returned when Lua raised an error.
var ErrForeignCall = errors.New("lua call failed")

// ErrMissingMember is returned when a foreign generator lacks a method.
var ErrMissingMember = errors.New("missing member")

// ErrBadReturn is returned when a foreign generator returns something that
// is not a byte sequence.
var ErrBadReturn = errors.New("return value is not a byte sequence")

// ErrNotAnObject is returned when a foreign generator is neither a table
// nor a userdata.
var ErrNotAnObject = errors.New("foreign generator must be a table or userdata")

// ErrUnsupportedGenerator is returned by NewBridge for generator types it
// has no variant for.
var ErrUnsupportedGenerator = errors.New("unsupported generator type")

// interp serializes every call into Lua, across all runtimes.
var interp mtx.Mtx[interpStats]

type interpStats struct {
	acquisitions uint64
}

// Runtime is an embedded Lua interpreter.
type Runtime struct {
	L      *lua.LState
	closed bool // guarded by interp
	logger *log.Logger
}

type config struct {
	logger *log.Logger
}

// Option configures a Runtime.
type Option func(*config)

// WithLogger sets the logger foreign call failures are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewRuntime returns a Runtime with the Lua standard libraries loaded.
// Call Register to expose the generator classes.
func NewRuntime(opts ...Option) *Runtime {
	cfg := utils.BuildConfig(opts)
	rt := &Runtime{
		L:      lua.NewState(),
		logger: utils.Or(cfg.logger, log.New(os.Stderr, "script ", log.LstdFlags)),
	}
	registerState(rt.L)
	return rt
}

// Close releases the interpreter. Later calls fail with ErrRuntimeClosed.
func (rt *Runtime) Close() error {
	return interp.WithE(func(*interpStats) error {
		if rt.closed {
			return ErrRuntimeClosed
		}
		rt.closed = true
		rt.L.Close()
		return nil
	})
}

// DoString runs a chunk of Lua source.
func (rt *Runtime) DoString(src string) error {
	return rt.withLock(func(L *lua.LState) error {
		if err := L.DoString(src); err != nil {
			return fmt.Errorf("%w: %w", ErrForeignCall, err)
		}
		return nil
	})
}

// DoFile runs a Lua source file.
func (rt *Runtime) DoFile(path string) error {
	return rt.withLock(func(L *lua.LState) error {
		if err := L.DoFile(path); err != nil {
			return fmt.Errorf("%w: %w", ErrForeignCall, err)
		}
		return nil
	})
}

// Global returns the value of a global variable, LNil if unset.
func (rt *Runtime) Global(name string) (out lua.LValue, err error) {
	err = rt.withLock(func(L *lua.LState) error {
		out = L.GetGlobal(name)
		return nil
	})
	return out, err
}

// LockAcquisitions returns how many times the interpreter lock was taken
// for a call. It must not be called from Lua.
func LockAcquisitions() uint64 {
	return interp.Get().acquisitions
}

// withLock runs fn holding the interpreter lock. The lock is released on
// every exit path; a panic inside fn is returned as ErrForeignCall.
func (rt *Runtime) withLock(fn func(L *lua.LState) error) error {
	return interp.WithE(func(st *interpStats) (err error) {
		if rt.closed {
			return ErrRuntimeClosed
		}
		st.acquisitions++
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrForeignCall, r)
			}
		}()
		return fn(rt.L)
	})
}

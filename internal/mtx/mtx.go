package mtx

import "sync"

// Mtx guards a value of type T with a sync.Mutex.
type Mtx[T any] struct {
	m sync.Mutex
	v T
}

// NewMtx returns a Mtx holding v.
func NewMtx[T any](v T) Mtx[T] {
	return Mtx[T]{v: v}
}

// Val returns a pointer to the guarded value without locking.
func (m *Mtx[T]) Val() *T { return &m.v }

// Get returns a copy of the value.
func (m *Mtx[T]) Get() T {
	m.m.Lock()
	defer m.m.Unlock()
	return m.v
}

// Set replaces the value.
func (m *Mtx[T]) Set(v T) {
	m.m.Lock()
	defer m.m.Unlock()
	m.v = v
}

// With runs clb while holding the lock. The lock is released when clb
// returns or panics.
func (m *Mtx[T]) With(clb func(v *T)) {
	_ = m.WithE(func(v *T) error {
		clb(v)
		return nil
	})
}

// WithE is With for callbacks that can fail.
func (m *Mtx[T]) WithE(clb func(v *T) error) error {
	m.m.Lock()
	defer m.m.Unlock()
	return clb(&m.v)
}

// RWMtx guards a value of type T with a sync.RWMutex.
type RWMtx[T any] struct {
	m sync.RWMutex
	v T
}

// NewRWMtx returns a RWMtx holding v.
func NewRWMtx[T any](v T) RWMtx[T] {
	return RWMtx[T]{v: v}
}

// Get returns a copy of the value under the read lock.
func (m *RWMtx[T]) Get() T {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.v
}

// Set replaces the value.
func (m *RWMtx[T]) Set(v T) {
	m.m.Lock()
	defer m.m.Unlock()
	m.v = v
}

// RWith runs clb with a copy of the value under the read lock.
func (m *RWMtx[T]) RWith(clb func(v T)) {
	m.m.RLock()
	defer m.m.RUnlock()
	clb(m.v)
}

// With runs clb under the write lock.
func (m *RWMtx[T]) With(clb func(v *T)) {
	_ = m.WithE(func(v *T) error {
		clb(v)
		return nil
	})
}

// WithE is With for callbacks that can fail.
func (m *RWMtx[T]) WithE(clb func(v *T) error) error {
	m.m.Lock()
	defer m.m.Unlock()
	return clb(&m.v)
}

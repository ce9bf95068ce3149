package sync

import (
	"iter"
	"slices"
	"sync"
)

// Map is a typed sync.Map.
type Map[K comparable, V any] struct {
	m sync.Map
}

// Has returns either or not the map has the provided key
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Load(key)
	return ok
}

func (m *Map[K, V]) Load(key K) (V, bool) {
	var zeroV V
	if v, ok := m.m.Load(key); ok {
		return v.(V), ok
	}
	return zeroV, false
}

// Store sets the value for a key.
func (m *Map[K, V]) Store(key K, value V) {
	m.m.Store(key, value)
}

// LoadOrStore returns the existing value for the key if present, otherwise
// it stores value. loaded reports which happened.
func (m *Map[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	v, loaded := m.m.LoadOrStore(key, value)
	return v.(V), loaded
}

func (m *Map[K, V]) Delete(key K) {
	m.m.Delete(key)
}

func (m *Map[K, V]) IterKeys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.m.Range(func(k, _ any) bool {
			return yield(k.(K))
		})
	}
}

func (m *Map[K, V]) Keys() []K {
	return slices.Collect(m.IterKeys())
}

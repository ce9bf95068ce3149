package sync

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHas(t *testing.T) {
	m := Map[string, int]{}
	assert.False(t, m.Has("test"))
	m.Store("test", 1)
	assert.True(t, m.Has("test"))
	m.Delete("test")
	assert.False(t, m.Has("test"))
}

func TestLoadOrStore(t *testing.T) {
	m := Map[string, int]{}
	v, loaded := m.LoadOrStore("a", 1)
	assert.False(t, loaded)
	assert.Equal(t, 1, v)
	v, loaded = m.LoadOrStore("a", 2)
	assert.True(t, loaded)
	assert.Equal(t, 1, v)
}

func TestKeys(t *testing.T) {
	m := Map[string, int]{}
	m.Store("a", 1)
	m.Store("b", 2)
	m.Store("c", 3)
	keys := m.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

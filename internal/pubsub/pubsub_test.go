package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubSub(t *testing.T) {
	ps := NewPubSub[string, int]()
	a := ps.Subscribe([]string{"a"})
	ab := ps.Subscribe([]string{"a", "b"})
	ps.Pub("a", 1)
	ps.Pub("b", 2)

	topic, msg, err := a.ReceiveTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "a", topic)
	assert.Equal(t, 1, msg)
	_, _, err = a.ReceiveTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)

	_, msg, _ = ab.ReceiveTimeout(time.Second)
	assert.Equal(t, 1, msg)
	_, msg, _ = ab.ReceiveTimeout(time.Second)
	assert.Equal(t, 2, msg)
}

func TestPubSub_Close(t *testing.T) {
	ps := NewPubSub[string, int]()
	s := ps.Subscribe([]string{"a"})
	s.Close()
	ps.Pub("a", 1)
	assert.Empty(t, ps.getSubscribers("a"))
	_, _, err := s.ReceiveTimeout(time.Second)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestPubSub_DropsWhenFull(t *testing.T) {
	ps := NewPubSub[string, int]()
	s := ps.Subscribe([]string{"a"})
	for i := 0; i < subBufferSize+10; i++ {
		ps.Pub("a", i)
	}
	assert.Len(t, s.ReceiveCh(), subBufferSize)
}

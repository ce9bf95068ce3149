package pubsub

import (
	"context"
	"errors"
	"sync"
	"time"
)

// subBufferSize is how many undelivered messages a subscriber keeps before
// new ones are dropped.
const subBufferSize = 64

// PubSub contains and manage the map of topics -> subscribers
type PubSub[T comparable, P any] struct {
	sync.Mutex
	m map[T][]*Sub[T, P]
}

func NewPubSub[T comparable, P any]() *PubSub[T, P] {
	return &PubSub[T, P]{m: make(map[T][]*Sub[T, P])}
}

func (p *PubSub[T, P]) getSubscribers(topic T) []*Sub[T, P] {
	p.Lock()
	defer p.Unlock()
	return p.m[topic]
}

func (p *PubSub[T, P]) addSubscriber(s *Sub[T, P]) {
	p.Lock()
	defer p.Unlock()
	for _, topic := range s.topics {
		p.m[topic] = append(p.m[topic], s)
	}
}

func (p *PubSub[T, P]) removeSubscriber(s *Sub[T, P]) {
	p.Lock()
	defer p.Unlock()
	for _, topic := range s.topics {
		subs := p.m[topic]
		for i, subscriber := range subs {
			if subscriber == s {
				p.m[topic] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Subscribe returns a subscriber receiving the messages published on topics.
func (p *PubSub[T, P]) Subscribe(topics []T) *Sub[T, P] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sub[T, P]{topics: topics, ch: make(chan Payload[T, P], subBufferSize), ctx: ctx, cancel: cancel, p: p}
	p.addSubscriber(s)
	return s
}

// Pub publishes msg on topic. Subscribers with a full buffer miss it.
func (p *PubSub[T, P]) Pub(topic T, msg P) {
	for _, s := range p.getSubscribers(topic) {
		s.publish(Payload[T, P]{topic, msg})
	}
}

type Payload[T comparable, P any] struct {
	Topic T
	Msg   P
}

// ErrTimeout error returned when timeout occurs
var ErrTimeout = errors.New("timeout")

// ErrCancelled error returned when the subscriber is closed
var ErrCancelled = errors.New("cancelled")

// Sub subscriber will receive messages published on a Topic in his ch
type Sub[T comparable, P any] struct {
	topics []T
	ch     chan Payload[T, P]
	ctx    context.Context
	cancel context.CancelFunc
	p      *PubSub[T, P]
}

// ReceiveTimeout returns a message received on the channel or timeout
func (s *Sub[T, P]) ReceiveTimeout(timeout time.Duration) (topic T, msg P, err error) {
	select {
	case p := <-s.ch:
		return p.Topic, p.Msg, nil
	case <-time.After(timeout):
		return topic, msg, ErrTimeout
	case <-s.ctx.Done():
		return topic, msg, ErrCancelled
	}
}

// ReceiveCh returns the channel messages are delivered on
func (s *Sub[T, P]) ReceiveCh() <-chan Payload[T, P] {
	return s.ch
}

// Close will remove the subscriber from the Topic subscribers
func (s *Sub[T, P]) Close() {
	s.cancel()
	s.p.removeSubscriber(s)
}

func (s *Sub[T, P]) publish(p Payload[T, P]) {
	select {
	case s.ch <- p:
	default:
	}
}

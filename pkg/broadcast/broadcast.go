package broadcast

import (
	"context"
	"sync"
)

// Message wraps one broadcast payload.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster. Safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed when the subscriber
	// is closed, dropped as too slow, or the broadcaster shuts down.
	Receive(ctx context.Context) <-chan Message[T]

	// Close is idempotent.
	Close() error
}

// Broadcaster fans messages out to subscribers without blocking the sender.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber that lives until ctx ends or it is closed.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to every subscriber with room in its buffer.
	Broadcast(ctx context.Context, msg Message[T]) error

	// SubscriberCount reports the live subscribers.
	SubscriberCount() int

	Close() error
}

type subscriber[T any] struct {
	ch chan Message[T]

	mu     sync.RWMutex
	closed bool
	onStop func() bool
	owner  func(*subscriber[T])
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], bufferSize)}
}

func (s *subscriber[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

// Close detaches the subscriber from its broadcaster and closes the channel.
func (s *subscriber[T]) Close() error {
	s.mu.RLock()
	owner := s.owner
	s.mu.RUnlock()
	if owner != nil {
		owner(s)
		return nil
	}
	s.shut()
	return nil
}

// shut closes the channel once and stops the context watcher.
func (s *subscriber[T]) shut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
	if s.onStop != nil {
		s.onStop()
	}
}

// send reports false when the subscriber is closed or its buffer is full.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}

package dpubsub

import (
	"context"

	"github.com/gordian-engine/notify/dobs"
)

// Stream is a linked list of event-driven values.
// The list has a single writer and many readers.
// Readers can each consume the list at their own pace.
//
// If readers do not actively consume the list,
// the node they observe will never be garbage collected,
// which is a memory leak.
type Stream[T any] struct {
	Ready chan struct{}
	Next  *Stream[T]
	Val   T
}

// NewStream returns an initialized pubsub stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{
		Ready: make(chan struct{}),
	}
}

// Publish assigns s's value and initializes s.Next.
// Then s.Ready is closed, notifying any readers that
// s.Val can now be safely read.
//
// If Publish is called twice for the same s, Publish panics.
func (s *Stream[T]) Publish(t T) {
	s.Val = t
	s.Next = NewStream[T]()
	close(s.Ready)
}

// Await blocks until s is published or ctx is done.
// On success it returns s's value and the following node.
func (s *Stream[T]) Await(ctx context.Context) (T, *Stream[T], error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, s, context.Cause(ctx)
	case <-s.Ready:
		return s.Val, s.Next, nil
	}
}

// RunNotifyingToStream attaches an observer to n
// that publishes notifications to the returned Stream.
//
// If name is empty, every notification is published;
// otherwise only notifications on the channel name are.
// Publishing happens synchronously on the dispatching goroutine
// and never blocks on readers.
//
// Calling stop detaches the observer; nothing is published afterwards.
// stop must not be called concurrently with a dispatch on n.
func RunNotifyingToStream(n *dobs.Notifying, name string) (
	s *Stream[dobs.Notification], stop func(),
) {
	s = NewStream[dobs.Notification]()
	tail := s

	publish := func(x dobs.Notification, _ *dobs.Observable[dobs.Notification]) {
		tail.Publish(x)
		tail = tail.Next
	}

	var o *dobs.Observer[dobs.Notification]
	if name == "" {
		o = dobs.NewObserver(publish)
	} else {
		o = dobs.NewChannelObserver(name, publish)
	}
	o.Observe(n.Observable()).Activate()

	return s, o.Disconnect
}

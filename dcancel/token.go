package dcancel

import (
	"context"
	"errors"
	"sync"

	"github.com/gordian-engine/notify/dobs"
)

// NameCancel is the name of the only channel on a [Token].
const NameCancel = "cancel"

// Token is a one-shot cooperative cancellation signal.
//
// Token is safe for concurrent use.
// Listeners run synchronously on the goroutine that calls [*Token.Cancel].
type Token struct {
	*dobs.Notifying

	d dobs.Dispatcher

	mu        sync.Mutex
	cancelled bool
	reason    error

	done chan struct{}
}

// New returns a token that is not cancelled.
func New() *Token {
	t := &Token{
		done: make(chan struct{}),
	}

	t.Notifying = dobs.NewNotifying(func(d dobs.Dispatcher) dobs.Hooks[dobs.Notification] {
		t.d = d
		return dobs.Hooks[dobs.Notification]{
			Admit: admitCancelOnly,
		}
	})

	return t
}

// Of returns a new token linked to every parent,
// so that it is cancelled, with the same reason,
// as soon as any parent is cancelled.
//
// If a parent is already cancelled, the returned token is already cancelled.
func Of(parents ...*Token) *Token {
	t := New()
	if len(parents) > 0 {
		_ = t.LinkWithToken(parents...)
	}
	return t
}

func admitCancelOnly(o *dobs.Observer[dobs.Notification]) error {
	if ch, ok := o.Channel(); ok && ch != NameCancel {
		return UnknownChannelError{Name: ch}
	}
	return nil
}

// Cancel cancels t with the given reason.
// A nil reason is replaced with [context.Canceled].
//
// Only the first call has an effect:
// it fixes the reason, closes the Done channel,
// and dispatches one "cancel" notification carrying the reason.
// Later calls are no-ops.
func (t *Token) Cancel(reason error) {
	if reason == nil {
		reason = context.Canceled
	}

	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.cancelled = true
	t.reason = reason
	close(t.done)
	t.mu.Unlock()

	t.d.Dispatch(NameCancel, reason)
}

// Cancelled reports whether t has been cancelled.
func (t *Token) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Reason returns the reason t was cancelled with,
// or nil if t has not been cancelled.
func (t *Token) Reason() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason
}

// Done returns a channel that is closed when t is cancelled.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// OnCancel registers fn to be called with the reason when t is cancelled.
// fn is not called if t is already cancelled; check [*Token.Cancelled] for that.
//
// The returned undo function removes the listener.
// It is safe to call more than once and from any goroutine.
func (t *Token) OnCancel(fn func(reason error)) (undo func()) {
	if fn == nil {
		panic(errors.New("BUG: cancel listener must not be nil"))
	}

	o := t.AddListener(NameCancel, func(v any) {
		fn(v.(error))
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			t.RemoveListener(o)
		})
	}
}

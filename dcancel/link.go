package dcancel

import (
	"context"
	"sync"
)

// linkage collects the undo functions of one link operation,
// so that every listener it registered is removed exactly once,
// whichever side resolves the link first.
type linkage struct {
	mu    sync.Mutex
	done  bool
	undos []func()
}

// add registers undo, or runs it immediately if l is already torn down.
func (l *linkage) add(undo func()) {
	l.mu.Lock()
	if l.done {
		l.mu.Unlock()
		undo()
		return
	}
	l.undos = append(l.undos, undo)
	l.mu.Unlock()
}

// teardown runs every registered undo function.
// Only the first call has an effect.
func (l *linkage) teardown() {
	l.mu.Lock()
	if l.done {
		l.mu.Unlock()
		return
	}
	l.done = true
	undos := l.undos
	l.undos = nil
	l.mu.Unlock()

	for _, undo := range undos {
		undo()
	}
}

// LinkWithToken arranges for t to be cancelled,
// with the same reason, when the first of sources is cancelled.
//
// Every listener registered by LinkWithToken is removed
// as soon as the link resolves: when a source is cancelled,
// when t is cancelled by any means, or when undo is called.
// Calling undo reverses the link without cancelling anything.
//
// If a source is already cancelled, t is cancelled before LinkWithToken returns.
// LinkWithToken panics with [SelfLinkError] if t is among sources.
func (t *Token) LinkWithToken(sources ...*Token) (undo func()) {
	for _, s := range sources {
		if s == t {
			panic(SelfLinkError{})
		}
	}

	l := new(linkage)

	l.add(t.OnCancel(func(error) {
		l.teardown()
	}))

	for _, s := range sources {
		l.add(s.OnCancel(func(reason error) {
			l.teardown()
			t.Cancel(reason)
		}))
	}

	// A source cancelled before its listener attached will never notify.
	for _, s := range sources {
		if s.Cancelled() {
			l.teardown()
			t.Cancel(s.Reason())
			break
		}
	}

	if t.Cancelled() {
		l.teardown()
	}

	return l.teardown
}

// LinkContext bridges t with ctx.
//
// When ctx is done, t is cancelled with [context.Cause] of ctx.
//
// If cancel is not nil, the caller owns ctx and the bridge is bidirectional:
// cancelling t also calls cancel with t's reason.
// If cancel is nil, the bridge is one-directional,
// and LinkContext returns [UnownedSignalError]
// if t is already cancelled while ctx is not done,
// since that cancellation cannot be carried over to ctx.
//
// If ctx is already done, t is cancelled before LinkContext returns.
// The returned undo function removes the bridge without cancelling either side.
func (t *Token) LinkContext(ctx context.Context, cancel context.CancelCauseFunc) (undo func(), err error) {
	if ctx.Err() != nil {
		t.Cancel(context.Cause(ctx))
		return func() {}, nil
	}

	if t.Cancelled() {
		if cancel == nil {
			return nil, UnownedSignalError{}
		}
		cancel(t.Reason())
		return func() {}, nil
	}

	l := new(linkage)

	stop := context.AfterFunc(ctx, func() {
		l.teardown()
		t.Cancel(context.Cause(ctx))
	})
	l.add(func() { stop() })

	l.add(t.OnCancel(func(reason error) {
		l.teardown()
		if cancel != nil {
			cancel(reason)
		}
	}))

	// Cancelled while the listener was being attached.
	if t.Cancelled() {
		l.teardown()
		if cancel != nil {
			cancel(t.Reason())
		}
	}

	return l.teardown, nil
}

// Context returns a context derived from parent that is owned by t:
// cancelling t cancels the context with t's reason,
// and the context ending through parent cancels t.
//
// The returned release function detaches the context from t
// and then cancels it, without cancelling t.
func (t *Token) Context(parent context.Context) (ctx context.Context, release context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	undo, err := t.LinkContext(ctx, cancel)
	if err != nil {
		// Impossible with an owned context.
		panic(err)
	}

	return ctx, func() {
		undo()
		cancel(context.Canceled)
	}
}

package dobs

import (
	"errors"
	"slices"
)

// Observer is a sink for values emitted by one or more Observables.
//
// An Observer receives values only while it is both observing an Observable
// and active.
// Observers are not safe for concurrent modification.
type Observer[T any] struct {
	fn func(v T, src *Observable[T])

	// Channel binding, only consulted by [Notifying].
	channel string
	bound   bool

	active bool

	// Observables this observer intends to observe, in the order given.
	intent []*Observable[T]
}

// NewObserver returns an inactive Observer that calls fn for every delivered value.
func NewObserver[T any](fn func(v T, src *Observable[T])) *Observer[T] {
	if fn == nil {
		panic(errors.New("BUG: observer callback must not be nil"))
	}
	return &Observer[T]{fn: fn}
}

// Active reports whether o is active.
func (o *Observer[T]) Active() bool {
	return o.active
}

// Observing reports whether o intends to observe obs,
// regardless of whether o is active.
func (o *Observer[T]) Observing(obs *Observable[T]) bool {
	return slices.Contains(o.intent, obs)
}

// Channel reports the notification name o is bound to, if any.
func (o *Observer[T]) Channel() (name string, ok bool) {
	return o.channel, o.bound
}

// Observe records the intent to observe each of obs.
// If o is already active, each observable is linked immediately.
//
// Observe panics with [AlreadyObservingError] if o already observes
// any of obs, or if obs contains duplicates,
// and with [NilObservableError] if any of obs is nil.
// On panic, o is unchanged.
func (o *Observer[T]) Observe(obs ...*Observable[T]) *Observer[T] {
	for i, x := range obs {
		if x == nil {
			panic(NilObservableError{})
		}
		if o.Observing(x) || slices.Contains(obs[:i], x) {
			panic(AlreadyObservingError{})
		}
	}

	if o.active {
		admitAll(o, obs)
	}

	o.intent = append(o.intent, obs...)

	if o.active {
		for _, x := range obs {
			if !o.active {
				break
			}
			x.link(o)
		}
	}

	return o
}

// Unobserve forgets the intent to observe each of obs,
// unlinking any that are currently linked.
//
// Unobserve panics with [NotObservingError] if o is not observing
// any of obs. On panic, o is unchanged.
func (o *Observer[T]) Unobserve(obs ...*Observable[T]) *Observer[T] {
	for _, x := range obs {
		if x == nil {
			panic(NilObservableError{})
		}
		if !o.Observing(x) {
			panic(NotObservingError{})
		}
	}

	for _, x := range obs {
		i := slices.Index(o.intent, x)
		if i < 0 {
			// Duplicate argument already removed.
			continue
		}
		o.intent = slices.Delete(o.intent, i, i+1)
		if o.active {
			x.unlink(o)
		}
	}

	return o
}

// Activate links o to every observable it intends to observe.
// Activate is a no-op if o is already active.
//
// Every observable's Admit hook is consulted before any link is made;
// if one refuses, its error is panicked and o stays inactive.
func (o *Observer[T]) Activate() *Observer[T] {
	if o.active {
		return o
	}

	targets := slices.Clone(o.intent)
	admitAll(o, targets)

	o.active = true
	for _, x := range targets {
		if !o.active {
			// A hook deactivated o partway through.
			break
		}
		if !o.Observing(x) {
			continue
		}
		x.link(o)
	}

	return o
}

// Deactivate unlinks o from every observable,
// keeping the intent so that o may be activated again.
// Deactivate is a no-op if o is not active.
func (o *Observer[T]) Deactivate() *Observer[T] {
	if !o.active {
		return o
	}

	o.active = false
	for _, x := range slices.Clone(o.intent) {
		x.unlink(o)
	}

	return o
}

// Disconnect deactivates o and forgets every observable it intended to observe.
func (o *Observer[T]) Disconnect() {
	o.Deactivate()
	o.intent = nil
}

func admitAll[T any](o *Observer[T], obs []*Observable[T]) {
	for _, x := range obs {
		if err := x.admit(o); err != nil {
			panic(err)
		}
	}
}

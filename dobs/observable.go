package dobs

import (
	"slices"
	"sync"
)

// Hooks are the lifecycle callbacks an [Observable] reports to its owner.
// Any field may be nil.
type Hooks[T any] struct {
	// Admit is consulted before an observer is linked.
	// Returning a non-nil error refuses the link:
	// the error is panicked from the attaching call
	// and no observable is linked.
	Admit func(o *Observer[T]) error

	// OnObserved is called after o has been linked.
	OnObserved func(o *Observer[T])

	// OnUnobserved is called after o has been unlinked.
	// Checking [*Observable.Observed] from inside OnUnobserved
	// reports whether any observer remains,
	// which is the point to release resources held for observers.
	OnUnobserved func(o *Observer[T])
}

// Observable is a synchronous multicast source.
//
// Observers are delivered values in the order they were linked.
// Construct an Observable with [New].
type Observable[T any] struct {
	mu sync.Mutex

	// Copy-on-write; never modified in place,
	// so an emission pass can hold the slice header as its snapshot.
	observers []*Observer[T]

	hooks Hooks[T]
}

// Emitter is the capability to emit on one [Observable].
// It is only handed out by [New].
type Emitter[T any] struct {
	o *Observable[T]
}

// New returns a new Observable.
//
// The setup callback, if not nil, is called once before New returns.
// It receives the Observable's [Emitter]
// and returns the hooks the Observable reports to.
func New[T any](setup func(Emitter[T]) Hooks[T]) *Observable[T] {
	o := new(Observable[T])
	if setup != nil {
		o.hooks = setup(Emitter[T]{o: o})
	}
	return o
}

// Observed reports whether any observer is currently linked.
func (o *Observable[T]) Observed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.observers) > 0
}

// Len reports the number of currently linked observers.
func (o *Observable[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.observers)
}

// Observers returns the currently linked observers in link order.
// The caller may retain and modify the returned slice.
func (o *Observable[T]) Observers() []*Observer[T] {
	return slices.Clone(o.snapshot())
}

func (o *Observable[T]) snapshot() []*Observer[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.observers
}

func (o *Observable[T]) admit(obs *Observer[T]) error {
	if o.hooks.Admit == nil {
		return nil
	}
	return o.hooks.Admit(obs)
}

// link appends obs to the observer list and fires OnObserved.
func (o *Observable[T]) link(obs *Observer[T]) {
	o.mu.Lock()
	if slices.Contains(o.observers, obs) {
		o.mu.Unlock()
		return
	}
	o.observers = append(slices.Clip(o.observers), obs)
	o.mu.Unlock()

	if o.hooks.OnObserved != nil {
		o.hooks.OnObserved(obs)
	}
}

// unlink removes obs from the observer list and fires OnUnobserved.
// It is a no-op if obs was not linked.
func (o *Observable[T]) unlink(obs *Observer[T]) {
	o.mu.Lock()
	i := slices.Index(o.observers, obs)
	if i < 0 {
		o.mu.Unlock()
		return
	}
	o.observers = slices.Concat(o.observers[:i], o.observers[i+1:])
	o.mu.Unlock()

	if o.hooks.OnUnobserved != nil {
		o.hooks.OnUnobserved(obs)
	}
}

// Emit synchronously delivers v to every observer linked at the time of the call.
// Observers linked or unlinked by a callback during this pass
// do not change who receives v.
func (e Emitter[T]) Emit(v T) {
	for _, obs := range e.o.snapshot() {
		obs.fn(v, e.o)
	}
}

// EmitTo delivers v to obs alone,
// if obs is currently linked to the Emitter's Observable.
// It reports whether v was delivered.
func (e Emitter[T]) EmitTo(obs *Observer[T], v T) bool {
	if !slices.Contains(e.o.snapshot(), obs) {
		return false
	}
	obs.fn(v, e.o)
	return true
}

// Observable returns the Observable that e emits on.
func (e Emitter[T]) Observable() *Observable[T] {
	return e.o
}

package dobs

import (
	"slices"
	"sync"
)

// Notifying is an observable of [Notification] values
// that routes each notification by name.
//
// Observers created with [NewChannelObserver] are indexed by their channel name
// and receive only matching notifications;
// other observers receive every notification.
// Within one dispatch, name-bound observers are called first,
// then name-agnostic observers, each group in link order.
// Link order therefore holds within each group only:
// a name-agnostic observer linked before a name-bound one
// is still called after it.
type Notifying struct {
	obs *Observable[Notification]

	hooks Hooks[Notification]

	mu sync.Mutex

	// Both are copy-on-write, as in Observable.
	byName  map[string][]*Observer[Notification]
	anyName []*Observer[Notification]

	// Listeners attached through On, so Off can find them.
	onListeners map[string][]*Observer[Notification]
}

// Dispatcher is the capability to dispatch on one [Notifying].
// It is only handed out by [NewNotifying].
type Dispatcher struct {
	n *Notifying
}

// NewNotifying returns a new Notifying.
//
// The setup callback, if not nil, is called once before NewNotifying returns.
// It receives the [Dispatcher] and returns the hooks the Notifying reports to.
func NewNotifying(setup func(Dispatcher) Hooks[Notification]) *Notifying {
	n := &Notifying{
		byName: make(map[string][]*Observer[Notification]),
	}

	n.obs = New(func(Emitter[Notification]) Hooks[Notification] {
		return Hooks[Notification]{
			Admit:        n.admit,
			OnObserved:   n.observed,
			OnUnobserved: n.unobserved,
		}
	})

	if setup != nil {
		n.hooks = setup(Dispatcher{n: n})
	}

	return n
}

// Observable returns the underlying Observable,
// for use with [*Observer.Observe].
func (n *Notifying) Observable() *Observable[Notification] {
	return n.obs
}

// Observed reports whether any observer is linked.
func (n *Notifying) Observed() bool {
	return n.obs.Observed()
}

// AddListener attaches an active observer bound to name
// that calls fn with each notification's value.
// Pass the returned observer to [*Notifying.RemoveListener] to detach it.
func (n *Notifying) AddListener(name string, fn func(value any)) *Observer[Notification] {
	o := NewChannelObserver(name, func(x Notification, _ *Observable[Notification]) {
		fn(x.Value)
	})
	o.Observe(n.obs).Activate()
	return o
}

// AddAnyListener attaches an active name-agnostic observer
// that calls fn with every notification.
func (n *Notifying) AddAnyListener(fn func(Notification)) *Observer[Notification] {
	o := NewObserver(func(x Notification, _ *Observable[Notification]) {
		fn(x)
	})
	o.Observe(n.obs).Activate()
	return o
}

// RemoveListener detaches an observer returned from
// [*Notifying.AddListener] or [*Notifying.AddAnyListener].
// It is a no-op if o is no longer observing n.
func (n *Notifying) RemoveListener(o *Observer[Notification]) {
	if o.Observing(n.obs) {
		o.Unobserve(n.obs)
	}
}

// On is the chainable form of [*Notifying.AddListener].
func (n *Notifying) On(name string, fn func(value any)) *Notifying {
	o := n.AddListener(name, fn)

	n.mu.Lock()
	if n.onListeners == nil {
		n.onListeners = make(map[string][]*Observer[Notification])
	}
	n.onListeners[name] = append(n.onListeners[name], o)
	n.mu.Unlock()

	return n
}

// Off detaches every listener attached with [*Notifying.On] for name.
func (n *Notifying) Off(name string) *Notifying {
	n.mu.Lock()
	ls := n.onListeners[name]
	delete(n.onListeners, name)
	n.mu.Unlock()

	for _, o := range ls {
		n.RemoveListener(o)
	}
	return n
}

func (n *Notifying) admit(o *Observer[Notification]) error {
	if n.hooks.Admit == nil {
		return nil
	}
	return n.hooks.Admit(o)
}

func (n *Notifying) observed(o *Observer[Notification]) {
	n.mu.Lock()
	if o.bound {
		n.byName[o.channel] = append(slices.Clip(n.byName[o.channel]), o)
	} else {
		n.anyName = append(slices.Clip(n.anyName), o)
	}
	n.mu.Unlock()

	if n.hooks.OnObserved != nil {
		n.hooks.OnObserved(o)
	}
}

func (n *Notifying) unobserved(o *Observer[Notification]) {
	n.mu.Lock()
	if o.bound {
		named := n.byName[o.channel]
		if i := slices.Index(named, o); i >= 0 {
			if len(named) == 1 {
				delete(n.byName, o.channel)
			} else {
				n.byName[o.channel] = slices.Concat(named[:i], named[i+1:])
			}
		}
	} else if i := slices.Index(n.anyName, o); i >= 0 {
		n.anyName = slices.Concat(n.anyName[:i], n.anyName[i+1:])
	}
	n.mu.Unlock()

	if n.hooks.OnUnobserved != nil {
		n.hooks.OnUnobserved(o)
	}
}

func (n *Notifying) route(name string) (named, anyName []*Observer[Notification]) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.byName[name], n.anyName
}

// Dispatch delivers the notification (name, value)
// to the observers bound to name, then to the name-agnostic observers.
// Only observers linked at the time of the call are considered.
func (d Dispatcher) Dispatch(name string, value any) {
	d.DispatchIf(name, value, nil)
}

// DispatchIf is like [Dispatcher.Dispatch],
// except that each target observer o only receives the notification
// if accept(o) reports true.
// A nil accept accepts every target.
func (d Dispatcher) DispatchIf(name string, value any, accept func(o *Observer[Notification]) bool) {
	x := Notification{Name: name, Value: value}
	named, anyName := d.n.route(name)
	for _, group := range [2][]*Observer[Notification]{named, anyName} {
		for _, o := range group {
			if accept == nil || accept(o) {
				o.fn(x, d.n.obs)
			}
		}
	}
}

// DispatchTo delivers x to o alone,
// if o is linked and its channel binding accepts x.
// It reports whether x was delivered.
func (d Dispatcher) DispatchTo(o *Observer[Notification], x Notification) bool {
	if !Accepts(o, x) {
		return false
	}

	named, anyName := d.n.route(x.Name)
	if !slices.Contains(named, o) && !slices.Contains(anyName, o) {
		return false
	}

	o.fn(x, d.n.obs)
	return true
}

// Notifying returns the Notifying that d dispatches on.
func (d Dispatcher) Notifying() *Notifying {
	return d.n
}

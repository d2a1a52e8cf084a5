package dfsm

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/gordian-engine/notify/dobs"
)

// Lifecycle notification names.
const (
	NameNext     = "next"
	NameComplete = "complete"
	NameError    = "error"
)

// Config is the configuration passed to [New].
type Config struct {
	// Replay policy for late observers.
	Mode Mode

	// Extra notification names that end the lifecycle,
	// in addition to [NameComplete] and [NameError].
	// For example, a cancellable producer may add "cancel".
	Terminals []string

	// Logger for lifecycle transitions.
	// If nil, nothing is logged.
	Log *slog.Logger
}

// Observable is a [dobs.Notifying] with a one-way terminal state machine.
//
// Observers attach through the embedded Notifying,
// either with [dobs.Notifying.AddListener] and friends
// or by observing [dobs.Notifying.Observable] directly.
//
// Observable is not safe for concurrent use;
// one goroutine drives the producer and its observers.
type Observable struct {
	*dobs.Notifying

	d dobs.Dispatcher

	log *slog.Logger

	mode      Mode
	terminals []string

	// The producer's setup callback and, outside ModeEvery,
	// the hooks it returned.
	setup func(*Context) dobs.Hooks[dobs.Notification]
	hooks dobs.Hooks[dobs.Notification]

	// Shared machine; nil in ModeEvery.
	shared *machine

	// Observers still being caught up by replay,
	// with the live notifications held back for them meanwhile.
	replaying map[*dobs.Observer[dobs.Notification]][]dobs.Notification

	// Per-observer runs in ModeEvery.
	// Entries are removed when the observer is unlinked,
	// so the map never outlives an observer's attachment.
	runs map[*dobs.Observer[dobs.Notification]]*run
}

// run is one producer execution dedicated to a single observer, in ModeEvery.
type run struct {
	ctx   *Context
	hooks dobs.Hooks[dobs.Notification]
}

// New returns a new Observable.
//
// Except in [ModeEvery], setup is called once before New returns.
// In ModeEvery, setup is instead called each time an observer is linked,
// with a Context whose notifications reach only that observer.
// That run's setup happens after the observer is already linked,
// so the Admit hook it returns is never consulted;
// its OnObserved and OnUnobserved hooks are.
//
// New panics with [UnknownModeError] if cfg.Mode is not a defined mode.
func New(cfg Config, setup func(*Context) dobs.Hooks[dobs.Notification]) *Observable {
	if !cfg.Mode.Valid() {
		panic(UnknownModeError{Mode: cfg.Mode})
	}
	if setup == nil {
		panic(errors.New("BUG: finite-state observable setup must not be nil"))
	}

	terminals := []string{NameComplete, NameError}
	for _, name := range cfg.Terminals {
		if name == NameNext {
			panic(errors.New("BUG: next cannot be a terminal state"))
		}
		if !slices.Contains(terminals, name) {
			terminals = append(terminals, name)
		}
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	f := &Observable{
		log:       log,
		mode:      cfg.Mode,
		terminals: terminals,
		setup:     setup,
	}

	f.Notifying = dobs.NewNotifying(func(d dobs.Dispatcher) dobs.Hooks[dobs.Notification] {
		f.d = d
		return dobs.Hooks[dobs.Notification]{
			Admit:        f.admit,
			OnObserved:   f.observed,
			OnUnobserved: f.unobserved,
		}
	})

	if f.mode == ModeEvery {
		f.runs = make(map[*dobs.Observer[dobs.Notification]]*run)
		return f
	}

	f.shared = newMachine()
	f.hooks = setup(&Context{f: f, m: f.shared})

	return f
}

// Mode reports the replay policy of f.
func (f *Observable) Mode() Mode {
	return f.mode
}

// State reports the current state:
// [NameNext] until a terminal notification, then that notification's name.
//
// In [ModeEvery] each observer has its own producer run,
// so State always reports NameNext;
// each run's state is available from its [*Context.State].
func (f *Observable) State() string {
	if f.shared == nil {
		return NameNext
	}
	return f.shared.state
}

// Terminated reports whether f has reached a terminal state.
func (f *Observable) Terminated() bool {
	return f.State() != NameNext
}

// IsTerminal reports whether name is a terminal state of f.
func (f *Observable) IsTerminal(name string) bool {
	return slices.Contains(f.terminals, name)
}

func (f *Observable) admit(o *dobs.Observer[dobs.Notification]) error {
	if f.hooks.Admit != nil {
		if err := f.hooks.Admit(o); err != nil {
			return err
		}
	}

	if f.mode != ModeUniq || !f.shared.terminated() {
		return nil
	}

	// Name-agnostic observers are still admitted.
	ch, bound := o.Channel()
	if bound && (ch == NameNext || f.IsTerminal(ch)) {
		return UniqueLateObserverError{Channel: ch, State: f.shared.state}
	}
	return nil
}

func (f *Observable) observed(o *dobs.Observer[dobs.Notification]) {
	if f.mode == ModeEvery {
		f.startRun(o)
		return
	}

	f.replay(o)

	if f.hooks.OnObserved != nil {
		f.hooks.OnObserved(o)
	}
}

func (f *Observable) unobserved(o *dobs.Observer[dobs.Notification]) {
	if f.mode == ModeEvery {
		f.stopRun(o)
		return
	}

	if f.hooks.OnUnobserved != nil {
		f.hooks.OnUnobserved(o)
	}
}

// replay catches up a newly linked observer on the shared history.
func (f *Observable) replay(o *dobs.Observer[dobs.Notification]) {
	var history []dobs.Notification
	switch f.mode {
	case ModeCache, ModeCacheAll:
		history = slices.Clone(f.shared.history)
	case ModeCacheFinalState:
		if f.shared.final != nil {
			history = []dobs.Notification{*f.shared.final}
		}
	default:
		return
	}

	if f.replaying == nil {
		f.replaying = make(map[*dobs.Observer[dobs.Notification]][]dobs.Notification)
	}
	f.replaying[o] = nil
	defer delete(f.replaying, o)

	for _, x := range history {
		if !o.Active() {
			// The observer detached itself during replay.
			return
		}
		f.d.DispatchTo(o, x)
	}

	// Drain what was emitted during replay, in emission order.
	// Delivering may emit again, which appends to the same queue.
	for len(f.replaying[o]) > 0 {
		if !o.Active() {
			return
		}
		x := f.replaying[o][0]
		f.replaying[o] = f.replaying[o][1:]
		f.d.DispatchTo(o, x)
	}
}

// dispatch delivers x to the shared observers,
// holding it back for observers that replay has not caught up yet.
func (f *Observable) dispatch(x dobs.Notification) {
	if len(f.replaying) == 0 {
		f.d.Dispatch(x.Name, x.Value)
		return
	}

	f.d.DispatchIf(x.Name, x.Value, func(o *dobs.Observer[dobs.Notification]) bool {
		q, ok := f.replaying[o]
		if !ok {
			return true
		}
		f.replaying[o] = append(q, x)
		return false
	})
}

func (f *Observable) startRun(o *dobs.Observer[dobs.Notification]) {
	r := &run{
		ctx: &Context{f: f, m: newMachine(), target: o},
	}
	f.runs[o] = r

	f.log.Debug("Starting producer run for observer", "active_runs", len(f.runs))

	r.hooks = f.setup(r.ctx)
	if r.hooks.OnObserved != nil {
		r.hooks.OnObserved(o)
	}
}

func (f *Observable) stopRun(o *dobs.Observer[dobs.Notification]) {
	r, ok := f.runs[o]
	if !ok {
		return
	}
	delete(f.runs, o)
	r.ctx.detached = true

	if r.hooks.OnUnobserved != nil {
		r.hooks.OnUnobserved(o)
	}
}

// record stores x in m's history, according to the replay mode.
func (f *Observable) record(m *machine, x dobs.Notification, lifecycle, terminal bool) {
	if !f.mode.caches() {
		return
	}

	switch f.mode {
	case ModeCache:
		if lifecycle {
			m.history = append(m.history, x)
		}
	case ModeCacheAll:
		m.history = append(m.history, x)
	case ModeCacheFinalState:
		if terminal {
			m.final = &x
		}
	}
}

// machine is the state of one producer run.
type machine struct {
	state string

	// Buffered notifications for ModeCache and ModeCacheAll.
	history []dobs.Notification

	// Terminal notification for ModeCacheFinalState.
	final *dobs.Notification
}

func newMachine() *machine {
	return &machine{state: NameNext}
}

func (m *machine) terminated() bool {
	return m.state != NameNext
}

func (m *machine) reset() {
	m.state = NameNext
	m.history = nil
	m.final = nil
}

package dfsm

import (
	"github.com/gordian-engine/notify/dobs"
)

// Context is the producer's handle on an [Observable].
// It is only handed to the setup callback passed to [New].
type Context struct {
	f *Observable
	m *machine

	// In ModeEvery, the single observer this run serves.
	target *dobs.Observer[dobs.Notification]

	// Set once the target observer has been unlinked.
	// Notifications from a detached run are still checked
	// against the state machine, but go nowhere.
	detached bool
}

// Observable returns the Observable that c drives.
func (c *Context) Observable() *Observable {
	return c.f
}

// State reports the state of c's producer run.
func (c *Context) State() string {
	return c.m.state
}

// Terminated reports whether c's producer run has reached a terminal state.
func (c *Context) Terminated() bool {
	return c.m.terminated()
}

// Next emits a next notification carrying v.
// Next panics with [TerminatedError] after the terminal state.
func (c *Context) Next(v any) {
	if c.m.terminated() {
		panic(TerminatedError{State: c.m.state, Attempted: NameNext})
	}

	c.deliver(dobs.Notification{Name: NameNext, Value: v}, true, false)
}

// Complete emits the complete notification and ends the lifecycle.
// Complete panics with [TerminatedError] after the terminal state.
func (c *Context) Complete() {
	c.Terminate(NameComplete, nil)
}

// Error emits the error notification carrying err and ends the lifecycle.
// The error is delivered to observers as data; it is not returned or panicked.
// Error panics with [TerminatedError] after the terminal state.
func (c *Context) Error(err error) {
	c.Terminate(NameError, err)
}

// Terminate emits the terminal notification (name, v) and ends the lifecycle.
//
// Terminate panics with [UnknownTerminalError] if name is not a terminal state,
// and with [TerminatedError] after the terminal state.
func (c *Context) Terminate(name string, v any) {
	if !c.f.IsTerminal(name) {
		panic(UnknownTerminalError{Name: name})
	}
	if c.m.terminated() {
		panic(TerminatedError{State: c.m.state, Attempted: name})
	}

	// Transition before delivery,
	// so that callbacks observe the terminal state.
	c.m.state = name
	c.f.log.Debug("Finite-state observable terminated", "state", name)

	c.deliver(dobs.Notification{Name: name, Value: v}, true, true)
}

// Dispatch emits the notification (name, v).
//
// The next channel and terminal channels go through [*Context.Next]
// and [*Context.Terminate] respectively, with their checks.
// Any other name is delivered without affecting the state.
func (c *Context) Dispatch(name string, v any) {
	switch {
	case name == NameNext:
		c.Next(v)
	case c.f.IsTerminal(name):
		c.Terminate(name, v)
	default:
		c.deliver(dobs.Notification{Name: name, Value: v}, false, false)
	}
}

// ClearCache discards the replay history
// and returns the run to the [NameNext] state,
// so that a restarted producer may emit again.
func (c *Context) ClearCache() {
	c.f.log.Debug("Clearing finite-state cache", "previous_state", c.m.state)
	c.m.reset()
}

func (c *Context) deliver(x dobs.Notification, lifecycle, terminal bool) {
	// Record before dispatch, so an observer linked during this dispatch
	// receives x exactly once, through replay.
	c.f.record(c.m, x, lifecycle, terminal)

	if c.target == nil {
		c.f.dispatch(x)
		return
	}

	if c.detached {
		return
	}
	c.f.d.DispatchTo(c.target, x)
}

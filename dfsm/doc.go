// Package dfsm contains the finite-state observable:
// a [dobs.Notifying] whose lifecycle ends in exactly one terminal state.
//
// The producer drives an [Observable] through its [Context],
// emitting any number of "next" notifications
// followed by at most one terminal notification,
// "complete" or "error" by default,
// or any extra terminal name given in [Config.Terminals].
// Emitting "next" or a second terminal after the terminal state panics.
//
// The [Mode] decides what an observer attaching late receives.
// Replay happens synchronously while the observer is being linked,
// so the observer is caught up before Activate returns.
package dfsm

// Package dobs contains the synchronous multicast engine
// that the rest of this module is built on.
//
// An [Observable] holds an ordered list of linked [Observer] values.
// An Observer first records which Observables it intends to observe
// ([*Observer.Observe]), and only receives values once activated
// ([*Observer.Activate]).
// Deactivating keeps the recorded intent, so the Observer may be reactivated later.
//
// Only the code that constructed an Observable may emit on it:
// [New] hands an [Emitter] to the setup callback,
// and there is no other way to obtain one.
//
// [Notifying] layers named channels over an Observable of [Notification].
// Observers bound to a channel name are indexed by that name,
// and name-agnostic observers receive every notification.
//
// Emission is synchronous on the calling goroutine.
// Callbacks and hooks run with no internal locks held,
// so they may freely attach, detach, or emit again.
package dobs

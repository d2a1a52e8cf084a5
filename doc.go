// Package notify is the root of a push-based notification core.
//
// The module is split into small packages, layered bottom-up:
//
//   - [github.com/gordian-engine/notify/dcyclic] tracks read and write
//     positions over a fixed-capacity circular buffer.
//   - [github.com/gordian-engine/notify/dobs] links observers to observables
//     and delivers values synchronously, including named multicast
//     through [github.com/gordian-engine/notify/dobs.Notifying].
//   - [github.com/gordian-engine/notify/dfsm] adds a one-way
//     next/complete/error lifecycle with configurable replay
//     for late observers.
//   - [github.com/gordian-engine/notify/dcancel] provides a cancellation token
//     built on named multicast, bridged to [context.Context],
//     and a helper for racing operations against cancellation.
//   - [github.com/gordian-engine/notify/dpubsub] feeds notifications into
//     a stream that consumers can follow from their own goroutines.
//
// Delivery is synchronous on the emitting goroutine.
// No package starts goroutines on its own,
// except the dcancel wrap helpers and the context bridge.
package notify

// Package dpubsub bridges synchronous notifications
// to consumers running in their own goroutines.
//
// The [Stream] type is a single-writer, many-reader linked list.
// [RunNotifyingToStream] feeds a Stream from a [dobs.Notifying],
// so that each reader can follow the same notification sequence at its own pace
// without holding up the dispatching goroutine.
package dpubsub

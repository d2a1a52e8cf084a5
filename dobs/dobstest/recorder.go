// Package dobstest contains test fixtures for code built on package dobs.
package dobstest

import (
	"slices"
	"sync"

	"github.com/gordian-engine/notify/dobs"
)

// Recorder records every value delivered to its Observer.
//
// The Observer is created inactive;
// tests call Observe and Activate on it as needed.
// Recorder is safe for use while values are delivered from another goroutine.
type Recorder[T any] struct {
	Observer *dobs.Observer[T]

	mu     sync.Mutex
	values []T
}

// NewRecorder returns a Recorder with a name-agnostic observer.
func NewRecorder[T any]() *Recorder[T] {
	r := new(Recorder[T])
	r.Observer = dobs.NewObserver(r.record)
	return r
}

// NewChannelRecorder returns a Recorder whose observer is bound to name.
func NewChannelRecorder(name string) *Recorder[dobs.Notification] {
	r := new(Recorder[dobs.Notification])
	r.Observer = dobs.NewChannelObserver(name, r.record)
	return r
}

func (r *Recorder[T]) record(v T, _ *dobs.Observable[T]) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

// Values returns a copy of the recorded values, in delivery order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.values)
}

// Reset discards the recorded values.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	r.values = nil
	r.mu.Unlock()
}

// Package dtest contains helpers shared by tests throughout this module.
package dtest

import (
	"testing"
	"time"
)

// ScheduleTimeout is how long the "Soon" helpers wait
// for other goroutines to make progress.
const ScheduleTimeout = 100 * time.Millisecond

// ReceiveSoon returns the value received from ch,
// failing the test if no value arrives within [ScheduleTimeout].
func ReceiveSoon[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	timer := time.NewTimer(ScheduleTimeout)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v
	case <-timer.C:
		t.Fatalf("did not receive from channel within %s", ScheduleTimeout)
		panic("unreachable")
	}
}

// SendSoon sends v on ch,
// failing the test if the send does not complete within [ScheduleTimeout].
func SendSoon[T any](t *testing.T, ch chan<- T, v T) {
	t.Helper()

	timer := time.NewTimer(ScheduleTimeout)
	defer timer.Stop()

	select {
	case ch <- v:
	case <-timer.C:
		t.Fatalf("did not send to channel within %s", ScheduleTimeout)
	}
}

// IsSending fails the test if a receive from ch would block.
// It is intended for channels that are closed or already buffered.
func IsSending[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
	default:
		t.Fatal("channel was not ready to receive from")
	}
}

// NotSending fails the test if a value is immediately available from ch.
func NotSending[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
		t.Fatal("channel unexpectedly had a value ready")
	default:
	}
}

// NotSendingSoon fails the test if a value arrives on ch
// within a short delay.
func NotSendingSoon[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	timer := time.NewTimer(ScheduleTimeout / 4)
	defer timer.Stop()

	select {
	case <-ch:
		t.Fatal("channel unexpectedly received a value")
	case <-timer.C:
	}
}

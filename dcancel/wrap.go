package dcancel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gordian-engine/notify/internal/dtrace"
)

// Result is the settlement of an asynchronous operation.
type Result[T any] struct {
	Val T
	Err error
}

// WrapConfig configures [WrapChan] and [WrapFunc].
type WrapConfig struct {
	// How to settle when cancellation wins.
	Strategy Strategy

	// If set, called with the token's reason when cancellation wins,
	// before the result is settled.
	OnCancel func(reason error)

	// Logger for results discarded after cancellation.
	// If nil, nothing is logged.
	Log *slog.Logger

	// If set, each wrapped operation is traced as one span,
	// ended when the result settles or cancellation wins.
	Tracer dtrace.Tracer
}

// WrapChan races the operation whose settlement arrives on in
// against cancellation of t.
//
// The returned channel receives at most one Result.
// If in settles first, that Result is forwarded.
// A closed in settles with the zero Result.
// If t is cancelled first, cfg.OnCancel runs,
// then cfg.Strategy decides what, if anything, is sent.
// A settlement arriving on in after cancellation is drained and discarded,
// so the operation never blocks on its send and never settles twice.
//
// The listener registered on t is removed once either side wins.
// The goroutine started by WrapChan waits for in to settle,
// so an operation that never settles keeps that goroutine alive.
//
// WrapChan panics with [UnknownStrategyError] if cfg.Strategy is not defined.
func WrapChan[T any](t *Token, cfg WrapConfig, in <-chan Result[T]) <-chan Result[T] {
	if !cfg.Strategy.Valid() {
		panic(UnknownStrategyError{Strategy: cfg.Strategy})
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = dtrace.NopTracer()
	}
	_, span := tracer.Start(
		context.Background(), "dcancel.Wrap",
		dtrace.WithAttributes(dtrace.StringerAttr("strategy", cfg.Strategy)),
	)

	w := &wrapper[T]{
		cfg:       cfg,
		log:       log,
		span:      span,
		out:       make(chan Result[T], 1),
		cancelWon: make(chan struct{}),
	}

	undo := t.OnCancel(w.cancel)
	if t.Cancelled() {
		w.cancel(t.Reason())
	}

	go w.run(in, undo)

	return w.out
}

// WrapFunc calls fn in a new goroutine and races it against cancellation of t,
// as described in [WrapChan].
func WrapFunc[T any](t *Token, cfg WrapConfig, fn func() (T, error)) <-chan Result[T] {
	in := make(chan Result[T], 1)
	go func() {
		v, err := fn()
		in <- Result[T]{Val: v, Err: err}
	}()

	return WrapChan(t, cfg, in)
}

type wrapper[T any] struct {
	cfg  WrapConfig
	log  *slog.Logger
	span dtrace.Span

	// Guards the single send on out.
	once sync.Once
	out  chan Result[T]

	// Closed when cancellation has settled the result.
	cancelWon chan struct{}
}

func (w *wrapper[T]) cancel(reason error) {
	w.once.Do(func() {
		w.span.AddEvent("cancelled", dtrace.WithAttributes(dtrace.ErrorAttr(reason)))
		if w.cfg.OnCancel != nil {
			w.cfg.OnCancel(reason)
		}

		switch w.cfg.Strategy {
		case StrategyReject:
			w.out <- Result[T]{Err: reason}
		case StrategyResolve:
			w.out <- Result[T]{}
		case StrategyNever:
			// Nothing to send.
		}

		close(w.cancelWon)
	})
}

func (w *wrapper[T]) run(in <-chan Result[T], undo func()) {
	defer undo()

	select {
	case r := <-in:
		won := false
		w.once.Do(func() {
			won = true
			w.out <- r
		})
		if !won {
			// Cancellation settled out first, but in was also ready.
			w.span.SetAttributes(dtrace.StringAttr("outcome", "cancelled"))
			w.span.End()
			w.discard(r)
			return
		}

		w.span.SetAttributes(dtrace.StringAttr("outcome", "settled"))
		if r.Err != nil {
			dtrace.SpanError(w.span, r.Err)
		}
		w.span.End()

	case <-w.cancelWon:
		w.span.SetAttributes(dtrace.StringAttr("outcome", "cancelled"))
		w.span.End()

		// Release the listener before waiting on what may be a long operation.
		undo()
		w.discard(<-in)
	}
}

func (w *wrapper[T]) discard(r Result[T]) {
	w.log.Debug(
		"Discarding operation result that settled after cancellation",
		"err", r.Err,
	)
}

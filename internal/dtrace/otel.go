// Package dtrace wraps the subset of OpenTelemetry tracing
// used across the notify packages.
package dtrace

import (
	otelattr "go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	otpnoop "go.opentelemetry.io/otel/trace/noop"
)

type Tracer = oteltrace.Tracer

type Span = oteltrace.Span

type KeyValueAttr = otelattr.KeyValue

// NopTracer returns a tracer from the otel no-op provider.
// This is intended to use as a fallback when a nil tracer is given.
func NopTracer() Tracer {
	return otpnoop.NewTracerProvider().Tracer("")
}

// WithAttributes is an alias to [oteltrace.WithAttributes]
// to allow consumers to only reference the dtrace package.
func WithAttributes(attrs ...KeyValueAttr) oteltrace.SpanStartEventOption {
	return oteltrace.WithAttributes(attrs...)
}

// StringAttr is an alias to [otelattr.String].
func StringAttr(key, val string) KeyValueAttr {
	return otelattr.String(key, val)
}

// StringerAttr returns an attribute that uses the given Stringer,
// to avoid eagerly evaluating its String method in case the span is not sampled.
func StringerAttr(key string, val interface{ String() string }) KeyValueAttr {
	return otelattr.Stringer(key, val)
}

// SpanError sets the given span to error status,
// with detail from err.Error().
func SpanError(span Span, err error) {
	span.SetStatus(otelcodes.Error, err.Error())
}

// ErrorAttr returns an attribute with the key "err"
// and the lazily evaluated value of err's Error() method.
func ErrorAttr(err error) KeyValueAttr {
	return otelattr.Stringer("err", errStringer{err: err})
}

type errStringer struct {
	err error
}

func (e errStringer) String() string {
	return e.err.Error()
}

// (c) Copyright Tracelet Inc. 2026

package tracelet

import "context"

type contextKey int8

const (
	activeSpanKey contextKey = iota
	activeTracerKey
)

// ContextWithSpan returns a new context.Context holding a reference to
// the active span
func ContextWithSpan(ctx context.Context, sp Span) context.Context {
	return context.WithValue(ctx, activeSpanKey, sp)
}

// SpanFromContext retrieves the previously stored active span from
// context. If there is no span, the second return value is false.
func SpanFromContext(ctx context.Context) (Span, bool) {
	sp, ok := ctx.Value(activeSpanKey).(Span)
	return sp, ok
}

// ContextWithTracer returns a new context.Context holding a reference to
// the tracer that records spans started within it
func ContextWithTracer(ctx context.Context, tr Tracer) context.Context {
	return context.WithValue(ctx, activeTracerKey, tr)
}

// TracerFromContext retrieves the previously stored tracer from context.
// If there is no tracer, the second return value is false.
func TracerFromContext(ctx context.Context) (Tracer, bool) {
	tr, ok := ctx.Value(activeTracerKey).(Tracer)
	return tr, ok
}

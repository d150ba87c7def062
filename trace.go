package tracelet

import "context"

// AnnotationFailed is the key of the closing annotation synthesized when
// a traced operation fails.
const AnnotationFailed = "failed"

// TracedFunc is a unit of asynchronous work wrapped by TraceAsync. It
// receives an independent copy of the recorded span, or nil if the
// tracer declined or failed to record one, and yields its result
// together with the annotations to attach on completion.
type TracedFunc[T any] func(ctx context.Context, span *Span) (T, []Annotation, error)

// WorkFunc is a unit of work wrapped by Trace. It is a TracedFunc that
// attaches no terminal annotations.
type WorkFunc[T any] func(ctx context.Context, span *Span) (T, error)

// TraceAsync runs work as one traced operation. It derives a child span
// from the ambient parent span via the ambient tracer, records the
// client-sent event carrying the initial annotations, hands work a copy
// of the recorded span, and once work has completed records the
// client-received event with work's terminal annotations.
//
// The ambient parent span and tracer are taken from ctx (see
// ContextWithSpan and ContextWithTracer); a context without a tracer
// runs work untraced. Tracing is strictly best-effort: a tracer that
// fails or declines on the send phase leaves work running with a nil
// span, and the closing call is never awaited, so neither can alter the
// result or failure returned to the caller. work runs exactly once.
//
// A failure of work propagates unchanged; the closing event then
// carries a single "failed" annotation describing it instead of the
// terminal annotations.
func TraceAsync[T any](ctx context.Context, name string, work TracedFunc[T], annotations ...Annotation) (T, error) {
	tracer, ok := TracerFromContext(ctx)
	if !ok {
		tracer = NewNoopTracer()
	}

	parent, _ := SpanFromContext(ctx)
	child := tracer.GenerateSpan(name, parent)

	sent := clientSentQuietly(ctx, tracer, child, annotations)

	workCtx := ctx
	var handoff *Span
	if sent != nil {
		sp := sent.Span()
		handoff = &sp
		workCtx = ContextWithSpan(ctx, sp)
	}

	result, terminal, err := work(workCtx, handoff)

	if sent != nil {
		closing := terminal
		if err != nil {
			closing = []Annotation{{Key: AnnotationFailed, Value: "Finished with exception: " + err.Error()}}
		}

		// Closing the span must not add latency or failure modes to
		// the primary computation, so it is not awaited.
		go clientReceivedDetached(context.WithoutCancel(ctx), tracer, sent, closing)
	}

	return result, err
}

// Trace is TraceAsync for work that produces no terminal annotations.
func Trace[T any](ctx context.Context, name string, work WorkFunc[T], annotations ...Annotation) (T, error) {
	return TraceAsync(ctx, name, func(ctx context.Context, span *Span) (T, []Annotation, error) {
		result, err := work(ctx, span)
		return result, nil, err
	}, annotations...)
}

// clientSentQuietly records the client-sent event, absorbing any error
// or panic raised by the tracer. Either outcome is indistinguishable
// from the tracer declining the span.
func clientSentQuietly(ctx context.Context, tracer Tracer, span Span, annotations []Annotation) (sent SentSpan) {
	defer func() {
		if p := recover(); p != nil {
			defaultLogger.Debug("tracer panicked on client-sent, proceeding untraced: ", p)
			sent = nil
		}
	}()

	sent, err := tracer.ClientSent(ctx, span, annotations...)
	if err != nil {
		defaultLogger.Debug("failed to record client-sent, proceeding untraced: ", err)
		return nil
	}

	return sent
}

func clientReceivedDetached(ctx context.Context, tracer Tracer, sent SentSpan, annotations []Annotation) {
	defer func() {
		// A panic here would take the process down with it, which no
		// best-effort trace event is worth.
		if p := recover(); p != nil {
			defaultLogger.Warn("tracer panicked on client-received: ", p)
		}
	}()

	if _, err := tracer.ClientReceived(ctx, sent, annotations...); err != nil {
		defaultLogger.Warn("failed to record client-received: ", err)
	}
}

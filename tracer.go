package tracelet

import "context"

// SentSpan is a tracer's handle to a span whose lifecycle it is
// recording. The handle stays with the tracer's bookkeeping; business
// logic only ever sees the independent copy returned by Span().
type SentSpan interface {
	// Span returns an independent plain copy of the recorded span.
	Span() Span
}

// Tracer records span lifecycle transitions and derives child spans.
// Implementations are the sole collector-facing boundary and must be
// safe for concurrent invocation across independently traced operations.
//
// The lifecycle calls may decline to record a span (sampling, filtering)
// by returning a nil SentSpan with a nil error. GenerateSpan must never
// fail observably.
type Tracer interface {
	// GenerateSpan derives a child span from parent under the given
	// operation name. An invalid parent yields a fresh root span.
	GenerateSpan(name string, parent Span) Span

	// ClientSent records the start of an outbound traced operation.
	ClientSent(ctx context.Context, span Span, annotations ...Annotation) (SentSpan, error)

	// ClientReceived records the completion of an outbound traced
	// operation previously recorded by ClientSent.
	ClientReceived(ctx context.Context, sent SentSpan, annotations ...Annotation) (SentSpan, error)

	// ServerReceived records the arrival of an inbound traced request.
	ServerReceived(ctx context.Context, span Span, annotations ...Annotation) (SentSpan, error)

	// ServerSent records the response to an inbound traced request
	// previously recorded by ServerReceived.
	ServerSent(ctx context.Context, sent SentSpan, annotations ...Annotation) (SentSpan, error)
}

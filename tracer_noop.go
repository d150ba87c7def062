// (c) Copyright Tracelet Inc. 2026

package tracelet

import "context"

var _ Tracer = (*noopTracer)(nil)

// noopTracer declines every span. It backs traced operations whose
// context carries no tracer, so that business logic runs untraced
// rather than failing.
type noopTracer struct{}

// NewNoopTracer returns a tracer that records nothing and never fails.
func NewNoopTracer() Tracer {
	return noopTracer{}
}

func (noopTracer) GenerateSpan(name string, parent Span) Span {
	return NewSpan(name, parent)
}

func (noopTracer) ClientSent(ctx context.Context, span Span, annotations ...Annotation) (SentSpan, error) {
	return nil, nil
}

func (noopTracer) ClientReceived(ctx context.Context, sent SentSpan, annotations ...Annotation) (SentSpan, error) {
	return nil, nil
}

func (noopTracer) ServerReceived(ctx context.Context, span Span, annotations ...Annotation) (SentSpan, error) {
	return nil, nil
}

func (noopTracer) ServerSent(ctx context.Context, sent SentSpan, annotations ...Annotation) (SentSpan, error) {
	return nil, nil
}

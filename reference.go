// (c) Copyright Tracelet Inc. 2026

package tracelet

import (
	"context"
	"errors"
	"sync"

	f "github.com/looplab/fsm"
)

// Lifecycle marker annotation keys, client- and server-side
const (
	AnnotationClientSent     = "cs"
	AnnotationClientReceived = "cr"
	AnnotationServerReceived = "sr"
	AnnotationServerSent     = "ss"
)

// recorded span lifecycle states
const (
	statePending = "pending"
	stateSent    = "sent"
	stateServing = "serving"
	stateDone    = "done"
)

// ErrForeignSpan is returned by the reference tracer when asked to close
// a sent span it did not produce.
var ErrForeignSpan = errors.New("sent span was not produced by this tracer")

var _ Tracer = (*ReferenceTracer)(nil)

// ReferenceTracer is a pass-through Tracer that records every
// well-formed span, appending a lifecycle marker annotation at each
// transition and enforcing their ordering. It validates the span
// lifecycle protocol without a collector: terminal transitions hand the
// accumulated span to the configured SpanRecorder.
type ReferenceTracer struct {
	opts Options
}

// NewReferenceTracer initializes a new reference tracer. A nil opts is
// equivalent to DefaultOptions().
func NewReferenceTracer(opts *Options) *ReferenceTracer {
	if opts == nil {
		opts = DefaultOptions()
	}

	o := *opts
	o.setDefaults()

	return &ReferenceTracer{opts: o}
}

func (t *ReferenceTracer) GenerateSpan(name string, parent Span) Span {
	return NewSpan(name, parent)
}

// ClientSent records the client-side start of span. Malformed spans are
// declined rather than rejected with an error.
func (t *ReferenceTracer) ClientSent(ctx context.Context, span Span, annotations ...Annotation) (SentSpan, error) {
	return t.open(ctx, span, AnnotationClientSent, annotations)
}

// ClientReceived closes a span opened with ClientSent and hands it to
// the recorder. Closing a span out of order is an error.
func (t *ReferenceTracer) ClientReceived(ctx context.Context, sent SentSpan, annotations ...Annotation) (SentSpan, error) {
	return t.close(ctx, sent, AnnotationClientReceived, annotations)
}

// ServerReceived records the server-side arrival of span.
func (t *ReferenceTracer) ServerReceived(ctx context.Context, span Span, annotations ...Annotation) (SentSpan, error) {
	return t.open(ctx, span, AnnotationServerReceived, annotations)
}

// ServerSent closes a span opened with ServerReceived and hands it to
// the recorder.
func (t *ReferenceTracer) ServerSent(ctx context.Context, sent SentSpan, annotations ...Annotation) (SentSpan, error) {
	return t.close(ctx, sent, AnnotationServerSent, annotations)
}

func (t *ReferenceTracer) open(ctx context.Context, span Span, marker string, annotations []Annotation) (SentSpan, error) {
	if !t.sendable(span) {
		t.opts.Logger.Debug("declining a malformed span: ", span.Name)
		return nil, nil
	}

	rs := newRecordedSpan(t, span)

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if err := rs.lifecycle.Event(ctx, marker); err != nil {
		return nil, err
	}

	rs.annotate(t.opts.Annotations)
	rs.annotate(annotations)
	rs.mark(marker)

	return rs, nil
}

func (t *ReferenceTracer) close(ctx context.Context, sent SentSpan, marker string, annotations []Annotation) (SentSpan, error) {
	rs, ok := sent.(*recordedSpan)
	if !ok || rs.tracer != t {
		return nil, ErrForeignSpan
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if err := rs.lifecycle.Event(ctx, marker); err != nil {
		return nil, err
	}

	rs.annotate(annotations)
	rs.mark(marker)

	t.opts.Recorder.RecordSpan(rs.span.Clone())

	return rs, nil
}

// sendable is the basic well-formedness check gating span recording
func (t *ReferenceTracer) sendable(span Span) bool {
	return span.Name != "" && span.TraceID != 0 && span.SpanID != 0
}

// recordedSpan is the reference tracer's bookkeeping handle for one
// span in flight. The lifecycle state machine rejects out-of-order
// transitions, e.g. a client-received before the client-sent or a
// second terminal event on an already inert span.
type recordedSpan struct {
	tracer *ReferenceTracer

	mu        sync.Mutex
	span      Span
	lifecycle *f.FSM
}

func newRecordedSpan(tracer *ReferenceTracer, span Span) *recordedSpan {
	return &recordedSpan{
		tracer: tracer,
		span:   span.Clone(),
		lifecycle: f.NewFSM(
			statePending,
			f.Events{
				{Name: AnnotationClientSent, Src: []string{statePending}, Dst: stateSent},
				{Name: AnnotationClientReceived, Src: []string{stateSent}, Dst: stateDone},
				{Name: AnnotationServerReceived, Src: []string{statePending}, Dst: stateServing},
				{Name: AnnotationServerSent, Src: []string{stateServing}, Dst: stateDone},
			},
			f.Callbacks{},
		),
	}
}

// Span returns an independent copy of the recorded span
func (rs *recordedSpan) Span() Span {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.span.Clone()
}

func (rs *recordedSpan) annotate(annotations []Annotation) {
	for _, a := range annotations {
		if a.Time.IsZero() {
			a.Time = rs.tracer.opts.Clock.Now()
		}

		rs.span = rs.span.Annotate(a.Time, a.Key, a.Value)
	}
}

func (rs *recordedSpan) mark(marker string) {
	rs.span = rs.span.Annotate(rs.tracer.opts.Clock.Now(), marker, rs.tracer.opts.Service)
}

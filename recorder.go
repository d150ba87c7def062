package tracelet

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxBufferedSpans is the default limit on the number of
	// spans a Recorder buffers between flushes
	DefaultMaxBufferedSpans = 1000
	// DefaultFlushPeriod is the default interval between two
	// consecutive batch deliveries
	DefaultFlushPeriod = 1 * time.Second
)

// A SpanRecorder handles the ended spans produced by a Tracer.
// Implementations must determine whether and where to store the span.
type SpanRecorder interface {
	RecordSpan(span Span)
}

// BatchHandlerFunc delivers a batch of recorded spans. Every batch is
// identified by a unique id so that delivery can be retried or
// deduplicated downstream.
type BatchHandlerFunc func(batchID string, spans []Span)

// Recorder accepts spans, buffers and queues them for delivery in
// batches. It is safe for concurrent use.
type Recorder struct {
	sync.RWMutex
	spans    []Span
	dropped  int
	handler  BatchHandlerFunc
	testMode bool
}

// NewRecorder initializes a new span recorder that delivers batches of
// buffered spans to handler every DefaultFlushPeriod. A nil handler
// leaves the spans buffered until they are collected with GetSpans or
// flushed explicitly.
func NewRecorder(handler BatchHandlerFunc) *Recorder {
	r := &Recorder{handler: handler}
	r.init(DefaultFlushPeriod)
	return r
}

// NewTestRecorder initializes a new span recorder to be used in tests.
// It never delivers batches on its own; recorded spans are inspected
// with GetSpans.
func NewTestRecorder() *Recorder {
	r := &Recorder{testMode: true}
	r.init(0)
	return r
}

func (r *Recorder) init(flushPeriod time.Duration) {
	if r.testMode || r.handler == nil {
		return
	}

	ticker := time.NewTicker(flushPeriod)
	go func() {
		for range ticker.C {
			r.Flush()
		}
	}()
}

// RecordSpan buffers a finished span for delivery. Once the buffer is
// full further spans are dropped and counted rather than blocking the
// recording tracer.
func (r *Recorder) RecordSpan(span Span) {
	r.Lock()
	defer r.Unlock()

	if len(r.spans) >= DefaultMaxBufferedSpans {
		r.dropped++
		return
	}

	r.spans = append(r.spans, span)
}

// GetSpans returns a copy of the buffered spans accumulated so far.
func (r *Recorder) GetSpans() []Span {
	r.RLock()
	defer r.RUnlock()

	spans := make([]Span, len(r.spans))
	copy(spans, r.spans)
	return spans
}

// DroppedSpansCount returns the number of spans dropped due to a full buffer.
func (r *Recorder) DroppedSpansCount() int {
	r.RLock()
	defer r.RUnlock()

	return r.dropped
}

// Reset discards all buffered spans.
func (r *Recorder) Reset() {
	r.Lock()
	defer r.Unlock()

	r.spans = nil
}

// Flush hands the buffered spans over to the batch handler, tagged with
// a fresh batch id, and clears the buffer. It is a no-op when there is
// no handler or nothing to deliver.
func (r *Recorder) Flush() {
	r.Lock()
	if r.handler == nil || len(r.spans) == 0 {
		r.Unlock()
		return
	}

	spans := r.spans
	r.spans = nil
	handler := r.handler
	r.Unlock()

	handler(uuid.New().String(), spans)
}

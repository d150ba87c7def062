package tracelet

import "time"

// Annotation is a timestamped fact attached to a span, either a lifecycle
// marker ("cs", "cr", "sr", "ss") or a caller-supplied key/value pair.
type Annotation struct {
	Time  time.Time
	Key   string
	Value string
}

// Span identifies one traced unit of work and links it into a trace tree.
type Span struct {
	// A probabilistically unique identifier for a [multi-span] trace.
	TraceID int64
	// A probabilistically unique identifier for this span.
	SpanID int64
	// An optional parent span ID, 0 if this is a root span.
	ParentID int64
	// The operation name given to this span.
	Name string
	// Lifecycle events and caller-supplied metadata, append-only while
	// the span is active.
	Annotations []Annotation
}

// IsValidParent reports whether the span can be used to derive a child.
// A span missing either the trace or the span ID never parents a child;
// derivation starts a fresh root trace instead.
func (s Span) IsValidParent() bool {
	return s.TraceID != 0 && s.SpanID != 0
}

// Clone returns an independent deep copy of the span. Spans are handed
// out cloned so that further annotation by the tracer stays invisible to
// the caller and vice versa.
func (s Span) Clone() Span {
	c := s
	if s.Annotations != nil {
		c.Annotations = make([]Annotation, len(s.Annotations))
		copy(c.Annotations, s.Annotations)
	}

	return c
}

// Annotate appends an annotation and returns the updated span.
func (s Span) Annotate(t time.Time, key, value string) Span {
	s.Annotations = append(s.Annotations, Annotation{Time: t, Key: key, Value: value})
	return s
}

// NewRootSpan initializes a new root span issuing a new trace ID
func NewRootSpan(name string) Span {
	id := randomID()

	return Span{
		TraceID: id,
		SpanID:  id,
		Name:    name,
	}
}

// NewSpan initializes a new child span from its parent. It will ignore
// the parent if it misses either the trace or the span ID and start a
// new root span instead.
func NewSpan(name string, parent Span) Span {
	if !parent.IsValidParent() {
		return NewRootSpan(name)
	}

	return Span{
		TraceID:  parent.TraceID,
		SpanID:   randomID(),
		ParentID: parent.SpanID,
		Name:     name,
	}
}

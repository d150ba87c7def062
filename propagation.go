// (c) Copyright Tracelet Inc. 2026

package tracelet

import (
	"strings"

	ot "github.com/opentracing/opentracing-go"
)

// Trace context header constants
const (
	// FieldT Trace ID header
	FieldT = "x-tracelet-t"
	// FieldS Span ID header
	FieldS = "x-tracelet-s"
	// FieldP Parent span ID header
	FieldP = "x-tracelet-p"
	// FieldTraceParent W3C trace context parent header, used as a
	// fallback to pick up traces started by foreign instrumentation
	FieldTraceParent = "traceparent"
)

// Inject writes the span's identifiers into a carrier for propagation
// to downstream services. The carrier must implement the opentracing
// TextMapWriter interface, e.g. ot.HTTPHeadersCarrier or
// ot.TextMapCarrier.
func Inject(span Span, opaqueCarrier interface{}) error {
	carrier, ok := opaqueCarrier.(ot.TextMapWriter)
	if !ok {
		return ot.ErrInvalidCarrier
	}

	carrier.Set(FieldT, FormatID(span.TraceID))
	carrier.Set(FieldS, FormatID(span.SpanID))
	if span.ParentID != 0 {
		carrier.Set(FieldP, FormatID(span.ParentID))
	}

	return nil
}

// Extract reads the trace context headers from a carrier and returns a
// Span populated only with the identifiers that are present and
// parseable; a missing or corrupted header leaves the corresponding
// field absent. The returned span is the ambient parent for traced
// operations serving the request.
//
// Header name matching is case-insensitive. When none of the trace
// context headers are present, Extract falls back to the W3C
// `traceparent` header before giving up with ot.ErrSpanContextNotFound.
func Extract(opaqueCarrier interface{}) (Span, error) {
	carrier, ok := opaqueCarrier.(ot.TextMapReader)
	if !ok {
		return Span{}, ot.ErrInvalidCarrier
	}

	var sp Span
	var found bool
	var traceParent string

	err := carrier.ForeachKey(func(k, v string) error {
		switch strings.ToLower(k) {
		case FieldT:
			found = true
			if id, err := ParseID(v); err == nil {
				sp.TraceID = id
			}
		case FieldS:
			found = true
			if id, err := ParseID(v); err == nil {
				sp.SpanID = id
			}
		case FieldP:
			found = true
			if id, err := ParseID(v); err == nil {
				sp.ParentID = id
			}
		case FieldTraceParent:
			traceParent = v
		}

		return nil
	})
	if err != nil {
		return Span{}, err
	}

	if found {
		return sp, nil
	}

	if traceParent != "" {
		if foreign, ok := parseTraceParent(traceParent); ok {
			return foreign, nil
		}
	}

	return Span{}, ot.ErrSpanContextNotFound
}

// parseTraceParent picks the trace and parent span identifiers out of a
// W3C trace context parent header:
//
//	traceparent := <version>-<trace-id>-<parent-id>-<flags>
//
// Only the lower 64 bits of the 128-bit trace ID are kept.
func parseTraceParent(s string) (Span, bool) {
	parts := strings.Split(s, "-")
	if len(parts) < 4 || len(parts[1]) != 32 || len(parts[2]) != 16 {
		return Span{}, false
	}

	traceID, err := ParseID(parts[1][16:])
	if err != nil {
		return Span{}, false
	}

	spanID, err := ParseID(parts[2])
	if err != nil {
		return Span{}, false
	}

	return Span{TraceID: traceID, SpanID: spanID}, true
}

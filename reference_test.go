package tracelet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"

	tracelet "github.com/tracelet/go-tracer"
)

func TestReferenceTracer_ClientLifecycle(t *testing.T) {
	clock := clockz.NewFakeClockAt(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	recorder := tracelet.NewTestRecorder()
	tracer := tracelet.NewReferenceTracer(&tracelet.Options{
		Service:  "user-svc",
		Recorder: recorder,
		Clock:    clock,
	})

	ctx := context.Background()

	span := tracer.GenerateSpan("fetchUser", tracelet.Span{TraceID: 100, SpanID: 200})

	sent, err := tracer.ClientSent(ctx, span)
	require.NoError(t, err)
	require.NotNil(t, sent)

	_, err = tracer.ClientReceived(ctx, sent, tracelet.Annotation{Key: "rows", Value: "1"})
	require.NoError(t, err)

	spans := recorder.GetSpans()
	require.Len(t, spans, 1)

	sp := spans[0]
	assert.Equal(t, int64(200), sp.ParentID)

	require.Len(t, sp.Annotations, 3)
	assert.Equal(t, "cs", sp.Annotations[0].Key)
	assert.Equal(t, "user-svc", sp.Annotations[0].Value)
	assert.Equal(t, clock.Now(), sp.Annotations[0].Time)
	assert.Equal(t, "rows", sp.Annotations[1].Key)
	assert.Equal(t, "cr", sp.Annotations[2].Key)
}

func TestReferenceTracer_ServerLifecycle(t *testing.T) {
	recorder := tracelet.NewTestRecorder()
	tracer := tracelet.NewReferenceTracer(&tracelet.Options{Recorder: recorder})

	ctx := context.Background()

	span := tracer.GenerateSpan("handleRequest", tracelet.Span{})

	received, err := tracer.ServerReceived(ctx, span)
	require.NoError(t, err)
	require.NotNil(t, received)

	_, err = tracer.ServerSent(ctx, received)
	require.NoError(t, err)

	spans := recorder.GetSpans()
	require.Len(t, spans, 1)

	require.Len(t, spans[0].Annotations, 2)
	assert.Equal(t, "sr", spans[0].Annotations[0].Key)
	assert.Equal(t, "ss", spans[0].Annotations[1].Key)
}

func TestReferenceTracer_DeclinesMalformedSpans(t *testing.T) {
	tracer := tracelet.NewReferenceTracer(nil)

	examples := map[string]tracelet.Span{
		"empty name":  {TraceID: 1, SpanID: 2},
		"no trace id": {SpanID: 2, Name: "op"},
		"no span id":  {TraceID: 1, Name: "op"},
	}

	for name, span := range examples {
		t.Run(name, func(t *testing.T) {
			sent, err := tracer.ClientSent(context.Background(), span)
			require.NoError(t, err)
			assert.Nil(t, sent)
		})
	}
}

func TestReferenceTracer_RejectsOutOfOrderTransitions(t *testing.T) {
	recorder := tracelet.NewTestRecorder()
	tracer := tracelet.NewReferenceTracer(&tracelet.Options{Recorder: recorder})

	ctx := context.Background()

	sent, err := tracer.ClientSent(ctx, tracelet.Span{TraceID: 1, SpanID: 2, Name: "op"})
	require.NoError(t, err)

	// closing a client span with the server-side event
	_, err = tracer.ServerSent(ctx, sent)
	assert.Error(t, err)

	_, err = tracer.ClientReceived(ctx, sent)
	require.NoError(t, err)

	// the span is inert once its terminal event has been recorded
	_, err = tracer.ClientReceived(ctx, sent)
	assert.Error(t, err)

	assert.Len(t, recorder.GetSpans(), 1)
}

func TestReferenceTracer_RejectsForeignSpans(t *testing.T) {
	tracer := tracelet.NewReferenceTracer(nil)
	other := tracelet.NewReferenceTracer(nil)

	sent, err := other.ClientSent(context.Background(), tracelet.Span{TraceID: 1, SpanID: 2, Name: "op"})
	require.NoError(t, err)

	_, err = tracer.ClientReceived(context.Background(), sent)
	assert.ErrorIs(t, err, tracelet.ErrForeignSpan)
}

func TestReferenceTracer_SentSpanCopyIsIndependent(t *testing.T) {
	recorder := tracelet.NewTestRecorder()
	tracer := tracelet.NewReferenceTracer(&tracelet.Options{Recorder: recorder})

	sent, err := tracer.ClientSent(context.Background(), tracelet.Span{TraceID: 1, SpanID: 2, Name: "op"})
	require.NoError(t, err)

	snapshot := sent.Span()
	snapshot.Annotations[0].Key = "mutated"

	_, err = tracer.ClientReceived(context.Background(), sent)
	require.NoError(t, err)

	sp := recorder.GetSpans()[0]
	assert.Equal(t, "cs", sp.Annotations[0].Key)
}

func TestReferenceTracer_DefaultAnnotations(t *testing.T) {
	recorder := tracelet.NewTestRecorder()
	tracer := tracelet.NewReferenceTracer(&tracelet.Options{
		Recorder:    recorder,
		Annotations: []tracelet.Annotation{{Key: "env", Value: "staging"}},
	})

	sent, err := tracer.ClientSent(context.Background(), tracelet.Span{TraceID: 1, SpanID: 2, Name: "op"})
	require.NoError(t, err)

	_, err = tracer.ClientReceived(context.Background(), sent)
	require.NoError(t, err)

	sp := recorder.GetSpans()[0]
	require.Len(t, sp.Annotations, 3)
	assert.Equal(t, "env", sp.Annotations[0].Key)
	assert.Equal(t, "staging", sp.Annotations[0].Value)
	assert.Equal(t, "cs", sp.Annotations[1].Key)
}

package tracelet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracelet "github.com/tracelet/go-tracer"
)

func TestContextWithSpan(t *testing.T) {
	sp := tracelet.Span{TraceID: 1, SpanID: 2}
	ctx := tracelet.ContextWithSpan(context.Background(), sp)

	got, ok := tracelet.SpanFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, sp, got)
}

func TestSpanFromContext_NoSpan(t *testing.T) {
	_, ok := tracelet.SpanFromContext(context.Background())
	assert.False(t, ok)
}

func TestContextWithTracer(t *testing.T) {
	tracer := tracelet.NewReferenceTracer(nil)
	ctx := tracelet.ContextWithTracer(context.Background(), tracer)

	got, ok := tracelet.TracerFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, tracer, got)
}

func TestTracerFromContext_NoTracer(t *testing.T) {
	_, ok := tracelet.TracerFromContext(context.Background())
	assert.False(t, ok)
}

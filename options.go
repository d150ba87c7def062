package tracelet

import (
	"github.com/zoobzio/clockz"
)

// Options holds the configuration of a ReferenceTracer
type Options struct {
	// Service is the name of the instrumented service, attached as the
	// value of every lifecycle marker annotation
	Service string
	// Recorder receives the spans whose terminal lifecycle event has
	// been recorded
	Recorder SpanRecorder
	// Clock drives annotation timestamps, swappable for deterministic
	// tests
	Clock clockz.Clock
	// Logger is the tracer's own error sink
	Logger LeveledLogger
	// Annotations are attached to every span on its initial lifecycle
	// event, in addition to the per-operation ones
	Annotations []Annotation
}

// DefaultOptions returns the default configuration, populated from the
// TRACELET_SERVICE and TRACELET_TAGS env variables where present
func DefaultOptions() *Options {
	return &Options{
		Service:     serviceNameFromEnv(),
		Annotations: annotationsFromEnv(),
	}
}

func (opts *Options) setDefaults() {
	if opts.Recorder == nil {
		opts.Recorder = NewTestRecorder()
	}

	if opts.Clock == nil {
		opts.Clock = clockz.RealClock
	}

	if opts.Logger == nil {
		opts.Logger = defaultLogger
	}
}

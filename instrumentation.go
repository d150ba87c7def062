package tracelet

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	ot "github.com/opentracing/opentracing-go"
)

// TracingHandlerFunc is an HTTP middleware that records the request as a
// server-side span and ensures trace context propagation via the trace
// context headers. Traced operations started by the handler pick up the
// request's span and the tracer from the request context.
func TracingHandlerFunc(tracer Tracer, name string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		parent, err := Extract(ot.HTTPHeadersCarrier(req.Header))
		switch err {
		case nil:
		case ot.ErrSpanContextNotFound:
			defaultLogger.Debug("no span context provided with ", req.Method, " ", req.URL.Path)
		default:
			defaultLogger.Warn("failed to extract span context from the request: ", err)
		}

		span := tracer.GenerateSpan(name, parent)

		received := serverReceivedQuietly(ctx, tracer, span,
			Annotation{Key: "http.method", Value: req.Method},
			Annotation{Key: "http.path", Value: req.URL.Path},
			Annotation{Key: "http.host", Value: req.Host},
		)
		if received != nil {
			span = received.Span()
		}

		if err := Inject(span, ot.HTTPHeadersCarrier(w.Header())); err != nil {
			defaultLogger.Warn("failed to inject span context into the response: ", err)
		}

		ctx = ContextWithTracer(ContextWithSpan(ctx, span), tracer)

		defer func() {
			// Be sure to capture any kind of panic / error
			if p := recover(); p != nil {
				if received != nil {
					go serverSentDetached(context.WithoutCancel(ctx), tracer, received, []Annotation{
						{Key: AnnotationFailed, Value: fmt.Sprint("Finished with exception: ", p)},
					})
				}

				// re-throw the panic
				panic(p)
			}
		}()

		wrapped := &statusCodeRecorder{ResponseWriter: w}
		handler(wrapped, req.WithContext(ctx))

		if received != nil {
			var terminal []Annotation
			if wrapped.Status > 0 {
				terminal = append(terminal, Annotation{Key: "http.status", Value: strconv.Itoa(wrapped.Status)})
			}

			go serverSentDetached(context.WithoutCancel(ctx), tracer, received, terminal)
		}
	}
}

func serverReceivedQuietly(ctx context.Context, tracer Tracer, span Span, annotations ...Annotation) (received SentSpan) {
	defer func() {
		if p := recover(); p != nil {
			defaultLogger.Debug("tracer panicked on server-received, proceeding untraced: ", p)
			received = nil
		}
	}()

	received, err := tracer.ServerReceived(ctx, span, annotations...)
	if err != nil {
		defaultLogger.Debug("failed to record server-received, proceeding untraced: ", err)
		return nil
	}

	return received
}

func serverSentDetached(ctx context.Context, tracer Tracer, received SentSpan, annotations []Annotation) {
	defer func() {
		if p := recover(); p != nil {
			defaultLogger.Warn("tracer panicked on server-sent: ", p)
		}
	}()

	if _, err := tracer.ServerSent(ctx, received, annotations...); err != nil {
		defaultLogger.Warn("failed to record server-sent: ", err)
	}
}

// wrapper over http.ResponseWriter to spy the returned status code
type statusCodeRecorder struct {
	http.ResponseWriter
	Status int
}

func (rec *statusCodeRecorder) WriteHeader(status int) {
	rec.Status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusCodeRecorder) Write(b []byte) (int, error) {
	if rec.Status == 0 {
		rec.Status = http.StatusOK
	}

	return rec.ResponseWriter.Write(b)
}

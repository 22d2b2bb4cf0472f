// Package logctxhttp opens a field scope per incoming HTTP request.
//
// Every request gets a fresh logging context carrying the method, path, and
// a request ID, injected into the request's context.Context so all handler
// logging picks the fields up automatically:
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/api", handler)
//	http.ListenAndServe(":8080", logctxhttp.Handler(mux))
package logctxhttp

import (
	"net/http"

	"github.com/JupiterMetaLabs/logctx"
	"github.com/google/uuid"
)

// Handler wraps an http.Handler so each request runs inside its own field
// scope. The scope's fields:
//   - http.method
//   - http.path
//   - request_id (from the configured header, or a new UUID)
//
// plus any extra fields configured via WithFields. The scope is restored
// when the handler returns, panics included.
func Handler(next http.Handler, opts ...Option) http.Handler {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(o)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ""
		if o.requestIDHeader != "" {
			requestID = r.Header.Get(o.requestIDHeader)
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		fields := make([]logctx.Field, 0, 3+len(o.fields))
		fields = append(fields,
			logctx.String("http.method", r.Method),
			logctx.String("http.path", r.URL.Path),
			logctx.String("request_id", requestID),
		)
		fields = append(fields, o.fields...)

		lc := logctx.New()
		frame := lc.Enter(fields...)
		defer frame.Exit()

		next.ServeHTTP(w, r.WithContext(logctx.IntoContext(r.Context(), lc)))
	})
}

// --- Options ---

type options struct {
	requestIDHeader string
	fields          []logctx.Field
}

func defaultOptions() *options {
	return &options{requestIDHeader: "X-Request-Id"}
}

// Option configures the middleware.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithRequestIDHeader sets the header consulted for an incoming request ID
// before generating one. Pass "" to always generate.
func WithRequestIDHeader(header string) Option {
	return optionFunc(func(o *options) {
		o.requestIDHeader = header
	})
}

// WithFields adds fixed fields to every request scope.
func WithFields(fields ...logctx.Field) Option {
	return optionFunc(func(o *options) {
		o.fields = append(o.fields, fields...)
	})
}

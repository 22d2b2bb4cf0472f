// Context plumbing: carrying a *Context through context.Context so code
// deep in a call chain (and the logger facade) can find the goroutine's
// active fields, plus OTEL trace correlation extracted from the ambient
// span context.

package logctx

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// ctxKey is an unexported type for the context key, preventing collisions
// with keys defined in other packages.
type ctxKey struct{}

// IntoContext returns a child context carrying lc. Handlers and middleware
// store the request-scoped Context here so downstream code logs with its
// fields.
func IntoContext(ctx context.Context, lc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, lc)
}

// FromContext returns the Context carried by ctx. If none is present (or
// ctx is nil) it returns a fresh empty Context so callers can always log.
func FromContext(ctx context.Context) *Context {
	if ctx != nil {
		if lc, ok := ctx.Value(ctxKey{}).(*Context); ok && lc != nil {
			return lc
		}
	}
	return New()
}

// traceFields extracts trace_id/span_id correlation fields from the OTEL
// span context, if one is active. Returns nil otherwise.
func traceFields(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []Field{
		String("trace_id", spanCtx.TraceID().String()),
		String("span_id", spanCtx.SpanID().String()),
	}
}

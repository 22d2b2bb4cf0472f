package logctx

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestIntoFromContext(t *testing.T) {
	lc := newTestContext(true)
	ctx := IntoContext(context.Background(), lc)

	if got := FromContext(ctx); got != lc {
		t.Error("FromContext did not return the stored Context")
	}
}

func TestFromContext_MissingReturnsFresh(t *testing.T) {
	lc := FromContext(context.Background())
	if lc == nil {
		t.Fatal("expected a usable Context")
	}
	if got := lc.ActiveFields(); len(got) != 0 {
		t.Errorf("expected empty fresh Context, got %v", got)
	}

	if FromContext(nil) == nil {
		t.Error("expected a usable Context for nil ctx")
	}
}

func TestTraceFields(t *testing.T) {
	if got := traceFields(context.Background()); got != nil {
		t.Errorf("expected no trace fields without a span, got %v", got)
	}

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:  trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	got := traceFields(ctx)
	if len(got) != 2 {
		t.Fatalf("expected trace_id and span_id, got %v", got)
	}
	if got[0].Key != "trace_id" || got[0].Value != "0102030405060708090a0b0c0d0e0f10" {
		t.Errorf("trace_id: %+v", got[0])
	}
	if got[1].Key != "span_id" || got[1].Value != "0102030405060708" {
		t.Errorf("span_id: %+v", got[1])
	}
}

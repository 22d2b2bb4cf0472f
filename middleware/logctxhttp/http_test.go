package logctxhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JupiterMetaLabs/logctx"
)

func fieldMap(fields []logctx.Field) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func TestHandler_EntersRequestScope(t *testing.T) {
	var seen map[string]string
	handler := Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = fieldMap(logctx.FromContext(r.Context()).ActiveFields())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/orders/42", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen["http.method"] != "POST" {
		t.Errorf("http.method: %q", seen["http.method"])
	}
	if seen["http.path"] != "/orders/42" {
		t.Errorf("http.path: %q", seen["http.path"])
	}
	if seen["request_id"] == "" {
		t.Error("expected generated request_id")
	}
}

func TestHandler_UsesIncomingRequestID(t *testing.T) {
	var seen map[string]string
	handler := Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = fieldMap(logctx.FromContext(r.Context()).ActiveFields())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen["request_id"] != "req-123" {
		t.Errorf("request_id: %q", seen["request_id"])
	}
}

func TestHandler_ExtraFields(t *testing.T) {
	var seen map[string]string
	handler := Handler(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = fieldMap(logctx.FromContext(r.Context()).ActiveFields())
		}),
		WithFields(logctx.String("component", "api")),
		WithRequestIDHeader(""),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if seen["component"] != "api" {
		t.Errorf("component: %q", seen["component"])
	}
	if seen["request_id"] == "" {
		t.Error("expected generated request_id with header lookup disabled")
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/football-tracker/internal/metrics"
	"github.com/preston-bernstein/football-tracker/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndLogs(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/matches/42", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	out := buf.String()
	if !strings.Contains(out, "request complete") || !strings.Contains(out, "status_code=418") {
		t.Fatalf("expected completion log with status, got %s", out)
	}
}

func TestLoggingMiddlewareKeepsValidIncomingRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "req-123" {
			t.Fatalf("expected incoming id, got %q", got)
		}
	})
	req := requestWithID("/health", "req-123")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)
	if got := rr.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestLoggingMiddlewareReplacesInvalidRequestID(t *testing.T) {
	req := requestWithID("/health", "bad id with spaces")
	rr := testutil.ServeRequest(LoggingMiddleware(nil, nil, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})), req)
	if got := rr.Header().Get("X-Request-ID"); got == "" || got == "bad id with spaces" {
		t.Fatalf("expected generated request id, got %q", got)
	}
}

func TestLoggingMiddlewareRecoversHandlerPanic(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("calendar corrupted") })

	rr := testutil.Serve(LoggingMiddleware(logger, nil, next), http.MethodGet, "/matches/7", nil)

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	out := buf.String()
	if !strings.Contains(out, "handler panic") || !strings.Contains(out, "route=/matches/:id") {
		t.Fatalf("expected panic logged with route, got %s", out)
	}
	if !strings.Contains(out, "level=WARN") {
		t.Fatalf("expected server error logged at warn, got %s", out)
	}
}

func TestLoggingMiddlewareLogsClientErrorsAtInfo(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) })

	testutil.Serve(LoggingMiddleware(logger, nil, next), http.MethodGet, "/matches/7", nil)

	if out := buf.String(); !strings.Contains(out, "level=INFO") || strings.Contains(out, "level=WARN") {
		t.Fatalf("expected info-level completion, got %s", out)
	}
}

func TestRequestIDFromContextMissing(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/health", "/health"},
		{"/matches", "/matches"},
		{"/matches/101", "/matches/:id"},
		{"/matches/101/scorers", "/matches/:id/scorers"},
		{"/teams/7/previous", "/teams/:id/previous"},
		{"/rounds/3", "/rounds/:n"},
		{"/admin/matches/5/refresh", "/admin/matches/:id/refresh"},
		{"/admin/calendar/sync", "/admin/calendar/sync"},
		{"/seasons/current", "/seasons/current"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func requestWithID(path, reqID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Request-ID", reqID)
	return req
}

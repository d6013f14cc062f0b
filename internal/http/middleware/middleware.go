package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/http/requestutil"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
)

// LoggingMiddleware wraps the handler with request logging, request ID support, metrics and
// panic recovery. Server errors log at warn.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.SanitizeRequestID(r.Header.Get("X-Request-ID"))
		w.Header().Set("X-Request-ID", reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)

		ctx := logging.WithLogger(r.Context(), logger)
		ctx = withRequestID(ctx, reqID)
		r = r.WithContext(ctx)
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		route := normalizePath(r.URL.Path)
		defer func() {
			if p := recover(); p != nil {
				logging.Error(logger, "handler panic", fmt.Errorf("%v", p), slog.String("route", route))
				if !ww.wrote {
					http.Error(ww, `{"error":"internal error","requestId":"`+reqID+`"}`, http.StatusInternalServerError)
				}
			}

			duration := time.Since(start)
			recorder.RecordHTTPRequest(r.Method, route, ww.status, duration)

			level := slog.LevelInfo
			if ww.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "request complete",
				slog.String("route", route),
				slog.Int(logging.FieldStatusCode, ww.status),
				slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

type responseWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

// RequestIDFromContext extracts the request ID stored by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

type requestIDKey struct{}

// normalizePath collapses ids so metric label cardinality stays bounded.
func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	path = strings.Split(path, "?")[0]
	segments := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(segments) >= 2 && segments[0] == "matches":
		segments[1] = ":id"
	case len(segments) >= 2 && segments[0] == "teams":
		segments[1] = ":id"
	case len(segments) == 2 && segments[0] == "rounds":
		segments[1] = ":n"
	case len(segments) >= 3 && segments[0] == "admin" && segments[1] == "matches":
		segments[2] = ":id"
	default:
		return path
	}
	return "/" + strings.Join(segments, "/")
}

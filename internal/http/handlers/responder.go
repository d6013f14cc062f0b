package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/football-tracker/internal/app/league"
	"github.com/preston-bernstein/football-tracker/internal/http/middleware"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeStoreError maps lookup failures to status codes.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFound string, logger *slog.Logger) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, notFound, logger)
	case errors.Is(err, league.ErrInvalidMatchID), errors.Is(err, store.ErrInvalidMatch):
		writeError(w, r, http.StatusBadRequest, "invalid match id", logger)
	default:
		logging.Error(logger, "storage read failed", err)
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", logger)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

// positiveInt parses a path or query value that must be a positive integer.
func positiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

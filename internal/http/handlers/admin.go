package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/football-tracker/internal/app/league"
	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/http/requestutil"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/providers"
	"github.com/preston-bernstein/football-tracker/internal/store"
)

// Refresher is the write side of the league service.
type Refresher interface {
	RefreshMatch(ctx context.Context, id int) (matches.Match, error)
	SyncCalendar(ctx context.Context) (matches.Calendar, error)
}

// AdminHandler exposes admin-only endpoints guarded by a bearer token.
type AdminHandler struct {
	league Refresher
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(league Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		league: league,
		token:  token,
		logger: logger,
	}
}

// RefreshMatch downloads one match and stores it in the current calendar.
func (h *AdminHandler) RefreshMatch(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	id, ok := positiveInt(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid match id", logger)
		return
	}

	m, err := h.league.RefreshMatch(r.Context(), id)
	if err != nil {
		logging.Warn(logger, "admin match refresh failed", slog.Int(logging.FieldMatchID, id), slog.Any("err", err))
		h.writeUpstreamError(w, r, err, logger)
		return
	}
	logging.Info(logger, "admin match refreshed", slog.Int(logging.FieldMatchID, id), slog.String(logging.FieldState, string(m.Status)))
	writeJSON(w, http.StatusOK, m, logger)
}

// SyncCalendar re-downloads the current season's fixtures.
func (h *AdminHandler) SyncCalendar(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	cal, err := h.league.SyncCalendar(r.Context())
	if err != nil {
		logging.Warn(logger, "admin calendar sync failed", slog.Any("err", err))
		h.writeUpstreamError(w, r, err, logger)
		return
	}
	logging.Info(logger, "admin calendar synced", slog.Int(logging.FieldSeasonID, cal.SeasonID), slog.Int(logging.FieldCount, len(cal.Data)))
	writeJSON(w, http.StatusOK, map[string]any{
		"seasonId": cal.SeasonID,
		"matches":  len(cal.Data),
		"status":   "ok",
	}, logger)
}

func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) bool {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return false
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return false
	}
	if h.league == nil {
		writeError(w, r, http.StatusServiceUnavailable, "league service not configured", h.logger)
		return false
	}
	return true
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}

func (h *AdminHandler) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if rl, ok := providers.AsRateLimitError(err); ok {
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds())))
		}
		writeError(w, r, http.StatusServiceUnavailable, "provider rate limited", logger)
		return
	}
	switch {
	case errors.Is(err, league.ErrInvalidMatchID):
		writeError(w, r, http.StatusBadRequest, "invalid match id", logger)
	case errors.Is(err, providers.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "match not found upstream", logger)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found in current season", logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "request canceled", logger)
	default:
		writeError(w, r, http.StatusBadGateway, "failed to fetch from provider", logger)
	}
}

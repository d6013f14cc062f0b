package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/domain/seasons"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/matchday"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

const defaultPreviousRounds = 3

type nowFunc func() time.Time

// League is the read side of the league service.
type League interface {
	Seasons() ([]seasons.Season, error)
	CurrentSeason() (seasons.Season, error)
	Location() *time.Location
	MatchesOn(day time.Time) ([]matches.Match, error)
	Match(id int) (matches.Match, error)
	Scorers(id int) ([]matches.Scorer, error)
	PreviousMatches(teamID, n, round int) ([]matches.Match, error)
	Round(n int) ([]matches.Match, error)
}

// Handler wires HTTP routes to the league service.
type Handler struct {
	league   League
	logger   *slog.Logger
	now      nowFunc
	statusFn func() matchday.Status
}

// DayResponse lists the matches of one league-local day.
type DayResponse struct {
	Date    string          `json:"date"`
	Matches []matches.Match `json:"matches"`
}

// RoundResponse lists the matches of one round.
type RoundResponse struct {
	Round   int             `json:"round"`
	Matches []matches.Match `json:"matches"`
}

// PreviousResponse lists a team's recent matches.
type PreviousResponse struct {
	TeamID  int             `json:"teamId"`
	Rounds  int             `json:"rounds"`
	Round   int             `json:"round,omitempty"`
	Matches []matches.Match `json:"matches"`
}

// ScorersResponse lists the goals of a match.
type ScorersResponse struct {
	MatchID int              `json:"matchId"`
	Score   string           `json:"score"`
	Scorers []matches.Scorer `json:"scorers"`
}

// NewHandler constructs a Handler. statusFn may be nil when the scheduler is disabled.
func NewHandler(league League, logger *slog.Logger, statusFn func() matchday.Status) *Handler {
	return &Handler{
		league:   league,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic, failing while the match-day loop is unhealthy.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready", "state": string(status.State)}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "scheduler " + string(status.State)
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Seasons lists every stored season.
func (h *Handler) Seasons(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	list, err := h.league.Seasons()
	if err != nil {
		writeStoreError(w, r, err, "no seasons", loggerFromContext(r, h.logger))
		return
	}
	if list == nil {
		list = []seasons.Season{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"seasons": list}, h.logger)
}

// CurrentSeason returns the most recently created season.
func (h *Handler) CurrentSeason(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	season, err := h.league.CurrentSeason()
	if err != nil {
		writeStoreError(w, r, err, "no season created", loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, season, h.logger)
}

// Matches returns the matches of ?date=YYYY-MM-DD, defaulting to today in the league timezone.
func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	loc := h.league.Location()

	day := timeutil.StartOfDay(h.now(), loc)
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := time.ParseInLocation(timeutil.DateLayout, raw, loc)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
			return
		}
		day = parsed
	}

	list, err := h.league.MatchesOn(day)
	if err != nil {
		writeStoreError(w, r, err, "no season created", logger)
		return
	}
	if list == nil {
		list = []matches.Match{}
	}
	date := timeutil.FormatDate(day)
	logging.Info(logger, "served matches", slog.String(logging.FieldDate, date), slog.Int(logging.FieldCount, len(list)))
	writeJSON(w, http.StatusOK, DayResponse{Date: date, Matches: list}, h.logger)
}

// MatchByID returns a stored match.
func (h *Handler) MatchByID(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	id, ok := positiveInt(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid match id", h.logger)
		return
	}
	m, err := h.league.Match(id)
	if err != nil {
		writeStoreError(w, r, err, "match not found", loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, m, h.logger)
}

// Scorers returns the goal list of a stored match.
func (h *Handler) Scorers(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	id, ok := positiveInt(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid match id", h.logger)
		return
	}
	m, err := h.league.Match(id)
	if err != nil {
		writeStoreError(w, r, err, "match not found", loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, ScorersResponse{MatchID: m.ID, Score: m.Score, Scorers: matches.Scorers(m)}, h.logger)
}

// PreviousMatches returns a team's matches from the n rounds (default 3) before round
// (default: the current round).
func (h *Handler) PreviousMatches(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	teamID, ok := positiveInt(r.PathValue("id"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	n := defaultPreviousRounds
	if raw := r.URL.Query().Get("n"); raw != "" {
		if n, ok = positiveInt(raw); !ok {
			writeError(w, r, http.StatusBadRequest, "n must be a positive integer", h.logger)
			return
		}
	}
	round := 0
	if raw := r.URL.Query().Get("round"); raw != "" {
		if round, ok = positiveInt(raw); !ok {
			writeError(w, r, http.StatusBadRequest, "round must be a positive integer", h.logger)
			return
		}
	}

	list, err := h.league.PreviousMatches(teamID, n, round)
	if err != nil {
		writeStoreError(w, r, err, "no season created", loggerFromContext(r, h.logger))
		return
	}
	if list == nil {
		list = []matches.Match{}
	}
	writeJSON(w, http.StatusOK, PreviousResponse{TeamID: teamID, Rounds: n, Round: round, Matches: list}, h.logger)
}

// Round returns the matches of one round.
func (h *Handler) Round(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	n, ok := positiveInt(r.PathValue("n"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid round", h.logger)
		return
	}
	list, err := h.league.Round(n)
	if err != nil {
		writeStoreError(w, r, err, "no season created", loggerFromContext(r, h.logger))
		return
	}
	if list == nil {
		list = []matches.Match{}
	}
	writeJSON(w, http.StatusOK, RoundResponse{Round: n, Matches: list}, h.logger)
}

package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/football-tracker/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Admin routes are mounted only when
// an admin handler is supplied.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/seasons", handler.Seasons)
	mux.HandleFunc("/seasons/current", handler.CurrentSeason)
	mux.HandleFunc("/matches", handler.Matches)
	mux.HandleFunc("/matches/{id}", handler.MatchByID)
	mux.HandleFunc("/matches/{id}/scorers", handler.Scorers)
	mux.HandleFunc("/teams/{id}/previous", handler.PreviousMatches)
	mux.HandleFunc("/rounds/{n}", handler.Round)
	if admin != nil {
		mux.HandleFunc("/admin/matches/{id}/refresh", admin.RefreshMatch)
		mux.HandleFunc("/admin/calendar/sync", admin.SyncCalendar)
	}
	return mux
}

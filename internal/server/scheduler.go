package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/app/league"
	"github.com/preston-bernstein/football-tracker/internal/config"
	"github.com/preston-bernstein/football-tracker/internal/matchday"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
	"github.com/preston-bernstein/football-tracker/internal/notify"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

// Scheduler defines the minimal match-day loop behavior needed by the server.
type Scheduler interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() matchday.Status
}

// buildScheduler returns nil when the match-day loop is disabled.
func buildScheduler(cfg config.ScheduleConfig, svc *league.Service, notifier notify.Notifier, loc *time.Location, logger *slog.Logger, recorder *metrics.Recorder) (Scheduler, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	check, err := timeutil.ParseClock(cfg.CheckTime)
	if err != nil {
		return nil, fmt.Errorf("match-day check time: %w", err)
	}
	status, err := timeutil.ParseClock(cfg.StatusTime)
	if err != nil {
		return nil, fmt.Errorf("status update time: %w", err)
	}
	return matchday.New(svc, notifier, matchday.SystemClock{}, matchday.Config{
		Location:      loc,
		CheckTime:     check,
		StatusTime:    status,
		MatchDuration: cfg.MatchDuration,
	}, logger, recorder), nil
}

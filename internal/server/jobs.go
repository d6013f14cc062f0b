package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/logging"
)

type calendarSyncer interface {
	SyncCalendar(ctx context.Context) (matches.Calendar, error)
}

// buildJobs schedules the calendar re-sync. An empty spec disables it and returns nil.
func buildJobs(spec string, loc *time.Location, syncer calendarSyncer, logger *slog.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, func() { syncCalendar(syncer, logger) }); err != nil {
		return nil, fmt.Errorf("calendar sync schedule %q: %w", spec, err)
	}
	return c, nil
}

func syncCalendar(syncer calendarSyncer, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), calendarSyncTimeout)
	defer cancel()

	start := time.Now()
	cal, err := syncer.SyncCalendar(ctx)
	if err != nil {
		logging.Error(logger, "scheduled calendar sync failed", err)
		return
	}
	logging.Info(logger, "scheduled calendar sync complete",
		slog.Int(logging.FieldSeasonID, cal.SeasonID),
		slog.Int(logging.FieldCount, len(cal.Data)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

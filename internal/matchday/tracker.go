package matchday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
	"github.com/preston-bernstein/football-tracker/internal/notify"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

const defaultMatchDuration = 2 * time.Hour

// League is the slice of the league service the match-day loop depends on.
type League interface {
	RefreshMatch(ctx context.Context, id int) (matches.Match, error)
	Match(id int) (matches.Match, error)
	MatchesOn(day time.Time) ([]matches.Match, error)
	NextMatchDate(after time.Time) (time.Time, bool, error)
	SeasonFinished() (bool, error)
}

// Tracker follows one match from the morning refresh to the final score broadcast.
type Tracker struct {
	league   League
	notifier notify.Notifier
	clock    Clock
	loc      *time.Location
	duration time.Duration
	logger   *slog.Logger
}

// NewTracker builds a Tracker. A non-positive duration defaults to two hours.
func NewTracker(league League, notifier notify.Notifier, clock Clock, loc *time.Location, duration time.Duration, logger *slog.Logger) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if duration <= 0 {
		duration = defaultMatchDuration
	}
	return &Tracker{
		league:   league,
		notifier: notifier,
		clock:    clock,
		loc:      loc,
		duration: duration,
		logger:   logger,
	}
}

// Track runs the match lifecycle for the match day containing day and returns the
// metrics outcome. A match the refresh moves to another league-local day is skipped so
// the day's join never outlives the day. Refresh and wait failures end this tracker
// only; notification failures are logged and ignored.
func (t *Tracker) Track(ctx context.Context, id int, day time.Time) (string, error) {
	logger := t.logger
	if logger != nil {
		logger = logger.With(slog.Int(logging.FieldMatchID, id))
	}
	ctx = logging.WithLogger(ctx, logger)

	if _, err := t.league.RefreshMatch(ctx, id); err != nil {
		return t.fail(ctx, logger, "match refresh failed", err)
	}
	m, err := t.league.Match(id)
	if err != nil {
		return t.fail(ctx, logger, "stored match unavailable", err)
	}
	if m.Status.Terminal() || m.Status == matches.StatusPostponed {
		logging.Info(logger, "match not tracked", slog.String(logging.FieldState, string(m.Status)))
		t.notifyAdmin(ctx, logger, skippedText(m))
		return metrics.OutcomeSkipped, nil
	}
	if !timeutil.StartOfDay(m.Date, t.loc).Equal(timeutil.StartOfDay(day, t.loc)) {
		logging.Info(logger, "match moved off the match day", slog.String(logging.FieldKickoff, m.Date.Format(time.RFC3339)))
		t.notifyAdmin(ctx, logger, movedText(m, t.loc))
		return metrics.OutcomeSkipped, nil
	}

	logging.Info(logger, "match tracking started",
		slog.String(logging.FieldKickoff, m.Date.Format(time.RFC3339)),
		slog.Int(logging.FieldRound, m.Round),
	)
	t.notifyAdmin(ctx, logger, scheduledText(m, t.loc))

	if err := t.clock.WaitUntil(ctx, m.Date); err != nil {
		return t.fail(ctx, logger, "wait for kickoff interrupted", err)
	}
	t.notifyAdmin(ctx, logger, startedText(m))

	if err := t.clock.WaitUntil(ctx, m.Date.Add(t.duration)); err != nil {
		return t.fail(ctx, logger, "wait for full time interrupted", err)
	}

	final, err := t.league.RefreshMatch(ctx, id)
	if err != nil {
		return t.fail(ctx, logger, "final refresh failed", err)
	}
	if err := t.notifier.NotifyAll(ctx, resultText(final)); err != nil {
		logging.Error(logger, "result broadcast failed", err)
	}
	logging.Info(logger, "match result stored",
		slog.String("score", final.Score),
		slog.String(logging.FieldState, string(final.Status)),
	)
	return metrics.OutcomeStored, nil
}

func (t *Tracker) fail(ctx context.Context, logger *slog.Logger, msg string, err error) (string, error) {
	if ctx.Err() != nil {
		logging.Info(logger, "match tracking canceled")
		return metrics.OutcomeCanceled, ctx.Err()
	}
	logging.Error(logger, msg, err)
	return metrics.OutcomeFailed, fmt.Errorf("%s: %w", msg, err)
}

func (t *Tracker) notifyAdmin(ctx context.Context, logger *slog.Logger, text string) {
	if err := t.notifier.NotifyAdmin(ctx, text); err != nil {
		logging.Error(logger, "admin notification failed", err)
	}
}

// Package matchday runs the daily match-day loop and the per-match trackers it launches.
package matchday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
	"github.com/preston-bernstein/football-tracker/internal/notify"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

// State is the scheduler's position in the daily cycle.
type State string

const (
	StateIdle     State = "idle"
	StateWaiting  State = "waiting"
	StateMatchDay State = "matchday"
	StateFinished State = "finished"
	StateStopped  State = "stopped"
)

const maxConsecutiveFailures = 3

// Status describes the recent health of the scheduler loop.
type Status struct {
	State               State
	LastCheck           time.Time
	NextCheck           time.Time
	Tracking            []int
	ConsecutiveFailures int
	LastError           string
}

// IsReady reports whether the loop is running (or has completed the season) and is
// not failing repeatedly.
func (s Status) IsReady() bool {
	switch s.State {
	case StateWaiting, StateMatchDay, StateFinished:
		return s.ConsecutiveFailures < maxConsecutiveFailures
	default:
		return false
	}
}

// Config holds the daily timetable.
type Config struct {
	Location      *time.Location
	CheckTime     timeutil.ClockTime
	StatusTime    timeutil.ClockTime
	MatchDuration time.Duration
}

// Scheduler evaluates the calendar once a day and tracks every match of a match day.
type Scheduler struct {
	league   League
	notifier notify.Notifier
	clock    Clock
	cfg      Config
	tracker  *Tracker
	logger   *slog.Logger
	metrics  *metrics.Recorder

	startMu sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	statusMu sync.RWMutex
	status   Status
}

type trackResult struct {
	match   matches.Match
	outcome string
	err     error
}

// New constructs a Scheduler. A nil clock means the system clock.
func New(league League, notifier notify.Notifier, clock Clock, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Scheduler{
		league:   league,
		notifier: notifier,
		clock:    clock,
		cfg:      cfg,
		tracker:  NewTracker(league, notifier, clock, cfg.Location, cfg.MatchDuration, logger),
		logger:   logger,
		metrics:  recorder,
		done:     make(chan struct{}),
		status:   Status{State: StateIdle},
	}
}

// Start runs the loop in the background until the season finishes, ctx is cancelled
// or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.started {
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)

	go func() {
		defer close(s.done)
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Error(s.logger, "scheduler exited", err)
		}
	}()
}

// Stop cancels a started loop and waits for it to exit or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.startMu.Lock()
	started, cancel := s.started, s.cancel
	s.startMu.Unlock()
	if !started {
		return nil
	}
	cancel()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when a started loop has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Run blocks in the daily loop. It returns nil once the season is finished and the
// context error on cancellation. A check time already passed at startup is evaluated
// immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	loc := s.cfg.Location
	now := s.clock.Now()
	check := s.cfg.CheckTime.On(now, loc)
	logging.Info(s.logger, "scheduler started",
		slog.String("check_time", s.cfg.CheckTime.String()),
		slog.String("status_time", s.cfg.StatusTime.String()),
		slog.String("timezone", loc.String()),
	)
	if check.After(now) {
		s.setWaiting(check)
		if err := s.clock.WaitUntil(ctx, check); err != nil {
			return s.stopped(err)
		}
	}

	for {
		finished := s.runDay(ctx)
		if err := ctx.Err(); err != nil {
			return s.stopped(err)
		}
		if finished {
			s.setState(StateFinished)
			logging.Info(s.logger, "season finished, scheduler exiting")
			if err := s.notifier.NotifyAdmin(ctx, seasonFinishedText); err != nil {
				logging.Error(s.logger, "admin notification failed", err)
			}
			return nil
		}
		next := s.cfg.CheckTime.Next(s.clock.Now(), loc)
		s.setWaiting(next)
		if err := s.clock.WaitUntil(ctx, next); err != nil {
			return s.stopped(err)
		}
	}
}

// runDay performs one daily evaluation and reports whether the season is finished.
// Errors are logged and counted; they never end the loop.
func (s *Scheduler) runDay(ctx context.Context) bool {
	start := time.Now()
	day := s.clock.Now()
	s.recordCheck(day)

	todays, err := s.league.MatchesOn(day)
	if err != nil {
		s.cycleFailed(start, "calendar load failed", err)
		return false
	}

	if len(todays) == 0 {
		next, ok, err := s.league.NextMatchDate(day)
		if err != nil {
			logging.Error(s.logger, "next match lookup failed", err)
		} else {
			logging.Info(s.logger, "no matches today", slog.String(logging.FieldDate, timeutil.FormatDate(timeutil.StartOfDay(day, s.cfg.Location))))
			if err := s.notifier.NotifyAdmin(ctx, nextMatchText(next, ok, s.cfg.Location)); err != nil {
				logging.Error(s.logger, "admin notification failed", err)
			}
		}
		return s.seasonFinished(start)
	}

	s.setMatchDay(todays)
	logging.Info(s.logger, "match day", slog.Int(logging.FieldCount, len(todays)))
	if err := s.clock.WaitUntil(ctx, s.cfg.StatusTime.On(day, s.cfg.Location)); err != nil {
		return false
	}

	// Re-read so matches moved onto or off today since the check are respected.
	todays, err = s.league.MatchesOn(day)
	if err != nil {
		s.cycleFailed(start, "calendar reload failed", err)
		return false
	}
	s.setMatchDay(todays)

	results := s.trackAll(ctx, day, todays)
	if ctx.Err() != nil {
		return false
	}
	if err := s.notifier.NotifyAdmin(ctx, summaryText(day, s.cfg.Location, results)); err != nil {
		logging.Error(s.logger, "admin notification failed", err)
	}

	stored, err := s.league.MatchesOn(day)
	if err != nil {
		logging.Error(s.logger, "calendar reload failed", err)
	} else {
		for _, m := range stored {
			logging.Debug(s.logger, "match day result",
				slog.Int(logging.FieldMatchID, m.ID),
				slog.String(logging.FieldState, string(m.Status)),
				slog.String("score", m.Score),
			)
		}
	}
	return s.seasonFinished(start)
}

// trackAll runs one tracker per match and joins them. A failing or panicking tracker
// never cancels its siblings.
func (s *Scheduler) trackAll(ctx context.Context, day time.Time, todays []matches.Match) []trackResult {
	results := make([]trackResult, len(todays))
	var g errgroup.Group
	for i, m := range todays {
		g.Go(func() error {
			results[i] = s.runTracker(ctx, day, m)
			return results[i].err
		})
	}
	if err := g.Wait(); err != nil {
		logging.Warn(s.logger, "match day finished with tracker failures", "error", err)
	}
	return results
}

func (s *Scheduler) runTracker(ctx context.Context, day time.Time, m matches.Match) (res trackResult) {
	start := time.Now()
	res.match = m
	defer func() {
		if r := recover(); r != nil {
			res.outcome = metrics.OutcomeFailed
			res.err = fmt.Errorf("tracker panic: %v", r)
			logging.Error(s.logger, "tracker panicked", res.err, slog.Int(logging.FieldMatchID, m.ID))
		}
		s.metrics.RecordTrackerRun(res.outcome, time.Since(start))
	}()
	res.outcome, res.err = s.tracker.Track(ctx, m.ID, day)
	return res
}

func (s *Scheduler) seasonFinished(start time.Time) bool {
	finished, err := s.league.SeasonFinished()
	if err != nil {
		s.cycleFailed(start, "season status check failed", err)
		return false
	}
	s.metrics.RecordSchedulerCycle(time.Since(start), nil)
	s.recordSuccess()
	return finished
}

func (s *Scheduler) cycleFailed(start time.Time, msg string, err error) {
	logging.Error(s.logger, msg, err)
	s.metrics.RecordSchedulerCycle(time.Since(start), err)
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	s.status.LastError = err.Error()
}

func (s *Scheduler) stopped(err error) error {
	s.setState(StateStopped)
	logging.Info(s.logger, "scheduler stopped")
	return err
}

func (s *Scheduler) recordSuccess() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
}

func (s *Scheduler) recordCheck(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastCheck = at
}

func (s *Scheduler) setWaiting(next time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.State = StateWaiting
	s.status.NextCheck = next
	s.status.Tracking = nil
}

func (s *Scheduler) setMatchDay(todays []matches.Match) {
	ids := make([]int, len(todays))
	for i, m := range todays {
		ids[i] = m.ID
	}
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.State = StateMatchDay
	s.status.Tracking = ids
}

func (s *Scheduler) setState(state State) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.State = state
	s.status.Tracking = nil
}

// Status returns a snapshot of the scheduler's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	out := s.status
	out.Tracking = append([]int(nil), s.status.Tracking...)
	return out
}

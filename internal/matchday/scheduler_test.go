package matchday

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
	"github.com/preston-bernstein/football-tracker/internal/teststubs"
	"github.com/preston-bernstein/football-tracker/internal/testutil"
)

func TestSchedulerTracksTodaysMatchesConcurrently(t *testing.T) {
	k1 := testutil.MustParseRFC3339("2026-10-18T13:00:00Z")
	k2 := testutil.MustParseRFC3339("2026-10-18T15:30:00Z")
	m1 := testutil.SampleMatch(1, 1, k1)
	m2 := testutil.SampleMatch(2, 1, k2)
	gate := newBarrier(2)
	stub := &teststubs.StubProvider{
		Sequence: map[int][]matches.Match{
			1: {m1, testutil.Finished(m1, 2, 1)},
			2: {m2, testutil.Finished(m2, 0, 0)},
		},
		OnFetch: gate.arrive,
	}
	svc := newSeason(t, stub, m1, m2)
	clock := testutil.NewFakeClock(testutil.MustParseRFC3339("2026-10-18T05:00:00Z"))
	notifier := &teststubs.StubNotifier{}
	rec := metrics.NewRecorder()

	s := New(svc, notifier, clock, testConfig(), nil, rec)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("expected season to finish cleanly, got %v", err)
	}

	if gate.TimedOut() {
		t.Fatal("trackers did not run concurrently")
	}
	waits := clock.Waits()
	if !waits[0].Equal(testutil.MustParseRFC3339("2026-10-18T06:00:00Z")) {
		t.Fatalf("expected first wait at check time, got %s", waits[0])
	}
	if !waits[1].Equal(testutil.MustParseRFC3339("2026-10-18T07:00:00Z")) {
		t.Fatalf("expected second wait at status time, got %s", waits[1])
	}

	cal, err := svc.Calendar()
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if cal.Data[0].Score != "2-1" || cal.Data[1].Score != "0-0" {
		t.Fatalf("expected both final scores stored, got %+v", cal.Data)
	}
	if !matches.AllTerminal(cal.Data) {
		t.Fatal("expected every match finished")
	}

	if got := len(notifier.Broadcasts()); got != 2 {
		t.Fatalf("expected 2 result broadcasts, got %d", got)
	}
	admin := notifier.Admin()
	if admin[len(admin)-1] != seasonFinishedText {
		t.Fatalf("expected season finished notice last, got %q", admin[len(admin)-1])
	}
	if admin[len(admin)-2] != "Match day 2026-10-18: 2 tracked, 0 failed" {
		t.Fatalf("unexpected summary %q", admin[len(admin)-2])
	}
	if rec.TrackerRuns(metrics.OutcomeStored) != 2 {
		t.Fatalf("expected 2 stored tracker runs, got %d", rec.TrackerRuns(metrics.OutcomeStored))
	}
	if st := s.Status(); st.State != StateFinished || !st.IsReady() {
		t.Fatalf("unexpected final status %+v", st)
	}
}

func TestSchedulerDoesNotHoldMatchDayForRescheduledMatch(t *testing.T) {
	m1 := testutil.SampleMatch(1, 1, testutil.MustParseRFC3339("2026-10-18T13:00:00Z"))
	m2 := testutil.SampleMatch(2, 1, testutil.MustParseRFC3339("2026-10-19T13:00:00Z"))
	moved := m1
	moved.Date = testutil.MustParseRFC3339("2026-10-25T13:00:00Z")
	stub := &teststubs.StubProvider{
		Sequence: map[int][]matches.Match{
			1: {moved, moved, testutil.Finished(moved, 3, 0)},
			2: {m2, testutil.Finished(m2, 1, 0)},
		},
	}
	svc := newSeason(t, stub, m1, m2)
	clock := testutil.NewFakeClock(testutil.MustParseRFC3339("2026-10-18T05:00:00Z"))
	notifier := &teststubs.StubNotifier{}
	rec := metrics.NewRecorder()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := New(svc, notifier, clock, testConfig(), nil, rec).Run(ctx); err != nil {
		t.Fatalf("expected season to finish, got %v", err)
	}

	waits := clock.Waits()
	m2Kickoff, movedKickoff := -1, -1
	for i, w := range waits {
		switch {
		case w.Equal(m2.Date):
			m2Kickoff = i
		case w.Equal(moved.Date):
			movedKickoff = i
		}
	}
	if m2Kickoff < 0 || movedKickoff < 0 || m2Kickoff > movedKickoff {
		t.Fatalf("expected the 19th tracked before the rescheduled kickoff, waits %v", waits)
	}

	second, err := svc.Match(2)
	if err != nil || second.Status != matches.StatusFinished || second.Score != "1-0" {
		t.Fatalf("expected match on the 19th tracked, got %+v err=%v", second, err)
	}
	first, err := svc.Match(1)
	if err != nil || first.Status != matches.StatusFinished || first.Score != "3-0" {
		t.Fatalf("expected rescheduled match tracked on its new day, got %+v err=%v", first, err)
	}
	if rec.TrackerRuns(metrics.OutcomeSkipped) != 1 || rec.TrackerRuns(metrics.OutcomeStored) != 2 {
		t.Fatalf("unexpected tracker outcomes skipped=%d stored=%d",
			rec.TrackerRuns(metrics.OutcomeSkipped), rec.TrackerRuns(metrics.OutcomeStored))
	}
	if !containsPrefix(notifier.Admin(), "Match Home — Away moved to 25.10.2026 16:00") {
		t.Fatalf("expected admin notice for the moved match, got %q", notifier.Admin())
	}
}

func containsPrefix(msgs []string, prefix string) bool {
	for _, m := range msgs {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

func TestSchedulerIsolatesTrackerFailures(t *testing.T) {
	kickoff := testutil.MustParseRFC3339("2026-10-18T13:00:00Z")
	ok := testutil.SampleMatch(1, 1, kickoff)
	missing := testutil.SampleMatch(2, 1, kickoff)
	exploding := testutil.SampleMatch(3, 1, kickoff)
	stub := &teststubs.StubProvider{
		Sequence: map[int][]matches.Match{1: {ok, testutil.Finished(ok, 1, 1)}},
	}
	svc := newSeason(t, stub, ok, missing, exploding)
	clock := testutil.NewFakeClock(testutil.MustParseRFC3339("2026-10-18T06:00:00Z"))
	notifier := &teststubs.StubNotifier{}
	rec := metrics.NewRecorder()

	s := New(panicLeague{Service: svc, id: 3}, notifier, clock, testConfig(), nil, rec)
	if finished := s.runDay(context.Background()); finished {
		t.Fatal("season must not be finished with unplayed matches")
	}

	stored, _ := svc.Match(1)
	if stored.Status != matches.StatusFinished {
		t.Fatalf("healthy tracker should complete, got %+v", stored)
	}
	var summary string
	for _, msg := range notifier.Admin() {
		if strings.HasPrefix(msg, "Match day") {
			summary = msg
		}
	}
	if !strings.HasPrefix(summary, "Match day 2026-10-18: 3 tracked, 2 failed") {
		t.Fatalf("unexpected summary %q", summary)
	}
	if !strings.Contains(summary, "tracker panic: refresh exploded") {
		t.Fatalf("expected panic reported in summary, got %q", summary)
	}
	if rec.TrackerRuns(metrics.OutcomeFailed) != 2 || rec.TrackerRuns(metrics.OutcomeStored) != 1 {
		t.Fatalf("unexpected tracker metrics failed=%d stored=%d", rec.TrackerRuns(metrics.OutcomeFailed), rec.TrackerRuns(metrics.OutcomeStored))
	}
	if st := s.Status(); st.ConsecutiveFailures != 0 {
		t.Fatalf("tracker failures must not fail the cycle, got %+v", st)
	}
}

func TestSchedulerWaitingDayAnnouncesNextMatch(t *testing.T) {
	m := testutil.SampleMatch(1, 1, testutil.MustParseRFC3339("2026-10-20T13:00:00Z"))
	svc := newSeason(t, &teststubs.StubProvider{}, m)
	clock := testutil.NewFakeClock(testutil.MustParseRFC3339("2026-10-18T06:00:00Z"))
	notifier := &teststubs.StubNotifier{}
	rec := metrics.NewRecorder()

	s := New(svc, notifier, clock, testConfig(), nil, rec)
	if finished := s.runDay(context.Background()); finished {
		t.Fatal("season with a scheduled match is not finished")
	}
	admin := notifier.Admin()
	if len(admin) != 1 || admin[0] != "No matches today. Next match: 20.10.2026 16:00" {
		t.Fatalf("unexpected admin messages %q", admin)
	}
	if total, failed := rec.SchedulerCycles(); total != 1 || failed != 0 {
		t.Fatalf("expected one healthy cycle, got total=%d failed=%d", total, failed)
	}
	if st := s.Status(); !st.LastCheck.Equal(clock.Now()) {
		t.Fatalf("expected last check recorded, got %+v", st)
	}
}

func TestSchedulerEvaluatesImmediatelyWhenCheckTimePassed(t *testing.T) {
	svc := newSeason(t, &teststubs.StubProvider{})
	clock := testutil.NewFakeClock(testutil.MustParseRFC3339("2026-10-18T09:00:00Z"))
	notifier := &teststubs.StubNotifier{}

	s := New(svc, notifier, clock, testConfig(), nil, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if waits := clock.Waits(); len(waits) != 0 {
		t.Fatalf("expected no wait before evaluating, got %v", waits)
	}
	admin := notifier.Admin()
	if len(admin) != 2 || admin[0] != "No matches today. No upcoming matches scheduled." || admin[1] != seasonFinishedText {
		t.Fatalf("unexpected admin messages %q", admin)
	}
}

func TestSchedulerWaitsForCheckTime(t *testing.T) {
	svc := newSeason(t, &teststubs.StubProvider{})
	clock := testutil.NewFakeClock(testutil.MustParseRFC3339("2026-10-18T05:00:00Z"))

	s := New(svc, &teststubs.StubNotifier{}, clock, testConfig(), nil, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	waits := clock.Waits()
	if len(waits) != 1 || !waits[0].Equal(testutil.MustParseRFC3339("2026-10-18T06:00:00Z")) {
		t.Fatalf("expected a single wait until 09:00 local, got %v", waits)
	}
}

func TestSchedulerRecordsCalendarFailures(t *testing.T) {
	svc := newSeason(t, &teststubs.StubProvider{})
	s := New(failingLeague{svc}, &teststubs.StubNotifier{}, testutil.NewFakeClock(time.Now()), testConfig(), nil, metrics.NewRecorder())

	if finished := s.runDay(context.Background()); finished {
		t.Fatal("failed cycle must not finish the season")
	}
	st := s.Status()
	if st.ConsecutiveFailures != 1 || st.LastError == "" {
		t.Fatalf("expected failure recorded, got %+v", st)
	}
	if total, failed := s.metrics.SchedulerCycles(); total != 1 || failed != 1 {
		t.Fatalf("expected failed cycle metric, got total=%d failed=%d", total, failed)
	}
}

func TestSchedulerStartStop(t *testing.T) {
	svc := newSeason(t, &teststubs.StubProvider{}, testutil.SampleMatch(1, 1, time.Now().Add(30*24*time.Hour)))
	s := New(svc, &teststubs.StubNotifier{}, nil, testConfig(), nil, nil)

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop before start: %v", err)
	}
	s.Start(context.Background())
	s.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	select {
	case <-s.Done():
	default:
		t.Fatal("expected loop exited")
	}
	if st := s.Status(); st.State != StateStopped || st.IsReady() {
		t.Fatalf("expected stopped status, got %+v", st)
	}
}

func TestStatusIsReady(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{Status{State: StateIdle}, false},
		{Status{State: StateWaiting}, true},
		{Status{State: StateMatchDay, ConsecutiveFailures: 2}, true},
		{Status{State: StateWaiting, ConsecutiveFailures: 3}, false},
		{Status{State: StateFinished}, true},
		{Status{State: StateStopped}, false},
	}
	for _, tc := range cases {
		if got := tc.status.IsReady(); got != tc.want {
			t.Fatalf("IsReady(%+v) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

type failingLeague struct {
	League
}

func (failingLeague) MatchesOn(time.Time) ([]matches.Match, error) {
	return nil, context.DeadlineExceeded
}

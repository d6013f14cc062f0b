package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("elenasport", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("elenasport", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("elenasport"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("elenasport"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("elenasport")
	if snap.Calls != 2 || snap.Errors != 1 || snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("elenasport", 5*time.Second)
	rec.RecordRateLimit("elenasport", 0)

	if got := rec.RateLimitHits("elenasport"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("elenasport"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksTrackerOutcomes(t *testing.T) {
	rec := NewRecorder()
	rec.RecordTrackerRun(OutcomeStored, time.Hour)
	rec.RecordTrackerRun(OutcomeStored, time.Hour)
	rec.RecordTrackerRun(OutcomeFailed, time.Minute)

	if got := rec.TrackerRuns(OutcomeStored); got != 2 {
		t.Fatalf("expected 2 stored runs, got %d", got)
	}
	if got := rec.TrackerRuns(OutcomeFailed); got != 1 {
		t.Fatalf("expected 1 failed run, got %d", got)
	}
	if got := rec.TrackerRuns(OutcomeSkipped); got != 0 {
		t.Fatalf("expected no skipped runs, got %d", got)
	}
}

func TestRecorderTracksNotificationsAndCycles(t *testing.T) {
	rec := NewRecorder()
	rec.RecordNotification("telegram", nil)
	rec.RecordNotification("telegram", errors.New("blocked"))
	rec.RecordSchedulerCycle(time.Second, nil)
	rec.RecordSchedulerCycle(time.Second, errors.New("calendar missing"))

	sent, failed := rec.Notifications("telegram")
	if sent != 1 || failed != 1 {
		t.Fatalf("expected 1 sent and 1 failed, got %d/%d", sent, failed)
	}
	total, fails := rec.SchedulerCycles()
	if total != 2 || fails != 1 {
		t.Fatalf("expected 2 cycles with 1 failure, got %d/%d", total, fails)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("x", 0, nil)
	rec.RecordTrackerRun(OutcomeStored, 0)
	rec.RecordNotification("log", nil)
	rec.RecordSchedulerCycle(0, nil)
	if rec.ProviderCalls("x") != 0 || rec.TrackerRuns(OutcomeStored) != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}

package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    int
}

func (f *flakeyProvider) FetchMatch(ctx context.Context, id int) (matches.Match, error) {
	f.calls++
	if f.calls <= f.failures {
		return matches.Match{}, f.failure()
	}
	return matches.Match{ID: id}, nil
}

func (f *flakeyProvider) FetchSeasonFixtures(ctx context.Context, seasonID int) ([]matches.Match, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.failure()
	}
	return []matches.Match{{ID: 1, SeasonID: seasonID}}, nil
}

func (f *flakeyProvider) failure() error {
	if f.err != nil {
		return f.err
	}
	return errors.New("boom")
}

func newTestRetrying(inner MatchProvider, rec *metrics.Recorder, maxRetries int) *RetryingProvider {
	rp := NewRetryingProvider(inner, slog.Default(), rec, "flakey", maxRetries, time.Millisecond)
	rp.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return rp
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rec := metrics.NewRecorder()
	rp := newTestRetrying(fp, rec, 3)

	m, err := rp.FetchMatch(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if m.ID != 7 {
		t.Fatalf("unexpected match %+v", m)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
	if rec.ProviderCalls("flakey") != 3 || rec.ProviderErrors("flakey") != 2 {
		t.Fatalf("unexpected metrics %+v", rec.Snapshot("flakey"))
	}
}

func TestRetryingProviderStopsAfterMaxRetries(t *testing.T) {
	fp := &flakeyProvider{failures: 10}
	rp := newTestRetrying(fp, metrics.NewRecorder(), 2)

	_, err := rp.FetchSeasonFixtures(context.Background(), 4208)
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 3 {
		t.Fatalf("expected initial attempt plus 2 retries, got %d", fp.calls)
	}
}

func TestRetryingProviderDoesNotRetryNotFound(t *testing.T) {
	fp := &flakeyProvider{failures: 10, err: fmt.Errorf("fixture 9: %w", ErrNotFound)}
	rp := newTestRetrying(fp, metrics.NewRecorder(), 3)

	_, err := rp.FetchMatch(context.Background(), 9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchMatch(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected no retry after cancel, got %d calls", fp.calls)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{Provider: "flakey", StatusCode: 429}}
	rec := metrics.NewRecorder()
	rp := newTestRetrying(fp, rec, 2)

	if _, err := rp.FetchMatch(context.Background(), 1); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if got := rec.RateLimitHits("flakey"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ProviderCalls("flakey"); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
}

func TestRetryAfterBackOffOverridesOnce(t *testing.T) {
	b := &retryAfterBackOff{BackOff: backoff.NewConstantBackOff(50 * time.Millisecond)}
	b.override = 3 * time.Second

	if got := b.NextBackOff(); got != 3*time.Second {
		t.Fatalf("expected retry-after delay, got %s", got)
	}
	if got := b.NextBackOff(); got != 50*time.Millisecond {
		t.Fatalf("expected base delay after override consumed, got %s", got)
	}
}

func TestRetryAfterBackOffHonoursStop(t *testing.T) {
	b := &retryAfterBackOff{BackOff: &backoff.StopBackOff{}, override: time.Second}
	if got := b.NextBackOff(); got != backoff.Stop {
		t.Fatalf("expected stop to win over retry-after, got %s", got)
	}
}

func TestRetryingProviderNilInner(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "none", 0, 0)
	if _, err := rp.FetchMatch(context.Background(), 1); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if rp.maxRetries != defaultMaxRetries {
		t.Fatalf("expected default retries, got %d", rp.maxRetries)
	}
}

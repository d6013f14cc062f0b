package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type notifyStats struct {
	sent   int
	failed int
}

// Recorder captures in-memory counters about provider calls, match trackers,
// notifications and scheduler cycles, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu         sync.Mutex
	stats      map[string]*providerStats
	trackers   map[string]int
	notify     map[string]*notifyStats
	cycles     int
	cycleFails int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:    make(map[string]*providerStats),
		trackers: make(map[string]int),
		notify:   make(map[string]*notifyStats),
		otel:     otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// Snapshot is a copy of the stats recorded for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordTrackerRun counts a finished match tracker by outcome.
func (r *Recorder) RecordTrackerRun(outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.trackers[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTracker(outcome, duration)
	}
}

// TrackerRuns returns how many trackers ended with the given outcome.
func (r *Recorder) TrackerRuns(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trackers[outcome]
}

// RecordNotification counts a delivery attempt on a notification channel.
func (r *Recorder) RecordNotification(channel string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	s, ok := r.notify[channel]
	if !ok {
		s = &notifyStats{}
		r.notify[channel] = s
	}
	if err != nil {
		s.failed++
	} else {
		s.sent++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordNotification(channel, err)
	}
}

// Notifications returns sent and failed counts for a channel.
func (r *Recorder) Notifications(channel string) (sent, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.notify[channel]; ok {
		return s.sent, s.failed
	}
	return 0, 0
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordSchedulerCycle tracks daily scheduler evaluations.
func (r *Recorder) RecordSchedulerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cycles++
	if err != nil {
		r.cycleFails++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordScheduler(duration, err)
	}
}

// SchedulerCycles returns total and failed scheduler cycles.
func (r *Recorder) SchedulerCycles() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles, r.cycleFails
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

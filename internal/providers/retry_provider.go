package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 30 * time.Second
)

// RetryPolicy runs an upstream operation with bounded exponential backoff and records
// every attempt. ErrNotFound and canceled contexts are never retried. A nil policy runs
// the operation once.
type RetryPolicy struct {
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxRetries   int
	newBackOff   func() backoff.BackOff
}

// NewRetryPolicy builds a policy. Non-positive maxRetries or initial fall back to defaults.
func NewRetryPolicy(logger *slog.Logger, rec *metrics.Recorder, providerName string, maxRetries int, initial time.Duration) *RetryPolicy {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	return &RetryPolicy{
		logger:       logger,
		metrics:      rec,
		providerName: providerName,
		maxRetries:   maxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = defaultMaxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// RetryingProvider wraps a MatchProvider so each call runs under a RetryPolicy.
type RetryingProvider struct {
	*RetryPolicy
	inner MatchProvider
}

// NewRetryingProvider wraps inner with retries. Non-positive maxRetries or initial fall back to defaults.
func NewRetryingProvider(inner MatchProvider, logger *slog.Logger, rec *metrics.Recorder, providerName string, maxRetries int, initial time.Duration) *RetryingProvider {
	return &RetryingProvider{
		RetryPolicy: NewRetryPolicy(logger, rec, providerName, maxRetries, initial),
		inner:       inner,
	}
}

func (r *RetryingProvider) FetchMatch(ctx context.Context, id int) (matches.Match, error) {
	return retry(ctx, r, "fetch match", func(ctx context.Context) (matches.Match, error) {
		return r.inner.FetchMatch(ctx, id)
	})
}

func (r *RetryingProvider) FetchSeasonFixtures(ctx context.Context, seasonID int) ([]matches.Match, error) {
	return retry(ctx, r, "fetch season fixtures", func(ctx context.Context) ([]matches.Match, error) {
		return r.inner.FetchSeasonFixtures(ctx, seasonID)
	})
}

// CurrentSeasonID delegates to the wrapped provider when it can resolve seasons.
func (r *RetryingProvider) CurrentSeasonID(ctx context.Context, leagueID int) (int, error) {
	resolver, ok := r.inner.(SeasonResolver)
	if !ok {
		return 0, ErrProviderUnavailable
	}
	return retry(ctx, r, "resolve season", func(ctx context.Context) (int, error) {
		return resolver.CurrentSeasonID(ctx, leagueID)
	})
}

func retry[T any](ctx context.Context, r *RetryingProvider, op string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	if r == nil || r.inner == nil {
		return result, ErrProviderUnavailable
	}
	err := r.Do(ctx, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err == nil {
			result = v
		}
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Do runs fn until it succeeds, fails permanently, or retries run out.
func (p *RetryPolicy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	if p == nil {
		return fn(ctx)
	}

	hint := &retryAfterBackOff{BackOff: backoff.WithMaxRetries(p.newBackOff(), uint64(p.maxRetries))}
	attempt := 0

	operation := func() error {
		attempt++
		start := time.Now()
		err := fn(ctx)
		p.metrics.RecordProviderAttempt(p.providerName, time.Since(start), err)
		if err == nil {
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			p.metrics.RecordRateLimit(p.providerName, rl.RetryAfter)
			hint.override = rl.RetryAfter
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(errors.Join(ctxErr, err))
		}
		if errors.Is(err, ErrNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		p.log(ctx, slog.LevelWarn, "provider retry", "op", op, "attempt", attempt, "max_retries", p.maxRetries, "delay", delay, "err", err)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(hint, ctx), notify)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrNotFound) {
			level = slog.LevelInfo
		}
		p.log(ctx, level, "provider fetch failed", "op", op, "attempts", attempt, "err", err)
	}
	return err
}

func (p *RetryPolicy) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, p.logger), level, p.providerName, msg, args...)
}

// retryAfterBackOff replaces the next computed delay with an upstream Retry-After hint.
type retryAfterBackOff struct {
	backoff.BackOff
	override time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.override > 0 {
		next = b.override
		b.override = 0
	}
	return next
}

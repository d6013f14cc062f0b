package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/logging"
)

const rateLimitedName = "rate-limited"

// RateLimitedProvider wraps a MatchProvider and takes one Limiter slot per call.
// It suits providers that issue a single upstream request per call; paginating
// clients pace each request with the Limiter themselves.
type RateLimitedProvider struct {
	*Limiter
	next   MatchProvider
	logger *slog.Logger
}

// NewRateLimitedProvider returns a provider that limits calls to the given interval.
func NewRateLimitedProvider(next MatchProvider, interval time.Duration, logger *slog.Logger) *RateLimitedProvider {
	return NewPacedProvider(next, NewLimiter(interval), logger)
}

// NewPacedProvider wraps next with a shared limiter.
func NewPacedProvider(next MatchProvider, limiter *Limiter, logger *slog.Logger) *RateLimitedProvider {
	return &RateLimitedProvider{Limiter: limiter, next: next, logger: logger}
}

func (p *RateLimitedProvider) FetchMatch(ctx context.Context, id int) (matches.Match, error) {
	if err := p.wait(ctx, "fetch match", slog.Int(logging.FieldMatchID, id)); err != nil {
		return matches.Match{}, err
	}
	return p.next.FetchMatch(ctx, id)
}

func (p *RateLimitedProvider) FetchSeasonFixtures(ctx context.Context, seasonID int) ([]matches.Match, error) {
	if err := p.wait(ctx, "fetch season fixtures", slog.Int(logging.FieldSeasonID, seasonID)); err != nil {
		return nil, err
	}
	return p.next.FetchSeasonFixtures(ctx, seasonID)
}

// CurrentSeasonID delegates to the wrapped provider when it can resolve seasons.
func (p *RateLimitedProvider) CurrentSeasonID(ctx context.Context, leagueID int) (int, error) {
	resolver, ok := p.next.(SeasonResolver)
	if !ok {
		return 0, ErrProviderUnavailable
	}
	if err := p.wait(ctx, "resolve season"); err != nil {
		return 0, err
	}
	return resolver.CurrentSeasonID(ctx, leagueID)
}

// Close stops the limiter's ticker.
func (p *RateLimitedProvider) Close() {
	if p != nil {
		p.Limiter.Close()
	}
}

func (p *RateLimitedProvider) wait(ctx context.Context, op string, args ...any) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		}
		return ErrProviderUnavailable
	}
	if err := p.Limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", args...)
		return err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited "+op, args...)
	return nil
}

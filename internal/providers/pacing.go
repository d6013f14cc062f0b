package providers

import (
	"context"
	"time"
)

// Pacer spaces outbound upstream requests.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Limiter releases one request per interval. Share one Limiter across every request
// path of an upstream so paginated fetches are paced page by page.
type Limiter struct {
	interval time.Duration
	ticker   *time.Ticker
}

// NewLimiter returns a Limiter for interval. A non-positive interval means one minute.
func NewLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Limiter{interval: interval, ticker: time.NewTicker(interval)}
}

// Wait blocks until the next slot or until ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ticker.C:
		return nil
	}
}

// Interval reports the spacing between requests.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Close stops the underlying ticker.
func (l *Limiter) Close() {
	if l != nil && l.ticker != nil {
		l.ticker.Stop()
	}
}

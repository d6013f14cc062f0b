package matchday

import (
	"context"
	"time"
)

// Clock supplies the current instant and absolute-time waits.
type Clock interface {
	Now() time.Time
	WaitUntil(ctx context.Context, t time.Time) error
}

// SystemClock waits on a single timer per call.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// WaitUntil blocks until t or until ctx is done. Instants in the past return at once.
func (SystemClock) WaitUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/football-tracker/internal/metrics"
)

// NewRecorderWithShutdown returns a recorder, a shutdown func standing in for the
// telemetry exporter, and a counter of shutdown calls.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error, *atomic.Int32) {
	var calls atomic.Int32
	return metrics.NewRecorder(), func(context.Context) error {
		calls.Add(1)
		return nil
	}, &calls
}

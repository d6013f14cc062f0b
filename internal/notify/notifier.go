// Package notify delivers operational messages to the admin chat and match results
// to every subscriber.
package notify

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
)

// Notifier sends text to the admin or to all subscribers.
type Notifier interface {
	NotifyAdmin(ctx context.Context, text string) error
	NotifyAll(ctx context.Context, text string) error
}

// Subscribers is the broadcast audience.
type Subscribers interface {
	List() ([]int64, error)
	Add(chatID int64) (bool, error)
	Remove(chatID int64) (bool, error)
}

const channelLog = "log"

// LogNotifier writes every message to the logger. It is used when no bot token is configured.
type LogNotifier struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewLogNotifier returns a notifier backed by logger.
func NewLogNotifier(logger *slog.Logger, rec *metrics.Recorder) *LogNotifier {
	return &LogNotifier{logger: logger, metrics: rec}
}

func (n *LogNotifier) NotifyAdmin(ctx context.Context, text string) error {
	logging.Info(logging.FromContext(ctx, n.logger), "admin notification", slog.String("text", text))
	n.metrics.RecordNotification(channelLog, nil)
	return nil
}

func (n *LogNotifier) NotifyAll(ctx context.Context, text string) error {
	logging.Info(logging.FromContext(ctx, n.logger), "broadcast notification", slog.String("text", text))
	n.metrics.RecordNotification(channelLog, nil)
	return nil
}

package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/config"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
	"github.com/preston-bernstein/football-tracker/internal/notify"
)

// commandListener serves chat commands until ctx is done.
type commandListener interface {
	Listen(ctx context.Context, next notify.NextMatchFunc, loc *time.Location)
}

var newTelegram = func(cfg notify.TelegramConfig) (*notify.Telegram, error) {
	return notify.NewTelegram(cfg)
}

// buildNotifier selects Telegram when a token is configured and the log notifier otherwise.
// The listener is nil unless Telegram is in use.
func buildNotifier(cfg config.TelegramConfig, subscribers notify.Subscribers, logger *slog.Logger, recorder *metrics.Recorder) (notify.Notifier, commandListener) {
	if !cfg.Enabled() {
		logging.Info(logger, "telegram token not set, notifications go to the log")
		return notify.NewLogNotifier(logger, recorder), nil
	}
	bot, err := newTelegram(notify.TelegramConfig{
		Token:        cfg.Token,
		AdminChatID:  cfg.AdminChatID,
		SendInterval: cfg.SendInterval,
		Subscribers:  subscribers,
		Logger:       logger,
		Metrics:      recorder,
	})
	if err != nil {
		logging.Error(logger, "telegram setup failed, notifications go to the log", err)
		return notify.NewLogNotifier(logger, recorder), nil
	}
	if cfg.AdminChatID == 0 {
		logging.Warn(logger, "telegram admin chat not set, operational messages will be dropped")
	}
	return bot, bot
}

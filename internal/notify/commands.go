package notify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

// NextMatchFunc reports the next scheduled kickoff, if any.
type NextMatchFunc func(ctx context.Context) (time.Time, bool, error)

const helpText = `Commands:
/start - subscribe to match results
/stop - unsubscribe
/next - next scheduled match
/help - this message`

// Listen serves bot commands until ctx is done.
func (t *Telegram) Listen(ctx context.Context, next NextMatchFunc, loc *time.Location) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = defaultUpdatesTimeout
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}
			t.handle(ctx, update.Message, next, loc)
		}
	}
}

func (t *Telegram) handle(ctx context.Context, msg *tgbotapi.Message, next NextMatchFunc, loc *time.Location) {
	if !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID
	logger := t.logger
	if logger != nil {
		logger = logger.With(slog.Int64(logging.FieldChatID, chatID), slog.String("command", msg.Command()))
	}

	var reply string
	switch strings.ToLower(msg.Command()) {
	case "start":
		reply = t.subscribe(logger, chatID)
	case "stop":
		reply = t.unsubscribe(logger, chatID)
	case "help":
		reply = helpText
	case "next":
		reply = nextMatchReply(ctx, logger, next, loc)
	default:
		reply = "Unknown command. Use /help to see available commands."
	}

	if err := t.send(ctx, chatID, reply); err != nil {
		logging.Warn(logger, "command reply failed", "err", err)
	}
}

func (t *Telegram) subscribe(logger *slog.Logger, chatID int64) string {
	if t.subscribers == nil {
		return "Subscriptions are disabled."
	}
	added, err := t.subscribers.Add(chatID)
	if err != nil {
		logging.Error(logger, "subscribe failed", err)
		return "Could not subscribe right now, try again later."
	}
	if !added {
		return "You are already subscribed."
	}
	logging.Info(logger, "chat subscribed")
	return "Subscribed. You will receive final scores of every match."
}

func (t *Telegram) unsubscribe(logger *slog.Logger, chatID int64) string {
	if t.subscribers == nil {
		return "Subscriptions are disabled."
	}
	removed, err := t.subscribers.Remove(chatID)
	if err != nil {
		logging.Error(logger, "unsubscribe failed", err)
		return "Could not unsubscribe right now, try again later."
	}
	if !removed {
		return "You are not subscribed."
	}
	logging.Info(logger, "chat unsubscribed")
	return "Unsubscribed."
}

func nextMatchReply(ctx context.Context, logger *slog.Logger, next NextMatchFunc, loc *time.Location) string {
	if next == nil {
		return "No upcoming matches scheduled."
	}
	at, ok, err := next(ctx)
	if err != nil {
		logging.Error(logger, "next match lookup failed", err)
		return "Schedule is unavailable right now."
	}
	if !ok {
		return "No upcoming matches scheduled."
	}
	return "Next match: " + timeutil.FormatDisplay(at, loc)
}

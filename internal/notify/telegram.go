package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
)

const (
	channelTelegram       = "telegram"
	defaultSendInterval   = 100 * time.Millisecond
	defaultUpdatesTimeout = 60
)

// ErrNoAdminChat is returned by NotifyAdmin when no admin chat id is configured.
var ErrNoAdminChat = errors.New("telegram admin chat not configured")

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TelegramConfig wires a Telegram notifier.
type TelegramConfig struct {
	Token        string
	AdminChatID  int64
	SendInterval time.Duration
	Subscribers  Subscribers
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
}

// Telegram sends messages through a bot and serves the subscription commands.
// Sends are paced by a minimum interval across all chats.
type Telegram struct {
	bot         botAPI
	adminChatID int64
	interval    time.Duration
	subscribers Subscribers
	logger      *slog.Logger
	metrics     *metrics.Recorder

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegram authorizes the bot token and returns a notifier.
func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = false
	logging.Info(cfg.Logger, "telegram bot authorized", slog.String("account", bot.Self.UserName))
	return newTelegram(bot, cfg), nil
}

func newTelegram(bot botAPI, cfg TelegramConfig) *Telegram {
	interval := cfg.SendInterval
	if interval <= 0 {
		interval = defaultSendInterval
	}
	return &Telegram{
		bot:         bot,
		adminChatID: cfg.AdminChatID,
		interval:    interval,
		subscribers: cfg.Subscribers,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}
}

// NotifyAdmin sends text to the admin chat.
func (t *Telegram) NotifyAdmin(ctx context.Context, text string) error {
	if t.adminChatID == 0 {
		return ErrNoAdminChat
	}
	return t.send(ctx, t.adminChatID, text)
}

// NotifyAll sends text to every subscriber. A failed chat does not stop the rest;
// all failures are returned joined.
func (t *Telegram) NotifyAll(ctx context.Context, text string) error {
	if t.subscribers == nil {
		return nil
	}
	ids, err := t.subscribers.List()
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}
	if len(ids) == 0 {
		logging.Info(t.logger, "broadcast skipped, no subscribers")
		return nil
	}

	var errs []error
	for _, id := range ids {
		if err := t.send(ctx, id, text); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, fmt.Errorf("chat %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (t *Telegram) send(ctx context.Context, chatID int64, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if wait := time.Until(t.lastSend.Add(t.interval)); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	_, err := t.bot.Send(tgbotapi.NewMessage(chatID, text))
	t.lastSend = time.Now()
	t.metrics.RecordNotification(channelTelegram, err)
	if err != nil {
		logging.Error(t.logger, "telegram send failed", err, slog.Int64(logging.FieldChatID, chatID))
		return err
	}
	return nil
}

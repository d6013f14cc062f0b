package config

// TelegramConfig controls the Telegram notifier. An empty token selects the log notifier.
type TelegramConfig struct {
	Token        string
	AdminChatID  int64
	SendInterval Duration
}

// Enabled reports whether a bot token was configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

func loadTelegram() TelegramConfig {
	return TelegramConfig{
		Token:        envOrDefault(envTelegramToken, ""),
		AdminChatID:  int64EnvOrDefault(envTelegramAdmin, 0),
		SendInterval: durationEnvOrDefault(envTelegramPacing, defaultTelegramPacing),
	}
}

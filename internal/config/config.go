package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the tracker.
type Config struct {
	Port       string
	Provider   string
	AdminToken string
	Log        LogConfig
	Storage    StorageConfig
	ElenaSport ElenaSportConfig
	League     LeagueConfig
	Schedule   ScheduleConfig
	Telegram   TelegramConfig
	Metrics    MetricsConfig
}

// LogConfig controls logger level and format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file (or ENV_FILE) is applied first when present; real environment
// variables always win over file values.
func Load() Config {
	_ = godotenv.Load(envOrDefault(envEnvFile, defaultEnvFile))

	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Provider:   envOrDefault(envProvider, defaultProvider),
		AdminToken: envOrDefault(envAdminToken, ""),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Storage:    loadStorage(),
		ElenaSport: loadElenaSport(),
		League:     loadLeague(),
		Schedule:   loadSchedule(),
		Telegram:   loadTelegram(),
		Metrics:    loadMetrics(),
	}
}

package config

import "time"

const (
	envPort          = "PORT"
	envProvider      = "PROVIDER"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken    = "ADMIN_TOKEN"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envEnvFile       = "ENV_FILE"
	envDataDir       = "DATA_DIR"
	envTeamNamesFile = "TEAM_NAMES_FILE"

	envElenaBaseURL  = "ELENASPORT_BASE_URL"
	envElenaAPIKey   = "ELENASPORT_API_KEY"
	envElenaHost     = "ELENASPORT_HOST"
	envElenaMaxPages = "ELENASPORT_MAX_PAGES"
	envRateInterval  = "PROVIDER_RATE_INTERVAL"
	envMaxRetries    = "PROVIDER_MAX_RETRIES"

	envLeagueCountry   = "LEAGUE_COUNTRY"
	envLeagueName      = "LEAGUE_NAME"
	envLeagueCountryID = "LEAGUE_COUNTRY_ID"
	envLeagueID        = "LEAGUE_ID"

	envTimezone       = "SCHEDULE_TIMEZONE"
	envCheckTime      = "MATCHDAY_CHECK_TIME"
	envStatusTime     = "STATUS_UPDATE_TIME"
	envMatchDuration  = "MATCH_DURATION"
	envCalendarCron   = "CALENDAR_SYNC_CRON"
	envSchedulerOn    = "SCHEDULER_ENABLED"
	envTelegramToken  = "TELEGRAM_TOKEN"
	envTelegramAdmin  = "TELEGRAM_ADMIN_CHAT_ID"
	envTelegramPacing = "TELEGRAM_SEND_INTERVAL"

	defaultPort      = "4000"
	defaultProvider  = "fixture"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultEnvFile   = ".env"
	defaultDataDir   = "data"

	defaultMetricsPort = "9090"
	defaultServiceName = "football-tracker"

	defaultElenaBaseURL  = "https://elenasport-io1.p.rapidapi.com"
	defaultElenaHost     = "elenasport-io1.p.rapidapi.com"
	defaultElenaMaxPages = 20
	// The free RapidAPI tier allows roughly ten requests per minute.
	defaultRateInterval = 6 * Duration(time.Second)
	defaultMaxRetries   = 3

	defaultLeagueCountry   = "Russia"
	defaultLeagueName      = "Premier League"
	defaultLeagueCountryID = 71
	defaultLeagueID        = 422

	defaultTimezone      = "Europe/Moscow"
	defaultCheckTime     = "09:00"
	defaultStatusTime    = "10:00"
	defaultMatchDuration = 2 * Duration(time.Hour)
	defaultCalendarCron  = "0 5 * * *"
	// Telegram allows about 30 messages per second across chats; stay well below it.
	defaultTelegramPacing = 100 * Duration(time.Millisecond)
)

package config

// ElenaSportConfig controls how we talk to the ElenaSport API on RapidAPI.
type ElenaSportConfig struct {
	BaseURL      string
	APIKey       string
	Host         string
	MaxPages     int
	RateInterval Duration
	MaxRetries   int
}

func loadElenaSport() ElenaSportConfig {
	return ElenaSportConfig{
		BaseURL:      envOrDefault(envElenaBaseURL, defaultElenaBaseURL),
		APIKey:       envOrDefault(envElenaAPIKey, ""),
		Host:         envOrDefault(envElenaHost, defaultElenaHost),
		MaxPages:     intEnvOrDefault(envElenaMaxPages, defaultElenaMaxPages),
		RateInterval: durationEnvOrDefault(envRateInterval, defaultRateInterval),
		MaxRetries:   intEnvOrDefault(envMaxRetries, defaultMaxRetries),
	}
}

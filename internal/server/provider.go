package server

import (
	"log/slog"

	"github.com/preston-bernstein/football-tracker/internal/config"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/providers"
	"github.com/preston-bernstein/football-tracker/internal/providers/elenasport"
	"github.com/preston-bernstein/football-tracker/internal/providers/fixture"
	"github.com/preston-bernstein/football-tracker/internal/teamnames"
)

const (
	providerFixture    = "fixture"
	providerElenaSport = "elenasport"
)

// selectProvider builds the configured upstream. The ElenaSport client paces and retries
// each HTTP request itself with pacer and retry.
func selectProvider(cfg config.Config, names *teamnames.Table, pacer providers.Pacer, retry *providers.RetryPolicy, logger *slog.Logger) providers.MatchProvider {
	switch normalizeProviderName(cfg.Provider, nil) {
	case providerFixture, "provider":
		return fixture.New()
	case providerElenaSport:
		return elenasport.NewClient(elenasport.Config{
			BaseURL:  cfg.ElenaSport.BaseURL,
			APIKey:   cfg.ElenaSport.APIKey,
			Host:     cfg.ElenaSport.Host,
			MaxPages: cfg.ElenaSport.MaxPages,
			Names:    names,
			Logger:   logger,
			Pacer:    pacer,
			Retry:    retry,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}

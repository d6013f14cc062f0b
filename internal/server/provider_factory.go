package server

import (
	"log/slog"

	"github.com/preston-bernstein/football-tracker/internal/config"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
	"github.com/preston-bernstein/football-tracker/internal/providers"
	"github.com/preston-bernstein/football-tracker/internal/providers/elenasport"
	"github.com/preston-bernstein/football-tracker/internal/teamnames"
)

// providerFactory assembles the provider with shared pacing and retry.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the provider and a func releasing the limiter. The ElenaSport client
// takes a limiter slot and a retry budget per HTTP request, pages included. Other
// providers are wrapped so each call takes one slot and is retried as a whole.
func (f providerFactory) build(cfg config.Config, names *teamnames.Table) (providers.MatchProvider, func()) {
	limiter := providers.NewLimiter(cfg.ElenaSport.RateInterval)
	retry := providers.NewRetryPolicy(f.logger, f.metrics, normalizeProviderName(cfg.Provider, nil), cfg.ElenaSport.MaxRetries, 0)

	base := selectProvider(cfg, names, limiter, retry, f.logger)
	if client, ok := base.(*elenasport.Client); ok {
		return client, limiter.Close
	}

	limited := providers.NewPacedProvider(base, limiter, f.logger)
	name := normalizeProviderName(cfg.Provider, base)
	retrying := providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.ElenaSport.MaxRetries, 0)
	return retrying, limited.Close
}

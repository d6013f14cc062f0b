package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/football-tracker/internal/app/league"
	"github.com/preston-bernstein/football-tracker/internal/config"
	httpserver "github.com/preston-bernstein/football-tracker/internal/http"
	"github.com/preston-bernstein/football-tracker/internal/http/handlers"
	"github.com/preston-bernstein/football-tracker/internal/http/middleware"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/matchday"
	"github.com/preston-bernstein/football-tracker/internal/metrics"
	"github.com/preston-bernstein/football-tracker/internal/providers"
	"github.com/preston-bernstein/football-tracker/internal/store"
	"github.com/preston-bernstein/football-tracker/internal/teamnames"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	league        *league.Service
	httpServer    httpServer
	metricsServer httpServer
	scheduler     Scheduler
	bot           commandListener
	jobs          *cron.Cron
	closeProvider func()
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider, stores, notifier and scheduler.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServer(cfg, logger, nil, nil)
}

// newServer builds the full wiring. A non-nil provider replaces the configured one
// and is used undecorated.
func newServer(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	names, err := teamnames.Load(cfg.Storage.TeamNamesFile)
	if err != nil {
		return nil, fmt.Errorf("team names: %w", err)
	}
	logging.Debug(logger, "team names loaded", slog.Int(logging.FieldCount, names.Len()))

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	closeProvider := func() {}
	if provider == nil {
		provider, closeProvider = newProviderFactory(logger, recorder).build(cfg, names)
	}

	loc := timeutil.ResolveLocation(cfg.Schedule.Timezone)
	svc := league.NewService(
		provider,
		store.NewSeasonStore(cfg.Storage.SeasonsPath(), logger),
		store.NewCalendarStore(cfg.Storage.CalendarsDir(), logger),
		league.Info{
			Country:   cfg.League.Country,
			CountryID: cfg.League.CountryID,
			Name:      cfg.League.Name,
			LeagueID:  cfg.League.LeagueID,
		},
		loc,
		logger,
	)

	notifier, bot := buildNotifier(cfg.Telegram, store.NewSubscriberStore(cfg.Storage.SubscribersPath()), logger, recorder)
	sched, err := buildScheduler(cfg.Schedule, svc, notifier, loc, logger, recorder)
	if err != nil {
		closeProvider()
		return nil, err
	}
	jobs, err := buildJobs(cfg.Schedule.CalendarCron, loc, svc, logger)
	if err != nil {
		closeProvider()
		return nil, err
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		league:        svc,
		httpServer:    buildHTTPServer(cfg, svc, logger, recorder, sched),
		metricsServer: metricsSrv,
		scheduler:     sched,
		bot:           bot,
		jobs:          jobs,
		closeProvider: closeProvider,
		metricsStop:   metricsShutdown,
	}, nil
}

func buildHTTPServer(cfg config.Config, svc *league.Service, logger *slog.Logger, recorder *metrics.Recorder, sched Scheduler) httpServer {
	var statusFn func() matchday.Status
	if sched != nil {
		statusFn = sched.Status
	}

	handler := handlers.NewHandler(svc, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(svc, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// League exposes the league service for one-shot commands.
func (s *Server) League() *league.Service {
	return s.league
}

// Run starts the HTTP server, match-day loop, cron jobs and bot, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.scheduler != nil {
		s.scheduler.Start(ctx)
	}
	if s.jobs != nil {
		s.jobs.Start()
	}
	if s.bot != nil {
		go s.bot.Listen(ctx, s.nextMatch, s.league.Location())
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) nextMatch(context.Context) (time.Time, bool, error) {
	return s.league.NextMatchDate(time.Now())
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.jobs != nil {
		select {
		case <-s.jobs.Stop().Done():
		case <-shutdownCtx.Done():
			logging.Warn(s.logger, "calendar sync still running at shutdown")
		}
	}

	if s.scheduler != nil {
		if err := s.scheduler.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop scheduler", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	s.Close()
	logging.Info(s.logger, "shutdown complete")
}

// Close releases the provider's rate limiter. It is safe to call more than once.
func (s *Server) Close() {
	if s.closeProvider != nil {
		s.closeProvider()
		s.closeProvider = nil
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

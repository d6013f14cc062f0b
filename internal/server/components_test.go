package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/config"
	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/notify"
	"github.com/preston-bernstein/football-tracker/internal/providers"
	"github.com/preston-bernstein/football-tracker/internal/providers/elenasport"
	"github.com/preston-bernstein/football-tracker/internal/providers/fixture"
	"github.com/preston-bernstein/football-tracker/internal/testutil"
)

type stubSyncer struct {
	calls atomic.Int32
	err   error
}

func (s *stubSyncer) SyncCalendar(context.Context) (matches.Calendar, error) {
	s.calls.Add(1)
	return matches.Calendar{SeasonID: 4208, Data: make([]matches.Match, 3)}, s.err
}

func TestSelectProvider(t *testing.T) {
	if _, ok := selectProvider(config.Config{}, nil, nil, nil, nil).(*fixture.Provider); !ok {
		t.Fatal("expected fixture provider by default")
	}
	if _, ok := selectProvider(config.Config{Provider: "ElenaSport"}, nil, nil, nil, nil).(*elenasport.Client); !ok {
		t.Fatal("expected elenasport client")
	}
	logger, buf := testutil.NewBufferLogger()
	if _, ok := selectProvider(config.Config{Provider: "unknown"}, nil, nil, nil, logger).(*fixture.Provider); !ok {
		t.Fatal("expected fixture fallback")
	}
	testutil.AssertLogged(t, buf, "unknown provider", "provider=unknown")
}

func TestProviderFactoryDecoratesProvider(t *testing.T) {
	prov, closeFn := newProviderFactory(nil, nil).build(config.Config{Provider: "fixture"}, nil)
	defer closeFn()
	if _, ok := prov.(*providers.RetryingProvider); !ok {
		t.Fatalf("expected retrying provider, got %T", prov)
	}
	if _, ok := prov.(providers.SeasonResolver); !ok {
		t.Fatal("expected season resolution to stay available")
	}
}

func TestProviderFactoryLetsElenaSportPacePerRequest(t *testing.T) {
	prov, closeFn := newProviderFactory(nil, nil).build(config.Config{Provider: "elenasport"}, nil)
	defer closeFn()
	if _, ok := prov.(*elenasport.Client); !ok {
		t.Fatalf("expected the client itself, not a per-call wrapper, got %T", prov)
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName(" ElenaSport ", nil); got != "elenasport" {
		t.Fatalf("unexpected %q", got)
	}
	if got := normalizeProviderName("", fixture.New()); got != "*fixture.provider" {
		t.Fatalf("unexpected %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestBuildNotifierWithoutToken(t *testing.T) {
	n, listener := buildNotifier(config.TelegramConfig{}, nil, nil, nil)
	if _, ok := n.(*notify.LogNotifier); !ok {
		t.Fatalf("expected log notifier, got %T", n)
	}
	if listener != nil {
		t.Fatal("expected no listener")
	}
}

func TestBuildNotifierFallsBackOnTelegramError(t *testing.T) {
	orig := newTelegram
	defer func() { newTelegram = orig }()
	newTelegram = func(cfg notify.TelegramConfig) (*notify.Telegram, error) {
		if cfg.Token != "token" || cfg.AdminChatID != 42 {
			t.Fatalf("unexpected telegram config %+v", cfg)
		}
		return nil, errors.New("unauthorized")
	}

	n, listener := buildNotifier(config.TelegramConfig{Token: "token", AdminChatID: 42}, nil, nil, nil)
	if _, ok := n.(*notify.LogNotifier); !ok || listener != nil {
		t.Fatalf("expected log notifier fallback, got %T %v", n, listener)
	}
}

func TestBuildJobs(t *testing.T) {
	c, err := buildJobs("", nil, &stubSyncer{}, nil)
	if err != nil || c != nil {
		t.Fatalf("expected disabled jobs, got %v err=%v", c, err)
	}
	c, err = buildJobs("0 5 * * *", time.UTC, &stubSyncer{}, nil)
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("expected one scheduled job, got %d", len(c.Entries()))
	}
}

func TestSyncCalendarLogsOutcome(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	syncer := &stubSyncer{}
	syncCalendar(syncer, logger)
	if syncer.calls.Load() != 1 {
		t.Fatalf("expected one sync, got %d", syncer.calls.Load())
	}
	testutil.AssertLogged(t, buf, "scheduled calendar sync complete", "count=3")

	buf.Reset()
	syncCalendar(&stubSyncer{err: errors.New("upstream down")}, logger)
	testutil.AssertLogged(t, buf, "scheduled calendar sync failed", "upstream down")
}

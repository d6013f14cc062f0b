package matchday

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/app/league"
	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/store"
	"github.com/preston-bernstein/football-tracker/internal/teststubs"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

var moscow = time.FixedZone("MSK", 3*60*60)

// matchDay is 10:00 MSK on 2026-10-18, the status time of the tested match day.
var matchDay = time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		Location:      moscow,
		CheckTime:     timeutil.ClockTime{Hour: 9},
		StatusTime:    timeutil.ClockTime{Hour: 10},
		MatchDuration: 2 * time.Hour,
	}
}

// newSeason creates a league service whose current season holds fixtures.
func newSeason(t *testing.T, stub *teststubs.StubProvider, fixtures ...matches.Match) *league.Service {
	t.Helper()
	dir := t.TempDir()
	stub.Fixtures = fixtures
	svc := league.NewService(
		stub,
		store.NewSeasonStore(filepath.Join(dir, "seasons.json"), nil),
		store.NewCalendarStore(filepath.Join(dir, "calendars"), nil),
		league.Info{Name: "Premier League"},
		moscow,
		nil,
	)
	if _, err := svc.CreateSeason(context.Background(), 4208); err != nil {
		t.Fatalf("create season: %v", err)
	}
	return svc
}

// barrier holds the first fetch of each match until n distinct matches are fetching.
type barrier struct {
	mu       sync.Mutex
	n        int
	seen     map[int]bool
	ready    chan struct{}
	timedOut bool
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, seen: make(map[int]bool), ready: make(chan struct{})}
}

func (b *barrier) arrive(_ context.Context, id int) {
	b.mu.Lock()
	if b.seen[id] {
		b.mu.Unlock()
		return
	}
	b.seen[id] = true
	if len(b.seen) == b.n {
		close(b.ready)
	}
	b.mu.Unlock()

	select {
	case <-b.ready:
	case <-time.After(2 * time.Second):
		b.mu.Lock()
		b.timedOut = true
		b.mu.Unlock()
	}
}

func (b *barrier) TimedOut() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timedOut
}

type panicLeague struct {
	*league.Service
	id int
}

func (p panicLeague) RefreshMatch(ctx context.Context, id int) (matches.Match, error) {
	if id == p.id {
		panic("refresh exploded")
	}
	return p.Service.RefreshMatch(ctx, id)
}

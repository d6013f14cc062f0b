package teststubs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/providers"
)

// StubProvider is a test double for providers.MatchProvider.
// FetchMatch serves Matches (or Sequence, one entry per call) and FetchSeasonFixtures serves Fixtures.
type StubProvider struct {
	mu       sync.Mutex
	Matches  map[int]matches.Match
	Sequence map[int][]matches.Match
	Fixtures []matches.Match
	Err      error
	Calls    atomic.Int32
	Notify   chan struct{}
	// OnFetch runs before every FetchMatch, outside the stub's lock.
	OnFetch func(ctx context.Context, id int)
}

// FetchMatch returns the configured match and error while tracking calls.
func (s *StubProvider) FetchMatch(ctx context.Context, id int) (matches.Match, error) {
	s.signal()
	s.Calls.Add(1)
	if s.OnFetch != nil {
		s.OnFetch(ctx, id)
	}
	if s.Err != nil {
		return matches.Match{}, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq := s.Sequence[id]; len(seq) > 0 {
		m := seq[0]
		if len(seq) > 1 {
			s.Sequence[id] = seq[1:]
		}
		return m, nil
	}
	if m, ok := s.Matches[id]; ok {
		return m, nil
	}
	return matches.Match{}, fmt.Errorf("stub fixture %d: %w", id, providers.ErrNotFound)
}

// FetchSeasonFixtures returns the configured fixtures and error while tracking calls.
func (s *StubProvider) FetchSeasonFixtures(ctx context.Context, seasonID int) ([]matches.Match, error) {
	s.signal()
	s.Calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]matches.Match, len(s.Fixtures))
	copy(out, s.Fixtures)
	return out, nil
}

func (s *StubProvider) signal() {
	if s.Notify == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.Notify:
	default:
		close(s.Notify)
	}
}

// Message is one notification captured by StubNotifier.
type Message struct {
	Admin bool
	Text  string
}

// StubNotifier is a test double for notify.Notifier.
type StubNotifier struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

// NotifyAdmin records an admin message.
func (n *StubNotifier) NotifyAdmin(ctx context.Context, text string) error {
	return n.record(Message{Admin: true, Text: text})
}

// NotifyAll records a broadcast message.
func (n *StubNotifier) NotifyAll(ctx context.Context, text string) error {
	return n.record(Message{Text: text})
}

func (n *StubNotifier) record(m Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, m)
	return n.Err
}

// Admin returns the admin messages recorded so far.
func (n *StubNotifier) Admin() []string {
	return n.filter(true)
}

// Broadcasts returns the broadcast messages recorded so far.
func (n *StubNotifier) Broadcasts() []string {
	return n.filter(false)
}

func (n *StubNotifier) filter(admin bool) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, m := range n.Messages {
		if m.Admin == admin {
			out = append(out, m.Text)
		}
	}
	return out
}

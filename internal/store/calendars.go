package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/logging"
)

// CalendarStore persists one calendar document per season.
// Read-modify-write cycles are serialized per season id.
type CalendarStore struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// NewCalendarStore returns a store rooted at dir.
func NewCalendarStore(dir string, logger *slog.Logger) *CalendarStore {
	return &CalendarStore{
		dir:    dir,
		logger: logger,
		locks:  make(map[int]*sync.Mutex),
	}
}

// Path returns the document location of a season's calendar.
func (s *CalendarStore) Path(seasonID int) string {
	return filepath.Join(s.dir, "calendar-season-"+strconv.Itoa(seasonID)+".json")
}

// Load returns the season's calendar, or ErrMissing when it was never written.
func (s *CalendarStore) Load(seasonID int) (matches.Calendar, error) {
	lock := s.lockFor(seasonID)
	lock.Lock()
	defer lock.Unlock()
	return s.load(seasonID)
}

// Get returns one match of the season.
func (s *CalendarStore) Get(seasonID, matchID int) (matches.Match, error) {
	cal, err := s.Load(seasonID)
	if err != nil {
		return matches.Match{}, err
	}
	idx := cal.Find(matchID)
	if idx < 0 {
		return matches.Match{}, fmt.Errorf("match %d in season %d: %w", matchID, seasonID, ErrNotFound)
	}
	return cal.Data[idx], nil
}

// Upsert replaces the stored match with the same id. An id absent from the calendar
// yields ErrNotFound and leaves the document untouched.
func (s *CalendarStore) Upsert(seasonID int, m matches.Match) error {
	if m.ID <= 0 {
		return fmt.Errorf("match id %d: %w", m.ID, ErrInvalidMatch)
	}

	lock := s.lockFor(seasonID)
	lock.Lock()
	defer lock.Unlock()

	cal, err := s.load(seasonID)
	if err != nil {
		return err
	}
	idx := cal.Find(m.ID)
	if idx < 0 {
		logging.Warn(s.logger, "match not in calendar",
			slog.Int(logging.FieldSeasonID, seasonID),
			slog.Int(logging.FieldMatchID, m.ID),
		)
		return fmt.Errorf("match %d in season %d: %w", m.ID, seasonID, ErrNotFound)
	}
	cal.Data[idx] = m
	if err := writeJSON(s.Path(seasonID), cal); err != nil {
		return fmt.Errorf("write calendar %d: %w", seasonID, err)
	}
	logging.Info(s.logger, "match updated",
		slog.Int(logging.FieldSeasonID, seasonID),
		slog.Int(logging.FieldMatchID, m.ID),
		slog.String(logging.FieldState, string(m.Status)),
	)
	return nil
}

// Replace writes a whole calendar. Repeated ids collapse into one entry holding the
// last value, at the position of the first occurrence.
func (s *CalendarStore) Replace(seasonID int, ms []matches.Match) (matches.Calendar, error) {
	lock := s.lockFor(seasonID)
	lock.Lock()
	defer lock.Unlock()

	cal := matches.Calendar{SeasonID: seasonID, Data: dedupe(ms)}
	if err := writeJSON(s.Path(seasonID), cal); err != nil {
		return matches.Calendar{}, fmt.Errorf("write calendar %d: %w", seasonID, err)
	}
	logging.Info(s.logger, "calendar stored",
		slog.Int(logging.FieldSeasonID, seasonID),
		slog.Int(logging.FieldCount, len(cal.Data)),
	)
	return cal, nil
}

func (s *CalendarStore) load(seasonID int) (matches.Calendar, error) {
	var cal matches.Calendar
	if err := readJSON(s.Path(seasonID), &cal); err != nil {
		return matches.Calendar{}, err
	}
	if cal.SeasonID == 0 {
		cal.SeasonID = seasonID
	}
	return cal, nil
}

func (s *CalendarStore) lockFor(seasonID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[seasonID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[seasonID] = l
	}
	return l
}

func dedupe(ms []matches.Match) []matches.Match {
	out := make([]matches.Match, 0, len(ms))
	pos := make(map[int]int, len(ms))
	for _, m := range ms {
		if i, ok := pos[m.ID]; ok {
			out[i] = m
			continue
		}
		pos[m.ID] = len(out)
		out = append(out, m)
	}
	return out
}

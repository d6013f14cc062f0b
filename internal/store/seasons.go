package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/football-tracker/internal/domain/seasons"
	"github.com/preston-bernstein/football-tracker/internal/logging"
)

// SeasonStore persists the ordered season list. The last entry is the current season.
type SeasonStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewSeasonStore returns a store backed by the JSON array at path.
func NewSeasonStore(path string, logger *slog.Logger) *SeasonStore {
	return &SeasonStore{path: path, logger: logger}
}

// Load returns every season. A missing document is logged and yields an empty list.
func (s *SeasonStore) Load() ([]seasons.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Current returns the most recently created season.
func (s *SeasonStore) Current() (seasons.Season, error) {
	list, err := s.Load()
	if err != nil {
		return seasons.Season{}, err
	}
	if len(list) == 0 {
		return seasons.Season{}, fmt.Errorf("current season: %w", ErrNotFound)
	}
	return list[len(list)-1], nil
}

// Append assigns the next sequential id to season, persists it and returns the stored record.
func (s *SeasonStore) Append(season seasons.Season) (seasons.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return seasons.Season{}, err
	}
	season.ID = len(list)
	list = append(list, season)
	if err := writeJSON(s.path, list); err != nil {
		return seasons.Season{}, fmt.Errorf("write seasons: %w", err)
	}
	logging.Info(s.logger, "season stored",
		slog.Int(logging.FieldSeasonID, season.RemoteSeasonID),
		slog.Int("id", season.ID),
	)
	return season, nil
}

func (s *SeasonStore) load() ([]seasons.Season, error) {
	var list []seasons.Season
	if err := readJSON(s.path, &list); err != nil {
		if errors.Is(err, ErrMissing) {
			logging.Warn(s.logger, "season list missing, starting empty", slog.String("path", s.path))
			return []seasons.Season{}, nil
		}
		return nil, err
	}
	return list, nil
}

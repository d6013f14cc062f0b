package handlers

import (
	"context"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/domain/seasons"
	"github.com/preston-bernstein/football-tracker/internal/store"
)

var moscow = time.FixedZone("MSK", 3*60*60)

type stubLeague struct {
	seasons  []seasons.Season
	calendar []matches.Match
	err      error

	lastDay      time.Time
	lastPrevious [3]int

	refreshErr error
	refreshed  []int
	syncs      int
}

func (s *stubLeague) Seasons() ([]seasons.Season, error) {
	return s.seasons, s.err
}

func (s *stubLeague) CurrentSeason() (seasons.Season, error) {
	if s.err != nil {
		return seasons.Season{}, s.err
	}
	if len(s.seasons) == 0 {
		return seasons.Season{}, store.ErrNotFound
	}
	return s.seasons[len(s.seasons)-1], nil
}

func (s *stubLeague) Location() *time.Location {
	return moscow
}

func (s *stubLeague) MatchesOn(day time.Time) ([]matches.Match, error) {
	s.lastDay = day
	if s.err != nil {
		return nil, s.err
	}
	return matches.MatchesOn(s.calendar, day, moscow), nil
}

func (s *stubLeague) Match(id int) (matches.Match, error) {
	if s.err != nil {
		return matches.Match{}, s.err
	}
	for _, m := range s.calendar {
		if m.ID == id {
			return m, nil
		}
	}
	return matches.Match{}, store.ErrNotFound
}

func (s *stubLeague) Scorers(id int) ([]matches.Scorer, error) {
	m, err := s.Match(id)
	if err != nil {
		return nil, err
	}
	return matches.Scorers(m), nil
}

func (s *stubLeague) PreviousMatches(teamID, n, round int) ([]matches.Match, error) {
	s.lastPrevious = [3]int{teamID, n, round}
	if s.err != nil {
		return nil, s.err
	}
	if round == 0 {
		round = 1
	}
	return matches.PreviousMatches(s.calendar, teamID, n, round), nil
}

func (s *stubLeague) Round(n int) ([]matches.Match, error) {
	if s.err != nil {
		return nil, s.err
	}
	return matches.InRound(s.calendar, n), nil
}

func (s *stubLeague) RefreshMatch(_ context.Context, id int) (matches.Match, error) {
	s.refreshed = append(s.refreshed, id)
	if s.refreshErr != nil {
		return matches.Match{}, s.refreshErr
	}
	return s.Match(id)
}

func (s *stubLeague) SyncCalendar(context.Context) (matches.Calendar, error) {
	s.syncs++
	if s.refreshErr != nil {
		return matches.Calendar{}, s.refreshErr
	}
	return matches.Calendar{SeasonID: 4208, Data: s.calendar}, nil
}

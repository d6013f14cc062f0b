package testutil

import (
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
)

// SampleMatch returns a scheduled match with the provided id, round and kickoff.
func SampleMatch(id, round int, kickoff time.Time) matches.Match {
	return matches.Match{
		ID:       id,
		SeasonID: 4208,
		Round:    round,
		HomeID:   id*10 + 1,
		HomeName: "Home",
		AwayID:   id*10 + 2,
		AwayName: "Away",
		Date:     kickoff,
		Score:    matches.FormatScore(0, 0),
		Status:   matches.StatusScheduled,
	}
}

// Finished returns m marked finished with the given score.
func Finished(m matches.Match, home, away int) matches.Match {
	m.Status = matches.StatusFinished
	m.Score = matches.FormatScore(home, away)
	return m
}

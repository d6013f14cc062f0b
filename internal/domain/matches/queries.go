package matches

import (
	"sort"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

// PreviousMatches returns the team's matches from the n rounds before round.
// The window is [round-n, round-1], clamped to start at round 1. Scanning stops at the
// first match past round, so ms must be sorted ascending by round.
func PreviousMatches(ms []Match, teamID, n, round int) []Match {
	first := round - n
	if first < 1 {
		first = 1
	}
	last := round - 1

	var out []Match
	for _, m := range ms {
		if m.Round > round {
			break
		}
		if m.Round < first || m.Round > last {
			continue
		}
		if m.Involves(teamID) {
			out = append(out, m)
		}
	}
	return out
}

// MatchesOn returns the matches dated on the same league-local day as day.
func MatchesOn(ms []Match, day time.Time, loc *time.Location) []Match {
	var out []Match
	for _, m := range ms {
		if timeutil.SameDay(m.Date, day, loc) {
			out = append(out, m)
		}
	}
	return out
}

// IsMatchDay reports whether any match falls on day.
func IsMatchDay(ms []Match, day time.Time, loc *time.Location) bool {
	for _, m := range ms {
		if timeutil.SameDay(m.Date, day, loc) {
			return true
		}
	}
	return false
}

// NextMatchDate returns the earliest kickoff strictly after the given instant.
func NextMatchDate(ms []Match, after time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	for _, m := range ms {
		if m.Date.IsZero() || !m.Date.After(after) {
			continue
		}
		if !found || m.Date.Before(next) {
			next = m.Date
			found = true
		}
	}
	return next, found
}

// InRound returns the matches of a round in calendar order.
func InRound(ms []Match, round int) []Match {
	var out []Match
	for _, m := range ms {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

// MaxRound returns the highest round number present.
func MaxRound(ms []Match) int {
	max := 0
	for _, m := range ms {
		if m.Round > max {
			max = m.Round
		}
	}
	return max
}

// AllTerminal reports whether every match is finished or canceled.
// An empty calendar counts as terminal.
func AllTerminal(ms []Match) bool {
	for _, m := range ms {
		if !m.Status.Terminal() {
			return false
		}
	}
	return true
}

// SortChronological orders matches by round, then kickoff, then id. The sort is stable.
func SortChronological(ms []Match) {
	sort.SliceStable(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
}

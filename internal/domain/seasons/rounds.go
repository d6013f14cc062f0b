package seasons

import (
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
)

// RoundDates maps every round present in ms to its date range. day normalises a
// kickoff before comparison (for example truncation to the league-local day).
//
// The first match seen for a round seeds both bounds; later matches can only move
// Last forward. ms is expected in chronological order within each round; this
// function does not sort.
func RoundDates(ms []matches.Match, day func(time.Time) time.Time) map[int]RoundRange {
	if day == nil {
		day = func(t time.Time) time.Time { return t }
	}
	out := make(map[int]RoundRange)
	for _, m := range ms {
		d := day(m.Date)
		r, ok := out[m.Round]
		if !ok {
			out[m.Round] = RoundRange{First: d, Last: d}
			continue
		}
		if d.After(r.Last) {
			r.Last = d
			out[m.Round] = r
		}
	}
	return out
}

// Span returns the earliest and latest kickoff in ms.
func Span(ms []matches.Match) (start, finish time.Time) {
	for _, m := range ms {
		if m.Date.IsZero() {
			continue
		}
		if start.IsZero() || m.Date.Before(start) {
			start = m.Date
		}
		if finish.IsZero() || m.Date.After(finish) {
			finish = m.Date
		}
	}
	return start, finish
}

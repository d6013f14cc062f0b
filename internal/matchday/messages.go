package matchday

import (
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

func scheduledText(m matches.Match, loc *time.Location) string {
	return fmt.Sprintf("Match scheduled: %s, round %d, kickoff %s", m.DisplayName(), m.Round, timeutil.FormatDisplay(m.Date, loc))
}

func startedText(m matches.Match) string {
	return fmt.Sprintf("Match started: %s", m.DisplayName())
}

func skippedText(m matches.Match) string {
	return fmt.Sprintf("Match %s is %s, not tracking it", m.DisplayName(), strings.ToLower(string(m.Status)))
}

func movedText(m matches.Match, loc *time.Location) string {
	return fmt.Sprintf("Match %s moved to %s, not tracking it today", m.DisplayName(), timeutil.FormatDisplay(m.Date, loc))
}

func resultText(m matches.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Full time: %s %s", m.DisplayName(), m.Score)
	scorers := matches.Scorers(m)
	if len(scorers) == 0 {
		return b.String()
	}
	b.WriteString("\nGoals:")
	for _, s := range scorers {
		fmt.Fprintf(&b, "\n%d' %s", s.Minute, s.Player)
		if s.Marker != "" {
			fmt.Fprintf(&b, " (%s)", s.Marker)
		}
	}
	return b.String()
}

func nextMatchText(next time.Time, ok bool, loc *time.Location) string {
	if !ok {
		return "No matches today. No upcoming matches scheduled."
	}
	return "No matches today. Next match: " + timeutil.FormatDisplay(next, loc)
}

func summaryText(day time.Time, loc *time.Location, results []trackResult) string {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Match day %s: %d tracked, %d failed", timeutil.FormatDate(timeutil.StartOfDay(day, loc)), len(results), failed)
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(&b, "\n%s: %v", r.match.DisplayName(), r.err)
		}
	}
	return b.String()
}

const seasonFinishedText = "Season finished. Match-day tracking stopped."

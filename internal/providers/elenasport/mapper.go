package elenasport

import (
	"strings"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/timeutil"
)

type translator interface {
	Translate(name string) string
}

func mapFixture(f fixtureResponse, names translator) matches.Match {
	m := matches.Match{
		ID:       f.ID,
		SeasonID: f.IDSeason,
		Round:    f.Round,
		HomeID:   f.IDHome,
		HomeName: translate(names, f.HomeName),
		AwayID:   f.IDAway,
		AwayName: translate(names, f.AwayName),
		Score:    matches.FormatScore(f.HomeGoals90+f.HomeGoalsET, f.AwayGoals90+f.AwayGoalsET),
		Status:   mapStatus(f.Status),
	}
	if date, err := timeutil.ParseUpstream(f.Date); err == nil {
		m.Date = date
	}
	for _, e := range f.Events {
		m.Events = append(m.Events, matches.Event{
			Type:        mapEventType(e.Type),
			Elapsed:     e.Elapsed,
			ElapsedPlus: e.ElapsedPlus,
			Player:      e.PlayerName,
			Team:        translate(names, e.TeamName),
		})
	}
	return m
}

func translate(names translator, name string) string {
	if names == nil {
		return name
	}
	return names.Translate(name)
}

func mapStatus(status string) matches.Status {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "finished", "ended", "ft", "aet", "pen":
		return matches.StatusFinished
	case "in progress", "inprogress", "live", "halftime", "1h", "2h", "ht":
		return matches.StatusInProgress
	case "postponed":
		return matches.StatusPostponed
	case "canceled", "cancelled", "abandoned":
		return matches.StatusCanceled
	default:
		return matches.StatusScheduled
	}
}

func mapEventType(raw string) matches.EventType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "goal":
		return matches.EventGoal
	case "pen_scored", "penalty", "penalty goal":
		return matches.EventPenScored
	case "own_goal", "own goal", "og":
		return matches.EventOwnGoal
	default:
		return matches.EventType(raw)
	}
}

package matches

import (
	"fmt"
	"time"
)

// Status mirrors the lifecycle of a fixture.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
	StatusPostponed  Status = "POSTPONED"
	StatusCanceled   Status = "CANCELED"
)

// Terminal reports whether no further updates are expected for the match.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCanceled
}

// EventType classifies a match event.
type EventType string

const (
	EventGoal       EventType = "goal"
	EventPenScored  EventType = "pen_scored"
	EventOwnGoal    EventType = "own_goal"
	EventPenMissed  EventType = "pen_missed"
	EventYellowCard EventType = "yellow_card"
	EventRedCard    EventType = "red_card"
	EventSubst      EventType = "substitution"
)

// Scoring reports whether the event changes the score.
func (t EventType) Scoring() bool {
	return t == EventGoal || t == EventPenScored || t == EventOwnGoal
}

// Event is a single recorded incident of a match.
type Event struct {
	Type        EventType `json:"type"`
	Elapsed     int       `json:"elapsed"`
	ElapsedPlus *int      `json:"elapsedPlus,omitempty"`
	Player      string    `json:"player"`
	Team        string    `json:"team,omitempty"`
}

// Minute is the effective minute including stoppage time.
func (e Event) Minute() int {
	if e.ElapsedPlus != nil {
		return e.Elapsed + *e.ElapsedPlus
	}
	return e.Elapsed
}

// Match is one fixture of a season calendar.
type Match struct {
	ID       int       `json:"id"`
	SeasonID int       `json:"seasonId"`
	Round    int       `json:"round"`
	HomeID   int       `json:"homeId"`
	HomeName string    `json:"homeName"`
	AwayID   int       `json:"awayId"`
	AwayName string    `json:"awayName"`
	Date     time.Time `json:"date"`
	Score    string    `json:"score"`
	Status   Status    `json:"status"`
	Events   []Event   `json:"events,omitempty"`
}

// displaySeparator is U+2014 with surrounding spaces, as shown to chat users.
const displaySeparator = " \u2014 "

// DisplayName joins the home and away names with displaySeparator.
func (m Match) DisplayName() string {
	return m.HomeName + displaySeparator + m.AwayName
}

// Involves reports whether the team plays in the match.
func (m Match) Involves(teamID int) bool {
	return m.HomeID == teamID || m.AwayID == teamID
}

// FormatScore renders goals as "H-A".
func FormatScore(home, away int) string {
	return fmt.Sprintf("%d-%d", home, away)
}

// Calendar is the persisted document holding one season's matches.
type Calendar struct {
	SeasonID int     `json:"seasonId"`
	Data     []Match `json:"data"`
}

// Find returns the index of the match with the given id, or -1.
func (c Calendar) Find(id int) int {
	for i, m := range c.Data {
		if m.ID == id {
			return i
		}
	}
	return -1
}

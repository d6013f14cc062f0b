package seasons

import "time"

// RoundRange is the first and last match date of a round.
type RoundRange struct {
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// Season is one run of a competition. Records are created once and appended to the
// season list; only the last entry is the current season.
type Season struct {
	ID             int                `json:"id"`
	Country        string             `json:"country"`
	CountryID      int                `json:"countryId"`
	League         string             `json:"league"`
	LeagueID       int                `json:"leagueId"`
	RemoteSeasonID int                `json:"seasonId"`
	Calendar       string             `json:"calendar"`
	MaxRounds      int                `json:"maxRounds"`
	CurrentRound   int                `json:"currentRound"`
	StartDate      time.Time          `json:"startDate"`
	FinishDate     time.Time          `json:"finishDate"`
	RoundDates     map[int]RoundRange `json:"roundDates"`
}

package elenasport

type fixturesResponse struct {
	Data       []fixtureResponse `json:"data"`
	Pagination pagination        `json:"pagination"`
}

type pagination struct {
	Page         int  `json:"page"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

type fixtureResponse struct {
	ID          int             `json:"id"`
	IDSeason    int             `json:"idSeason"`
	IDHome      int             `json:"idHome"`
	IDAway      int             `json:"idAway"`
	HomeName    string          `json:"homeName"`
	AwayName    string          `json:"awayName"`
	Round       int             `json:"round"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
	HomeGoals90 int             `json:"team_home_90min_goals"`
	HomeGoalsET int             `json:"team_home_ET_goals"`
	AwayGoals90 int             `json:"team_away_90min_goals"`
	AwayGoalsET int             `json:"team_away_ET_goals"`
	Events      []eventResponse `json:"events"`
}

type eventResponse struct {
	Type        string `json:"type"`
	Elapsed     int    `json:"elapsed"`
	ElapsedPlus *int   `json:"elapsedPlus"`
	PlayerName  string `json:"playerName"`
	TeamName    string `json:"teamName"`
}

type seasonsResponse struct {
	Data []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

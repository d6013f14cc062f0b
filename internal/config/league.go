package config

// LeagueConfig describes the competition a new season is created for.
type LeagueConfig struct {
	Country   string
	CountryID int
	Name      string
	LeagueID  int
}

func loadLeague() LeagueConfig {
	return LeagueConfig{
		Country:   envOrDefault(envLeagueCountry, defaultLeagueCountry),
		CountryID: intEnvOrDefault(envLeagueCountryID, defaultLeagueCountryID),
		Name:      envOrDefault(envLeagueName, defaultLeagueName),
		LeagueID:  intEnvOrDefault(envLeagueID, defaultLeagueID),
	}
}

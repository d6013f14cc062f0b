package config

import "path/filepath"

// StorageConfig locates the JSON documents on disk.
type StorageConfig struct {
	DataDir       string
	TeamNamesFile string
}

// SeasonsPath is the season list document.
func (s StorageConfig) SeasonsPath() string {
	return filepath.Join(s.DataDir, "seasons", "seasons.json")
}

// CalendarsDir holds one calendar document per season.
func (s StorageConfig) CalendarsDir() string {
	return filepath.Join(s.DataDir, "calendars")
}

// SubscribersPath is the broadcast audience document.
func (s StorageConfig) SubscribersPath() string {
	return filepath.Join(s.DataDir, "subscribers.json")
}

func loadStorage() StorageConfig {
	return StorageConfig{
		DataDir:       envOrDefault(envDataDir, defaultDataDir),
		TeamNamesFile: envOrDefault(envTeamNamesFile, ""),
	}
}

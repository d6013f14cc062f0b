package config

// ScheduleConfig controls the match-day loop.
type ScheduleConfig struct {
	Enabled       bool
	Timezone      string
	CheckTime     string   // HH:MM, league-local; daily match-day evaluation
	StatusTime    string   // HH:MM, league-local; trackers launch
	MatchDuration Duration // kickoff to assumed full time, stoppage included
	CalendarCron  string   // empty disables the daily calendar sync
}

func loadSchedule() ScheduleConfig {
	return ScheduleConfig{
		Enabled:       boolEnvOrDefault(envSchedulerOn, true),
		Timezone:      envOrDefault(envTimezone, defaultTimezone),
		CheckTime:     envOrDefault(envCheckTime, defaultCheckTime),
		StatusTime:    envOrDefault(envStatusTime, defaultStatusTime),
		MatchDuration: durationEnvOrDefault(envMatchDuration, defaultMatchDuration),
		CalendarCron:  rawEnvOrDefault(envCalendarCron, defaultCalendarCron),
	}
}

package server

import "time"

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second

	// A full-season calendar download pages through the rate limiter.
	calendarSyncTimeout = 5 * time.Minute
)

// shutdownTimeout bounds the wait for the cron job, tracker group and HTTP drain together.
// It remains a var for tests to override.
var shutdownTimeout = 20 * time.Second

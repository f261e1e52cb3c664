package util

import "time"

// NoonUTC truncates t to 12:00 UTC on its UTC calendar date.
func NoonUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 12, 0, 0, 0, time.UTC)
}
